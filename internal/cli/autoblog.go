package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/stijnwollerich/sparksmetrics-website/internal/model"
	"github.com/stijnwollerich/sparksmetrics-website/internal/pipeline"
)

var (
	channelID   string
	videoArg    string
	maxResults  int
	dryRun      bool
	force       bool
	provider    string
	llmModel    string
	runTimeout  time.Duration
	noCache     bool
	postsPath   string
	templateDir string
)

// autoblogCmd represents the autoblog command
var autoblogCmd = &cobra.Command{
	Use:   "autoblog",
	Short: "Generate blog posts from new YouTube uploads",
	Long: `Autoblog checks a channel's newest uploads (or one specific video),
drafts an article from each transcript, scores it, and publishes the
drafts that clear the SEO threshold.

Example:
  sparksmetrics autoblog --channel UCkwylcLXJiV-kQxCZMRR-tw
  sparksmetrics autoblog --video https://youtu.be/dQw4w9WgXcQ --force
  sparksmetrics autoblog --channel UC... --provider openai --llm-model gpt-4o-mini --dry-run`,
	RunE: runAutoblog,
}

func init() {
	rootCmd.AddCommand(autoblogCmd)

	autoblogCmd.Flags().StringVar(&channelID, "channel", "", "YouTube channel ID (UC...); defaults to YOUTUBE_CHANNEL_ID")
	autoblogCmd.Flags().StringVar(&videoArg, "video", "", "single YouTube video ID or URL to process")
	autoblogCmd.Flags().IntVar(&maxResults, "max-results", 5, "how many latest videos to check")
	autoblogCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print actions without writing files or notifying")
	autoblogCmd.Flags().BoolVar(&force, "force", false, "publish even when the score is below the threshold")
	autoblogCmd.Flags().StringVar(&provider, "provider", "", "writer provider (openai, anthropic, ollama, none); defaults to BLOG_WRITER_PROVIDER")
	autoblogCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
	autoblogCmd.Flags().DurationVar(&runTimeout, "timeout", 15*time.Minute, "overall run timeout")
	autoblogCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable feed/transcript cache")
	autoblogCmd.Flags().StringVar(&postsPath, "posts", "", "post index path (default app/blog_posts.json)")
	autoblogCmd.Flags().StringVar(&templateDir, "templates", "", "templates directory (default app/templates)")
}

func runAutoblog(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	channel := channelID
	if channel == "" {
		channel = os.Getenv("YOUTUBE_CHANNEL_ID")
	}
	if channel == "" && videoArg == "" {
		return fmt.Errorf("missing channel id: pass --channel UC... or set YOUTUBE_CHANNEL_ID, or use --video")
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Provider: %s\n", orNone(cfg.LLM.Provider))
		fmt.Fprintf(os.Stderr, "Threshold: %d, min words: %d\n", cfg.Publish.Threshold, cfg.Publish.MinWords)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)
	result, err := p.Run(ctx, pipeline.RunOptions{
		Channel:    channel,
		Video:      videoArg,
		MaxResults: maxResults,
		DryRun:     dryRun,
		Force:      force,
	})
	if err != nil {
		return fmt.Errorf("autoblog failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Published: %d, skipped: %d, deferred: %d\n",
			len(result.Created), result.Skipped, result.Deferred)
	}
	return nil
}

// buildConfig assembles configuration from defaults, the config file,
// env vars and flags, lowest priority first
func buildConfig() (*model.Config, error) {
	cfg, err := loadFileConfig()
	if err != nil {
		return nil, err
	}
	cfg.Output.Verbose = verbose
	cfg.Cache.Enabled = !noCache

	if postsPath != "" {
		cfg.Publish.PostsPath = postsPath
	}
	if templateDir != "" {
		cfg.Publish.TemplatesDir = templateDir
	}

	if v := os.Getenv("BLOG_PUBLISH_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BLOG_PUBLISH_THRESHOLD: %q", v)
		}
		cfg.Publish.Threshold = n
	}
	if v := os.Getenv("BLOG_MIN_WORDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BLOG_MIN_WORDS: %q", v)
		}
		cfg.Publish.MinWords = n
	}

	if v := os.Getenv("SITE_BASE_URL"); v != "" {
		cfg.Site.BaseURL = v
	}
	cfg.Site.WebhookURL = os.Getenv("SLACK_WEBHOOK_URL")
	cfg.Transcript.APIKey = os.Getenv("SUPADATA_KEY")
	if v := os.Getenv("TRANSCRIPT_BASE_URL"); v != "" {
		cfg.Transcript.BaseURL = v
	}

	writerProvider := provider
	if writerProvider == "" {
		writerProvider = os.Getenv("BLOG_WRITER_PROVIDER")
	}
	if writerProvider == "" || writerProvider == "none" {
		cfg.LLM.Provider = ""
		return cfg, nil
	}

	cfg.LLM.Provider = writerProvider
	cfg.LLM.Model = llmModel

	// API key from environment per provider
	switch writerProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPEN_AI_KEY")
		}
		if cfg.LLM.APIKey == "" {
			// No credential: degrade to the deterministic paths
			cfg.LLM.Provider = ""
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			cfg.LLM.Provider = ""
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: openai, anthropic, ollama, none)", writerProvider)
	}

	return cfg, nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
