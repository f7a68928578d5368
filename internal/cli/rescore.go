package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/spf13/cobra"

	"github.com/stijnwollerich/sparksmetrics-website/internal/model"
	"github.com/stijnwollerich/sparksmetrics-website/internal/pipeline"
	"github.com/stijnwollerich/sparksmetrics-website/internal/score"
	"github.com/stijnwollerich/sparksmetrics-website/internal/worker"
)

var (
	rescoreConcurrency int
	rescorePostsPath   string
	rescoreTemplates   string
	showBreakdown      bool
)

// rescoreCmd represents the rescore command
var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Re-score every published post against the current rubric",
	Long: `Rescore loads the post index, reads each published page and recomputes
its SEO score concurrently. Posts under the publish threshold are listed
so thin or aged articles can be rewritten.

Example:
  sparksmetrics rescore
  sparksmetrics rescore --concurrency 8 --breakdown`,
	RunE: runRescore,
}

func init() {
	rootCmd.AddCommand(rescoreCmd)

	rescoreCmd.Flags().IntVar(&rescoreConcurrency, "concurrency", runtime.NumCPU(), "number of concurrent scoring workers")
	rescoreCmd.Flags().StringVar(&rescorePostsPath, "posts", "", "post index path (default app/blog_posts.json)")
	rescoreCmd.Flags().StringVar(&rescoreTemplates, "templates", "", "templates directory (default app/templates)")
	rescoreCmd.Flags().BoolVar(&showBreakdown, "breakdown", false, "print the per-criterion breakdown for each post")
}

func runRescore(cmd *cobra.Command, args []string) error {
	cfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	if rescorePostsPath != "" {
		cfg.Publish.PostsPath = rescorePostsPath
	}
	if rescoreTemplates != "" {
		cfg.Publish.TemplatesDir = rescoreTemplates
	}

	idx, err := pipeline.LoadIndex(cfg.Publish.PostsPath)
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}
	if idx.Len() == 0 {
		fmt.Println("No posts in index.")
		return nil
	}

	scorer := score.NewScorer(cfg.Site.OwnDomain)

	jobs := make([]*worker.ScoreJob, 0, idx.Len())
	for _, post := range idx.Posts() {
		path := filepath.Join(cfg.Publish.TemplatesDir, post.Template)
		html, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", post.Slug, err)
			continue
		}
		jobs = append(jobs, &worker.ScoreJob{
			Slug:        post.Slug,
			Title:       post.Title,
			Description: post.Description,
			Keyword:     pipeline.KeywordFromTitle(post.Title),
			HTML:        string(html),
			Scorer:      scorer,
		})
	}

	results := worker.NewBatchScorer(rescoreConcurrency).Process(context.Background(), jobs)

	// Stable, lowest first: the posts that need attention lead the list
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score < results[j].Score
		}
		return results[i].Slug < results[j].Slug
	})

	under := 0
	for _, r := range results {
		marker := "✓"
		if r.Score < cfg.Publish.Threshold {
			marker = "✗"
			under++
		}
		fmt.Printf("%s %3d/100  %s\n", marker, r.Score, r.Slug)
		if showBreakdown {
			for _, criterion := range model.Criteria {
				fmt.Printf("      %-18s %d\n", criterion, r.Breakdown[criterion])
			}
		}
	}

	fmt.Printf("\n%d posts scored, %d under threshold %d\n", len(results), under, cfg.Publish.Threshold)
	return nil
}
