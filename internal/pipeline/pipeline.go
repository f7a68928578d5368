package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/stijnwollerich/sparksmetrics-website/internal/cache"
	"github.com/stijnwollerich/sparksmetrics-website/internal/content"
	"github.com/stijnwollerich/sparksmetrics-website/internal/llm"
	"github.com/stijnwollerich/sparksmetrics-website/internal/model"
	"github.com/stijnwollerich/sparksmetrics-website/internal/notify"
	"github.com/stijnwollerich/sparksmetrics-website/internal/score"
	"github.com/stijnwollerich/sparksmetrics-website/internal/worker"
)

// Pipeline turns new channel uploads into published blog posts
type Pipeline struct {
	fetcher  *Fetcher
	builder  *content.SpecBuilder
	expander *content.Expander
	scorer   *score.Scorer
	notifier *notify.Notifier
	provider llm.Provider
	config   *model.Config
}

// NewPipeline wires the pipeline from configuration. A missing or broken
// LLM provider degrades to the deterministic paths, it is never fatal.
func NewPipeline(cfg *model.Config) *Pipeline {
	var provider llm.Provider
	if cfg.LLM.Provider != "" {
		p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			provider = p
		}
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.FeedTTL, cfg.Cache.Dir, cfg.Cache.TranscriptTTL)
	}
	limiter := worker.NewLimiter(2, 3)

	return &Pipeline{
		fetcher:  NewFetcher(cfg, limiter, store),
		builder:  content.NewSpecBuilder(provider, cfg.LLM.Model, cfg.Publish.MinWords, cfg.Site.CTAPath, cfg.Output.Verbose),
		expander: content.NewExpander(provider, cfg.LLM.Model, cfg.Site.CTAPath),
		scorer:   score.NewScorer(cfg.Site.OwnDomain),
		notifier: notify.NewNotifier(cfg.Site.WebhookURL, cfg.Output.Verbose),
		provider: provider,
		config:   cfg,
	}
}

// RunOptions selects what a run processes and how
type RunOptions struct {
	// Channel is the YouTube channel id (UC...); used when Video is empty
	Channel string

	// Video is a single video id or URL; takes precedence over Channel
	Video string

	// MaxResults caps how many of the newest uploads are checked
	MaxResults int

	// DryRun prints every action without writing files or notifying
	DryRun bool

	// Force publishes even when the score is below the threshold
	Force bool
}

// RunResult summarizes one pipeline run
type RunResult struct {
	Created  []model.PostRecord
	Skipped  int
	Deferred int
}

// Run executes the pipeline: fetch videos, draft, score, publish or
// defer. Returns an error only for configuration and I/O failures; a
// low-scoring article is a deferred post, not an error.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	videos, err := p.resolveVideos(ctx, opts)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		fmt.Println("No videos found.")
		return &RunResult{}, nil
	}

	idx, err := LoadIndex(p.config.Publish.PostsPath)
	if err != nil {
		return nil, err
	}

	result := &RunResult{}
	for _, v := range videos {
		if idx.HasVideo(v.VideoID) {
			result.Skipped++
			continue
		}

		post, articleHTML, published := p.processVideo(ctx, v, opts)
		if !published {
			result.Deferred++
			continue
		}

		if opts.DryRun {
			fmt.Printf("[dry-run] Would create %s and upsert index entry: %s\n",
				TemplateName(post.Slug), post.Slug)
		} else {
			if _, err := WriteTemplate(p.config.Publish.TemplatesDir, post, articleHTML); err != nil {
				return result, err
			}
			idx.Upsert(post)
			if err := idx.Save(); err != nil {
				return result, err
			}
		}

		result.Created = append(result.Created, post)
		if p.config.Publish.MaxPerRun > 0 && len(result.Created) >= p.config.Publish.MaxPerRun {
			break
		}
	}

	p.announce(result.Created, opts.DryRun)
	if len(result.Created) == 0 {
		fmt.Println("No new posts published.")
	}
	return result, nil
}

// resolveVideos yields the work list: one synthesized entry in
// single-video mode, otherwise the channel's newest uploads
func (p *Pipeline) resolveVideos(ctx context.Context, opts RunOptions) ([]model.Video, error) {
	if v := strings.TrimSpace(opts.Video); v != "" {
		id := ExtractVideoID(v)
		if id == "" {
			return nil, fmt.Errorf("invalid video id or URL: %q", v)
		}
		return []model.Video{{
			VideoID:   id,
			Title:     id,
			URL:       "https://youtu.be/" + id,
			Published: time.Now().UTC().Format(publishedFormat),
		}}, nil
	}

	if strings.TrimSpace(opts.Channel) == "" {
		return nil, fmt.Errorf("missing channel id: pass --channel UC... or set YOUTUBE_CHANNEL_ID")
	}
	return p.fetcher.LatestVideos(ctx, opts.Channel, opts.MaxResults)
}

// processVideo drives one video through drafting, expansion and scoring.
// Returns published=false when the article remains below the threshold.
func (p *Pipeline) processVideo(ctx context.Context, v model.Video, opts RunOptions) (model.PostRecord, string, bool) {
	transcript := p.fetcher.FetchTranscript(ctx, v.VideoID)

	spec := p.builder.Build(ctx, v.Title, transcript, "")
	articleHTML := content.Render(*spec, p.config.Site.CTAPath)

	// Thin draft: one provider expansion when a credential exists,
	// otherwise flag the draft for human review and keep going
	if wc := content.WordCount(articleHTML); wc < p.config.Publish.MinWords {
		if p.provider != nil {
			spec, articleHTML = p.expandDraft(ctx, v, spec, transcript, articleHTML, opts)
		} else {
			msg := fmt.Sprintf("Auto-blog draft for %s is %d words (<%d) and needs human expansion.",
				v.VideoID, wc, p.config.Publish.MinWords)
			if opts.DryRun {
				fmt.Println("[dry-run] " + msg)
			} else {
				p.notifier.Send(msg)
			}
		}
	}

	keyword := KeywordFromTitle(v.Title)
	total, breakdown := p.scorer.Calculate(articleHTML, spec.Title, spec.Description, keyword)

	// Regenerate while under threshold, bounded by the attempt budget
	attempts := 0
	for total < p.config.Publish.Threshold && attempts < p.config.Publish.MaxAttempts && p.provider != nil {
		attempts++
		if opts.DryRun {
			fmt.Printf("[dry-run] Score %d below threshold %d; regenerating (attempt %d)\n",
				total, p.config.Publish.Threshold, attempts)
		}
		spec = p.builder.Build(ctx, v.Title, transcript, articleHTML)
		articleHTML = content.Render(*spec, p.config.Site.CTAPath)
		total, breakdown = p.scorer.Calculate(articleHTML, spec.Title, spec.Description, keyword)
	}

	if !opts.Force && total < p.config.Publish.Threshold {
		msg := deferredMessage(v, total, p.config.Publish.Threshold, breakdown)
		if opts.DryRun {
			fmt.Println("[dry-run] " + msg)
		} else {
			p.notifier.Send(msg)
		}
		return model.PostRecord{}, "", false
	}

	return p.buildPost(v, spec, transcript), articleHTML, true
}

// expandDraft runs the single whole-article expansion request for a thin
// draft, merging the provider output back into the spec
func (p *Pipeline) expandDraft(ctx context.Context, v model.Video, spec *model.ArticleSpec, transcript, articleHTML string, opts RunOptions) (*model.ArticleSpec, string) {
	if opts.DryRun {
		fmt.Printf("[dry-run] Draft below %d words, requesting expansion\n", p.config.Publish.MinWords)
	}

	draft, err := p.expander.ExpandDraft(ctx, v.Title, transcript, articleHTML)
	if err != nil {
		msg := fmt.Sprintf("Auto-blog expansion failed for %s: %v", v.VideoID, err)
		if opts.DryRun {
			fmt.Println("[dry-run] " + msg)
		} else {
			p.notifier.Send(msg)
		}
		return spec, articleHTML
	}

	if draft.Title != "" {
		spec.Title = draft.Title
	}
	if draft.Description != "" {
		spec.Description = draft.Description
	}
	return spec, draft.HTML
}

func (p *Pipeline) buildPost(v model.Video, spec *model.ArticleSpec, transcript string) model.PostRecord {
	title := strings.TrimSpace(spec.Title)
	if title == "" {
		title = v.Title
	}

	description := content.Truncate(strings.TrimSpace(spec.Description), 160)
	if description == "" {
		description = "Insights from: " + v.Title
	}

	category := strings.TrimSpace(spec.Category)
	if category == "" {
		category = p.config.Site.DefaultCategory
	}

	slug := Slugify(title)
	return model.PostRecord{
		Slug:          slug,
		Title:         title,
		Description:   description,
		PublishedDate: v.Published,
		UpdatedDate:   v.Published,
		ReadingTime:   EstimateReadingTime(transcript),
		Category:      category,
		Template:      TemplateName(slug),
		VideoID:       v.VideoID,
		YouTubeURL:    v.URL,
		Source:        "youtube",
	}
}

// announce sends the success notification for each published post
func (p *Pipeline) announce(created []model.PostRecord, dryRun bool) {
	if len(created) == 0 {
		return
	}
	base := strings.TrimRight(p.config.Site.BaseURL, "/")
	for _, post := range created {
		text := fmt.Sprintf("New blog post created from YouTube upload: *%s*\n%s/blog/%s\nVideo: %s",
			post.Title, base, post.Slug, post.YouTubeURL)
		if dryRun {
			fmt.Printf("[dry-run] Slack message: %s\n", text)
		} else {
			p.notifier.Send(text)
		}
	}
}

// deferredMessage reports a below-threshold article with its breakdown,
// criteria in stable order
func deferredMessage(v model.Video, total, threshold int, breakdown model.ScoreBreakdown) string {
	lines := []string{
		fmt.Sprintf("Auto-blog DID NOT publish: %s (%s)", v.Title, v.VideoID),
		fmt.Sprintf("Score: %d/%d", total, threshold),
		"Breakdown:",
	}

	criteria := make([]string, 0, len(breakdown))
	for k := range breakdown {
		criteria = append(criteria, k)
	}
	sort.Strings(criteria)
	for _, k := range criteria {
		lines = append(lines, fmt.Sprintf("- %s: %d", k, breakdown[k]))
	}
	return strings.Join(lines, "\n")
}
