package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stijnwollerich/sparksmetrics-website/internal/model"
)

// testConfig isolates a run inside a temp directory with caching, the
// transcript API and the LLM provider all disabled
func testConfig(t *testing.T) *model.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Transcript.BaseURL = ""
	cfg.LLM.Provider = ""
	cfg.Publish.PostsPath = filepath.Join(dir, "blog_posts.json")
	cfg.Publish.TemplatesDir = filepath.Join(dir, "templates")
	return cfg
}

func TestRun_DeterministicDraftBelowThresholdDefers(t *testing.T) {
	cfg := testConfig(t)
	p := NewPipeline(cfg)

	result, err := p.Run(context.Background(), RunOptions{Video: "dQw4w9WgXcQ"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(result.Created) != 0 {
		t.Errorf("expected no published posts, got %d", len(result.Created))
	}
	if result.Deferred != 1 {
		t.Errorf("expected 1 deferred, got %d", result.Deferred)
	}
	if _, err := os.Stat(cfg.Publish.PostsPath); !os.IsNotExist(err) {
		t.Error("deferred run must not write the post index")
	}
}

func TestRun_ForcePublishes(t *testing.T) {
	cfg := testConfig(t)
	p := NewPipeline(cfg)

	result, err := p.Run(context.Background(), RunOptions{Video: "dQw4w9WgXcQ", Force: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(result.Created) != 1 {
		t.Fatalf("expected 1 published post, got %d", len(result.Created))
	}
	post := result.Created[0]
	if post.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("unexpected video id: %q", post.VideoID)
	}
	if post.Source != "youtube" {
		t.Errorf("unexpected source: %q", post.Source)
	}

	if _, err := os.Stat(filepath.Join(cfg.Publish.TemplatesDir, post.Template)); err != nil {
		t.Errorf("expected page file for published post: %v", err)
	}

	idx, err := LoadIndex(cfg.Publish.PostsPath)
	if err != nil {
		t.Fatalf("reload index: %v", err)
	}
	if !idx.HasVideo("dQw4w9WgXcQ") {
		t.Error("published video missing from index")
	}
}

func TestRun_ConfiguredCTAPathReachesPage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Site.CTAPath = "/contact/"
	p := NewPipeline(cfg)

	result, err := p.Run(context.Background(), RunOptions{Video: "dQw4w9WgXcQ", Force: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Created) != 1 {
		t.Fatalf("expected 1 published post, got %d", len(result.Created))
	}

	raw, err := os.ReadFile(filepath.Join(cfg.Publish.TemplatesDir, result.Created[0].Template))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if !strings.Contains(string(raw), `href="/contact/"`) {
		t.Error("configured CTA path missing from the published page")
	}
}

func TestRun_DuplicateVideoSkipped(t *testing.T) {
	cfg := testConfig(t)
	p := NewPipeline(cfg)

	if _, err := p.Run(context.Background(), RunOptions{Video: "dQw4w9WgXcQ", Force: true}); err != nil {
		t.Fatalf("first run: %v", err)
	}

	result, err := p.Run(context.Background(), RunOptions{Video: "dQw4w9WgXcQ", Force: true})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if result.Skipped != 1 {
		t.Errorf("expected duplicate to be skipped, got Skipped=%d", result.Skipped)
	}
	if len(result.Created) != 0 {
		t.Errorf("expected zero publishes for duplicate, got %d", len(result.Created))
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	p := NewPipeline(cfg)

	result, err := p.Run(context.Background(), RunOptions{Video: "dQw4w9WgXcQ", Force: true, DryRun: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Created) != 1 {
		t.Fatalf("dry run should still report the post, got %d", len(result.Created))
	}
	if _, err := os.Stat(cfg.Publish.PostsPath); !os.IsNotExist(err) {
		t.Error("dry run wrote the post index")
	}
	if _, err := os.Stat(cfg.Publish.TemplatesDir); !os.IsNotExist(err) {
		t.Error("dry run wrote the templates dir")
	}
}

func TestRun_InvalidVideo(t *testing.T) {
	p := NewPipeline(testConfig(t))
	if _, err := p.Run(context.Background(), RunOptions{Video: "not a video"}); err == nil {
		t.Error("expected error for invalid video reference")
	}
}

func TestRun_MissingChannel(t *testing.T) {
	p := NewPipeline(testConfig(t))
	if _, err := p.Run(context.Background(), RunOptions{}); err == nil {
		t.Error("expected error when neither channel nor video is given")
	}
}
