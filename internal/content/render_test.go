package content

import (
	"strings"
	"testing"

	"github.com/stijnwollerich/sparksmetrics-website/internal/model"
)

func TestRender_SchemaFirst(t *testing.T) {
	html := Render(model.ArticleSpec{Title: "T", Description: "D"}, "")

	if !strings.HasPrefix(html, `<script type="application/ld+json">`) {
		t.Errorf("rendered article does not start with the JSON-LD block")
	}
	if !strings.Contains(html, `"headline":"T"`) {
		t.Errorf("headline missing from JSON-LD: %s", html[:120])
	}
}

func TestRender_CTAGuard(t *testing.T) {
	// Spec without any CTA anywhere: the guard must append one
	html := Render(model.ArticleSpec{
		Title: "T",
		Sections: []model.Section{
			{Heading: "One", Paragraphs: []string{"<p>text</p>"}},
		},
	}, "")
	if !strings.Contains(html, "/schedule-a-call/") {
		t.Error("CTA guard did not fire for a spec without a conversion link")
	}

	// Spec that already links the CTA path: no duplicate callout
	html = Render(model.ArticleSpec{
		Title:       "T",
		ClosingHTML: `<p><a class="btn btn-primary" href="/schedule-a-call/">Call</a></p>`,
	}, "")
	if strings.Count(html, "/schedule-a-call/") != 1 {
		t.Errorf("expected exactly one CTA link, got %d", strings.Count(html, "/schedule-a-call/"))
	}
}

func TestRender_ConfiguredCTAPath(t *testing.T) {
	spec := model.ArticleSpec{
		Title: "T",
		Sections: []model.Section{
			{Heading: "One", Paragraphs: []string{"<p>text</p>"}},
		},
	}

	html := Render(spec, "/contact/")
	if !strings.Contains(html, `href="/contact/"`) {
		t.Error("CTA guard ignored the configured conversion path")
	}
	if strings.Contains(html, "/schedule-a-call/") {
		t.Error("default conversion path leaked into a configured render")
	}

	// Hero CTA URL defaults to the configured path too
	html = Render(model.ArticleSpec{
		Title: "T",
		Hero:  model.Hero{LeadHTML: "<p>lead</p>"},
	}, "/contact/")
	if !strings.Contains(html, `href="/contact/"`) {
		t.Error("hero CTA URL did not default to the configured path")
	}
}

func TestRender_SectionAnchors(t *testing.T) {
	html := Render(model.ArticleSpec{
		Title: "T",
		Sections: []model.Section{
			{Heading: "First"},
			{Heading: "Second"},
		},
	}, "")

	if !strings.Contains(html, `<h2>First<span id="toc-1"></span></h2>`) {
		t.Error("first section anchor missing")
	}
	if !strings.Contains(html, `<h2>Second<span id="toc-2"></span></h2>`) {
		t.Error("second section anchor missing")
	}
}

func TestRender_StatsCapped(t *testing.T) {
	stats := []model.Stat{
		{Value: "1", Label: "a"},
		{Value: "2", Label: "b"},
		{Value: "3", Label: "c"},
		{Value: "4", Label: "d"},
	}
	html := Render(model.ArticleSpec{Title: "T", Stats: stats}, "")

	if got := strings.Count(html, `class="stat-card"`); got != 3 {
		t.Errorf("expected 3 stat cards, got %d", got)
	}
}

func TestRender_HeroDefaults(t *testing.T) {
	html := Render(model.ArticleSpec{
		Title: "Main Title",
		Hero:  model.Hero{LeadHTML: "<p>lead</p>"},
	}, "")

	if !strings.Contains(html, "<h2>Main Title</h2>") {
		t.Error("hero title did not default to the article title")
	}
	if !strings.Contains(html, `href="/schedule-a-call/"`) {
		t.Error("hero CTA URL did not default to the conversion path")
	}
	if !strings.Contains(html, "Hire Sparksmetrics") {
		t.Error("hero CTA text did not default")
	}
}

func TestRender_TipsAndLists(t *testing.T) {
	html := Render(model.ArticleSpec{
		Title: "T",
		Sections: []model.Section{
			{
				Heading:    "S",
				Paragraphs: []string{"plain prose fragment"},
				Tips:       []string{"measure first"},
				Lists:      [][]string{{"item one", "item two"}},
			},
		},
	}, "")

	if !strings.Contains(html, "<p>plain prose fragment</p>") {
		t.Error("plain paragraph was not wrapped")
	}
	if !strings.Contains(html, `<div class="tip-banner"><strong>Tip:</strong> measure first</div>`) {
		t.Error("tip banner missing")
	}
	if !strings.Contains(html, "<li>item one</li>") || !strings.Contains(html, "<li>item two</li>") {
		t.Error("list items missing")
	}
}

func TestRender_FAQsAndChecklist(t *testing.T) {
	html := Render(model.ArticleSpec{
		Title:     "T",
		Checklist: []string{"do the thing"},
		FAQs: []model.FAQ{
			{Question: "Q?", AnswerHTML: "<p>A.</p>"},
		},
	}, "")

	if !strings.Contains(html, "<h3>Implementation checklist</h3>") {
		t.Error("checklist section missing")
	}
	if !strings.Contains(html, "<h4>Q?</h4>") || !strings.Contains(html, "<p>A.</p>") {
		t.Error("FAQ entry missing")
	}
}
