package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stijnwollerich/sparksmetrics-website/internal/model"
)

const (
	// defaultCTAPath is the primary conversion action; every rendered
	// article must contain at least one reachable path to it
	defaultCTAPath = "/schedule-a-call/"
	defaultCTAText = "Hire Sparksmetrics"
)

// resolveCTAPath applies the default when no path is configured
func resolveCTAPath(ctaPath string) string {
	if strings.TrimSpace(ctaPath) == "" {
		return defaultCTAPath
	}
	return ctaPath
}

// articleMeta is the embedded structured-data block
type articleMeta struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
}

// Render converts an article spec into the final HTML fragment. Pure and
// deterministic: no I/O, identical inputs render to identical output.
// An empty ctaPath uses the default conversion path.
func Render(spec model.ArticleSpec, ctaPath string) string {
	ctaPath = resolveCTAPath(ctaPath)

	var parts []string

	meta, _ := json.Marshal(articleMeta{
		Context:     "https://schema.org",
		Type:        "Article",
		Headline:    spec.Title,
		Description: spec.Description,
	})
	parts = append(parts, `<script type="application/ld+json">`+string(meta)+`</script>`)

	if !spec.Hero.IsZero() {
		heroTitle := spec.Hero.Title
		if heroTitle == "" {
			heroTitle = spec.Title
		}
		ctaText := spec.Hero.CTAText
		if ctaText == "" {
			ctaText = defaultCTAText
		}
		ctaURL := spec.Hero.CTAURL
		if ctaURL == "" {
			ctaURL = ctaPath
		}
		parts = append(parts, fmt.Sprintf(
			`<div class="article-hero"><div class="kicker">%s</div><h2>%s</h2><p class="lead">%s</p><a class="btn btn-primary" href="%s">%s</a></div>`,
			spec.Hero.Kicker, heroTitle, spec.Hero.LeadHTML, ctaURL, ctaText))
	}

	if len(spec.Stats) > 0 {
		parts = append(parts, `<div class="stat-grid">`)
		for i, s := range spec.Stats {
			if i == 3 {
				break
			}
			parts = append(parts, fmt.Sprintf(
				`<div class="stat-card"><div class="text-3xl font-black">%s</div><div class="text-sm text-gray-600">%s</div></div>`,
				s.Value, s.Label))
		}
		parts = append(parts, `</div>`)
	}

	for i, sec := range spec.Sections {
		heading := sec.Heading
		if heading == "" {
			heading = fmt.Sprintf("Section %d", i+1)
		}
		parts = append(parts, fmt.Sprintf(`<h2>%s<span id="toc-%d"></span></h2>`, heading, i+1))
		for _, p := range sec.Paragraphs {
			parts = append(parts, asParagraph(p))
		}
		for _, tip := range sec.Tips {
			parts = append(parts, `<div class="tip-banner"><strong>Tip:</strong> `+tip+`</div>`)
		}
		for _, list := range sec.Lists {
			parts = append(parts, "<ul>")
			for _, item := range list {
				parts = append(parts, "<li>"+item+"</li>")
			}
			parts = append(parts, "</ul>")
		}
		for _, h3 := range sec.Subheads {
			parts = append(parts, "<h3>"+h3+"</h3>")
		}
	}

	if len(spec.Checklist) > 0 {
		parts = append(parts, `<section class="mt-10 p-6 bg-light-base border border-gray-200 rounded-2xl"><h3>Implementation checklist</h3><ul>`)
		for _, item := range spec.Checklist {
			parts = append(parts, "<li>"+item+"</li>")
		}
		parts = append(parts, "</ul></section>")
	}

	if len(spec.FAQs) > 0 {
		parts = append(parts, `<section class="mt-8"><h3>FAQs</h3>`)
		for _, f := range spec.FAQs {
			parts = append(parts, "<h4>"+f.Question+"</h4>")
			parts = append(parts, asParagraph(f.AnswerHTML))
		}
		parts = append(parts, "</section>")
	}

	if spec.ClosingHTML != "" {
		parts = append(parts, spec.ClosingHTML)
	}

	// Guard: the conversion path must always be reachable
	if !strings.Contains(strings.Join(parts, ""), ctaPath) {
		parts = append(parts,
			`<div class="callout"><p class="callout-title">Ready to act?</p><a class="btn btn-primary" href="`+ctaPath+`">Book your free CRO audit</a></div>`)
	}

	return strings.Join(parts, "\n")
}

// asParagraph emits a fragment as-is when it is already markup, otherwise
// wraps it in a paragraph tag
func asParagraph(fragment string) string {
	if strings.HasPrefix(strings.TrimSpace(fragment), "<") {
		return fragment
	}
	return "<p>" + fragment + "</p>"
}
