package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stijnwollerich/sparksmetrics-website/internal/llm"
)

// writerSystem is the system instruction for all article writing calls
const writerSystem = "You are a helpful SEO writing assistant."

// Expander rewrites transcript chunks into HTML fragments via the
// generative provider. Any provider failure is returned as an error for
// the caller to fall back on; Expand never decides retry policy itself.
type Expander struct {
	provider llm.Provider
	model    string
	ctaPath  string
}

// NewExpander creates an expander backed by the given provider (nil is
// allowed; Expand then always errors and callers use FallbackParagraphs).
// An empty ctaPath uses the default conversion path.
func NewExpander(provider llm.Provider, model, ctaPath string) *Expander {
	return &Expander{provider: provider, model: model, ctaPath: resolveCTAPath(ctaPath)}
}

// Expand asks the provider to rewrite a transcript chunk into an HTML
// fragment of at least one paragraph for the given heading
func (e *Expander) Expand(ctx context.Context, heading, chunk string) (string, error) {
	if e.provider == nil {
		return "", fmt.Errorf("no provider configured")
	}

	prompt := fmt.Sprintf(`Rewrite and expand the following transcript excerpt into a polished HTML fragment for a section titled %q.
Use <p>, <ul>, <ol> and <strong> where helpful. Write 2-4 substantial paragraphs with concrete, practical advice.
Return either the HTML fragment directly or a JSON object {"html": "..."}.

Transcript excerpt:
%s`, heading, chunk)

	resp, err := e.provider.Generate(ctx, llm.GenerateRequest{
		System: writerSystem,
		Prompt: prompt,
		Model:  e.model,
	})
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", heading, err)
	}

	fragment, err := htmlFromResult(llm.ParseResult(resp.Text))
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", heading, err)
	}
	return fragment, nil
}

// Draft is a whole-article provider output: the merged replacement for a
// thin deterministic draft
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	HTML        string `json:"html"`
}

// ExpandDraft asks the provider to grow an existing article draft to a
// full-length article, returning title/description/html
func (e *Expander) ExpandDraft(ctx context.Context, title, transcript, existingHTML string) (*Draft, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("no provider configured")
	}

	prompt := fmt.Sprintf(`You are an expert SEO writer for an agency. Expand and rewrite the following article (HTML fragment) into a detailed, practical, original article of at least 1000 words. Keep formatting as an HTML fragment (use <h2>, <h3>, <p>, <ul>, <ol>, <blockquote> where helpful). Include practical examples, step-by-step checks, and an implementation checklist. Include at least one CTA link to %s. Do not include an <article> wrapper. Return a JSON object with keys: title, description (<=160 chars), html.

Transcript (for reference):
%s

Existing article HTML (for reference):
%s`, e.ctaPath, clip(transcript, 12000), clip(existingHTML, 4000))

	resp, err := e.provider.Generate(ctx, llm.GenerateRequest{
		System:   writerSystem,
		Prompt:   prompt,
		Model:    e.model,
		JSONMode: true,
	})
	if err != nil {
		return nil, fmt.Errorf("expand draft: %w", err)
	}

	result := llm.ParseResult(resp.Text)
	switch result.Kind {
	case llm.StructuredJSON:
		var draft Draft
		if err := json.Unmarshal(result.JSON, &draft); err != nil {
			return nil, fmt.Errorf("expand draft: decode: %w", err)
		}
		if draft.HTML == "" {
			return nil, fmt.Errorf("expand draft: response has no html")
		}
		return &draft, nil
	case llm.DirectHTML:
		return &Draft{HTML: result.HTML}, nil
	default:
		return nil, fmt.Errorf("expand draft: unusable provider output")
	}
}

// FallbackParagraphs deterministically groups the chunk's sentences into
// paragraphs of about 3 sentences or 120 words each and wraps each group
// in a paragraph tag. Empty input yields an empty string.
func FallbackParagraphs(text string) string {
	sentences := splitSentences(strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " ")))
	if len(sentences) == 0 {
		return ""
	}

	const (
		maxSentences = 3
		maxWords     = 120
	)

	var parts []string
	var group []string
	words := 0
	flush := func() {
		if len(group) > 0 {
			parts = append(parts, "<p>"+strings.Join(group, " ")+"</p>")
			group = nil
			words = 0
		}
	}
	for _, s := range sentences {
		w := len(wordRe.FindAllString(s, -1))
		if len(group) >= maxSentences || (words > 0 && words+w > maxWords) {
			flush()
		}
		group = append(group, s)
		words += w
	}
	flush()

	return strings.Join(parts, "\n")
}

// htmlFromResult extracts an HTML fragment from a parsed provider result
func htmlFromResult(result llm.Result) (string, error) {
	switch result.Kind {
	case llm.StructuredJSON:
		var payload struct {
			HTML string `json:"html"`
		}
		if err := json.Unmarshal(result.JSON, &payload); err != nil || payload.HTML == "" {
			return "", fmt.Errorf("response object has no html field")
		}
		return payload.HTML, nil
	case llm.DirectHTML:
		fragment := result.HTML
		if !strings.Contains(fragment, "<p") {
			// Plain prose: paragraph-group it so the contract (at least
			// one paragraph) holds
			fragment = FallbackParagraphs(fragment)
		}
		if fragment == "" {
			return "", fmt.Errorf("empty fragment")
		}
		return fragment, nil
	default:
		return "", fmt.Errorf("unusable provider output")
	}
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
