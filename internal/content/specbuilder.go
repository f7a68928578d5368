package content

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/stijnwollerich/sparksmetrics-website/internal/llm"
	"github.com/stijnwollerich/sparksmetrics-website/internal/model"
)

// promptChunkChars bounds each transcript part included in a spec prompt
const promptChunkChars = 12000

// SpecBuilder produces a normalized article spec, preferring a structured
// provider request and falling back to the deterministic builder. Build
// never fails: the last strategy has no external dependencies.
type SpecBuilder struct {
	provider llm.Provider
	model    string
	minWords int
	ctaPath  string
	verbose  bool
}

// NewSpecBuilder creates a spec builder. A nil provider disables the
// primary path entirely; an empty ctaPath uses the default conversion
// path.
func NewSpecBuilder(provider llm.Provider, modelName string, minWords int, ctaPath string, verbose bool) *SpecBuilder {
	if minWords <= 0 {
		minWords = 1000
	}
	return &SpecBuilder{
		provider: provider,
		model:    modelName,
		minWords: minWords,
		ctaPath:  resolveCTAPath(ctaPath),
		verbose:  verbose,
	}
}

// specStrategy is one entry in the ordered fallback chain: the first
// strategy to return without error wins
type specStrategy struct {
	name string
	run  func(ctx context.Context) (*model.ArticleSpec, error)
}

// Build assembles an article spec from a title, full transcript and an
// optional existing HTML draft
func (b *SpecBuilder) Build(ctx context.Context, title, transcript, existingHTML string) *model.ArticleSpec {
	strategies := []specStrategy{
		{"provider", func(ctx context.Context) (*model.ArticleSpec, error) {
			return b.buildWithProvider(ctx, title, transcript, existingHTML)
		}},
		{"deterministic", func(context.Context) (*model.ArticleSpec, error) {
			return FallbackSpec(title, transcript, existingHTML, b.ctaPath), nil
		}},
	}

	for _, s := range strategies {
		spec, err := s.run(ctx)
		if err != nil {
			if b.verbose {
				fmt.Fprintf(os.Stderr, "Warning: spec strategy %s failed: %v\n", s.name, err)
			}
			continue
		}
		return spec
	}
	// Unreachable: the deterministic strategy cannot fail
	return FallbackSpec(title, transcript, existingHTML, b.ctaPath)
}

// buildWithProvider requests a structured JSON spec, then issues at most
// one repair request when the rendered article is below the word minimum
func (b *SpecBuilder) buildWithProvider(ctx context.Context, title, transcript, existingHTML string) (*model.ArticleSpec, error) {
	if b.provider == nil {
		return nil, fmt.Errorf("no provider configured")
	}

	resp, err := b.provider.Generate(ctx, llm.GenerateRequest{
		System:   writerSystem,
		Prompt:   b.specPrompt(title, transcript, existingHTML),
		Model:    b.model,
		JSONMode: true,
	})
	if err != nil {
		return nil, err
	}

	spec, err := decodeSpec(resp.Text)
	if err != nil {
		return nil, err
	}
	b.fillDefaults(spec, title, transcript, existingHTML)

	// Post-generation validation: one repair round for thin output, keeping
	// the original spec when the repair does not parse
	if WordCount(Render(*spec, b.ctaPath)) < b.minWords {
		if repaired := b.repair(ctx, spec, transcript); repaired != nil {
			spec = repaired
			b.fillDefaults(spec, title, transcript, existingHTML)
		}
	}

	return spec, nil
}

func (b *SpecBuilder) repair(ctx context.Context, spec *model.ArticleSpec, transcript string) *model.ArticleSpec {
	previous, err := json.Marshal(spec)
	if err != nil {
		return nil
	}

	prompt := fmt.Sprintf(`Please produce an improved structured JSON specification for the article that is at least %d words when rendered.
Use the same keys as before (title, description, hero, stats, sections, checklist, faqs, closing_html).
Here is the previous JSON spec (improve it, keep structure):
%s

Transcript for reference:
%s

Rules:
- Return strictly valid JSON only.
- Make sections substantially longer: each section should contain 3-6 paragraphs of ~40-80 words each, including examples and actionable steps.`,
		b.minWords, previous, transcriptParts(transcript))

	resp, err := b.provider.Generate(ctx, llm.GenerateRequest{
		System:   writerSystem,
		Prompt:   prompt,
		Model:    b.model,
		JSONMode: true,
	})
	if err != nil {
		if b.verbose {
			fmt.Fprintf(os.Stderr, "Warning: spec repair request failed: %v\n", err)
		}
		return nil
	}

	repaired, err := decodeSpec(resp.Text)
	if err != nil {
		if b.verbose {
			fmt.Fprintf(os.Stderr, "Warning: spec repair output unusable: %v\n", err)
		}
		return nil
	}
	return repaired
}

// specPrompt builds the structured-spec instruction. The transcript is
// chunked so very long transcripts stay presentable in one prompt.
func (b *SpecBuilder) specPrompt(title, transcript, existingHTML string) string {
	return fmt.Sprintf(`You are an expert SEO content strategist and conversion copywriter. Produce a structured JSON specification for a long-form, publication-ready article based on the video transcript and existing draft.

Return a single JSON object (strict JSON, no extra text) with these keys:
- title: string (human-friendly headline)
- description: string (<=160 chars)
- hero: { kicker, title, lead_html, cta_text, cta_url }
- stats: [ { value, label } ... ] (0-3 items)
- sections: [ { h2, h3s:[...], paragraphs:[...], tips:[...], lists:[...] } ... ] (4-6 substantive sections)
- checklist: [string, ...]
- faqs: [ { q, a_html } ]
- closing_html: string (final CTA + summary)

Hard requirements (MUST follow exactly):
- The final rendered article MUST be at least %d words. If your first output is shorter, expand sections and paragraphs until the word count is satisfied.
- Title: must be a readable headline (do NOT return the raw video id). If you cannot create a better headline, use the provided title exactly.
- Hero: include a hero.title and lead_html containing 2 short paragraphs (about 40-70 words each) that hook the reader and promise a clear benefit.
- Sections: provide 4-6 substantive sections, each with a descriptive h2 and 3-6 paragraphs (~40-80 words each) with concrete examples, steps, and micro-checks; optionally h3s, tips, and lists.
- Checklist: include 5-10 concrete checklist items with optional time estimates (e.g. "5-10 min", "1 day").
- FAQs: include 2-4 common questions with concise helpful answers.
- Closing_html: include a short final CTA using site classes (btn, btn-primary, btn-outline) linking to %s.
- Tone: direct, practical, punchy. Short paragraphs and specific, measurable advice. Do NOT include AI meta-commentary.
- Output: produce STRICTLY valid JSON only.

Transcript for reference:
%s

Existing draft (for reference):
%s

Use this TITLE as the canonical title if you cannot produce a better one: %q.
Return strictly valid JSON. Use only the site's CSS classes for HTML fragments.`,
		b.minWords, b.ctaPath, transcriptParts(transcript), clip(existingHTML, 4000), title)
}

// transcriptParts labels transcript chunks for inclusion in a prompt
func transcriptParts(transcript string) string {
	if strings.TrimSpace(transcript) == "" {
		return "(no transcript available)"
	}
	chunks := SplitChunks(transcript, (len(transcript)+promptChunkChars-1)/promptChunkChars)
	var b strings.Builder
	for i, c := range chunks {
		fmt.Fprintf(&b, "\n--- TRANSCRIPT PART %d/%d ---\n%s\n", i+1, len(chunks), c)
	}
	return b.String()
}

// decodeSpec parses provider output into an article spec; only a
// well-formed JSON object is accepted
func decodeSpec(text string) (*model.ArticleSpec, error) {
	result := llm.ParseResult(text)
	if result.Kind != llm.StructuredJSON {
		return nil, fmt.Errorf("provider response is not a JSON object")
	}
	var spec model.ArticleSpec
	if err := json.Unmarshal(result.JSON, &spec); err != nil {
		return nil, fmt.Errorf("decode spec: %w", err)
	}
	return &spec, nil
}

// fillDefaults guarantees the spec never misses required fields: the
// builder contract is that every returned spec is renderable
func (b *SpecBuilder) fillDefaults(spec *model.ArticleSpec, title, transcript, existingHTML string) {
	if strings.TrimSpace(spec.Title) == "" {
		spec.Title = title
	}
	if strings.TrimSpace(spec.Description) == "" {
		plain := StripTags(transcript)
		if plain == "" {
			plain = StripTags(existingHTML)
		}
		if plain == "" {
			plain = title
		}
		spec.Description = Truncate(plain, 160)
	}
	if spec.Sections == nil {
		spec.Sections = []model.Section{}
	}
}
