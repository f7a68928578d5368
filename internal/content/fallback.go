package content

import (
	"regexp"
	"strings"

	"github.com/stijnwollerich/sparksmetrics-website/internal/model"
)

var (
	ldJSONScriptRe = regexp.MustCompile(`(?is)<script[^>]*type=["']application/ld\+json["'][^>]*>.*?</script>`)
	ldJSONObjectRe = regexp.MustCompile(`\{\s*"@context"[\s\S]*?\}`)
	titleWordRe    = regexp.MustCompile(`[A-Za-z0-9]+`)
)

// FallbackSpec builds a renderable article spec with zero external calls.
// It always produces at least 4 sections and exactly 2 FAQ entries,
// whatever the transcript contains (including nothing at all). An empty
// ctaPath uses the default conversion path.
func FallbackSpec(title, transcript, existingHTML, ctaPath string) *model.ArticleSpec {
	ctaPath = resolveCTAPath(ctaPath)

	raw := transcript
	if raw == "" {
		raw = existingHTML
	}
	// Drop embedded structured-data fragments before deriving text
	raw = ldJSONScriptRe.ReplaceAllString(raw, "")
	raw = ldJSONObjectRe.ReplaceAllString(raw, "")

	short := StripTags(raw)
	if short == "" {
		short = strings.TrimSpace(title)
	}
	description := Truncate(short, 160)

	intro := "<p>" + description + "</p>"
	if description == "" {
		intro = "<p>An actionable guide based on the video content.</p>"
	}

	// Section headings come from capitalized title keywords
	var keywords []string
	for _, w := range titleWordRe.FindAllString(title, -1) {
		keywords = append(keywords, capitalize(w))
		if len(keywords) == 6 {
			break
		}
	}

	sections := []model.Section{
		{
			Heading: "Overview",
			Paragraphs: []string{
				intro,
				"<p>This article summarizes the main points and practical steps you can apply today.</p>",
			},
		},
	}

	var lessons []string
	for i, k := range keywords {
		if i == 4 {
			break
		}
		lessons = append(lessons, "Apply the principle of <strong>"+k+"</strong> where relevant to your funnel.")
	}
	sections = append(sections, model.Section{
		Heading:    "Key lessons",
		Paragraphs: []string{"<p>Key lessons and takeaways:</p>"},
		Lists:      [][]string{lessons},
	})

	checklist := []string{
		"Run qualitative research: surveys and session recordings",
		"Segment funnels by device and channel",
		"Prioritize tests using ICE or RICE",
		"Optimize copy for clarity and trust",
		"Measure impact and learn iteratively",
	}
	sections = append(sections, model.Section{
		Heading:    "Implementation checklist",
		Paragraphs: []string{"<p>Use this checklist to get started quickly.</p>"},
		Lists:      [][]string{checklist},
	})

	sections = append(sections, model.Section{
		Heading: "Examples & next steps",
		Paragraphs: []string{
			"<p>Pick one high-impact page and run a quick usability test this week. Use recordings to validate hypotheses before building big changes.</p>",
		},
	})

	faqs := []model.FAQ{
		{
			Question:   "How long will this take?",
			AnswerHTML: "<p>Small wins in 1-2 weeks; large redesigns require more planning and testing.</p>",
		},
		{
			Question:   "Do I need developer help?",
			AnswerHTML: "<p>Often a CRO specialist and minimal dev support suffice for many impactful tests.</p>",
		},
	}

	return &model.ArticleSpec{
		Title:       title,
		Description: description,
		Hero: model.Hero{
			Title:    title,
			LeadHTML: intro,
			CTAText:  defaultCTAText,
			CTAURL:   ctaPath,
		},
		Sections:    sections,
		Checklist:   checklist,
		FAQs:        faqs,
		ClosingHTML: `<p><a class="btn btn-primary" href="` + ctaPath + `">Schedule a call</a></p>`,
	}
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}
