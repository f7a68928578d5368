package score

import (
	"regexp"
	"strings"

	"github.com/stijnwollerich/sparksmetrics-website/internal/content"
	"github.com/stijnwollerich/sparksmetrics-website/internal/model"
)

var (
	h2Re        = regexp.MustCompile(`(?i)<h2\b`)
	firstParaRe = regexp.MustCompile(`(?is)<p\b[^>]*>(.*?)</p>`)
	tagRe       = regexp.MustCompile(`<[^>]+>`)
	intLinkRe   = regexp.MustCompile(`href=["'](/[^"']+)["']`)
	extLinkRe   = regexp.MustCompile(`href=["']https?://([^"']+)["']`)
	imgRe       = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	imgAltRe    = regexp.MustCompile(`(?i)\balt=["'].*?["']`)
	tocRe       = regexp.MustCompile(`(?i)(Table of contents|<nav[^>]+toc|id=["']toc["'])`)
	schemaRe    = regexp.MustCompile(`(?i)application/ld\+json`)
	authorRe    = regexp.MustCompile(`(?i)author|byline|class=["']author`)
	refRe       = regexp.MustCompile(`(?i)references|sources|cite`)
)

// aiPhrases are generic filler openings that cost the article its
// ai_phrases points when present
var aiPhrases = []string{
	"as an ai",
	"as an ai language model",
	"in this article we will",
	"in this post i",
}

// Scorer evaluates rendered article HTML against a fixed on-page rubric.
// The rubric is deterministic: identical inputs always produce identical
// scores, so scores are comparable across runs.
type Scorer struct {
	ownDomain string
}

// NewScorer creates a scorer. ownDomain marks outbound links to the
// site's own domain so they do not count as external references.
func NewScorer(ownDomain string) *Scorer {
	if ownDomain == "" {
		ownDomain = "sparksmetrics"
	}
	return &Scorer{ownDomain: strings.ToLower(ownDomain)}
}

// Calculate scores an article out of 100 and returns the per-criterion
// breakdown. Every criterion in model.Criteria always appears in the
// breakdown, including zero-point ones.
func (s *Scorer) Calculate(html, title, description, keyword string) (int, model.ScoreBreakdown) {
	breakdown := model.ScoreBreakdown{}
	total := 0

	add := func(criterion string, pts int) {
		breakdown[criterion] = pts
		total += pts
	}

	// Word count, up to 15 points with 700+ words for full credit
	words := content.WordCount(html)
	ratio := float64(words) / 700
	if ratio > 1 {
		ratio = 1
	}
	add("word_count", int(15 * ratio))

	// Title length sweet spot is 40-70 chars
	tlen := len(title)
	switch {
	case tlen >= 40 && tlen <= 70:
		add("title_length", 10)
	case (tlen >= 30 && tlen < 40) || (tlen > 70 && tlen <= 80):
		add("title_length", 5)
	default:
		add("title_length", 0)
	}

	// Meta description sweet spot is 120-160 chars
	dlen := len(description)
	switch {
	case dlen >= 120 && dlen <= 160:
		add("meta_description", 10)
	case (dlen >= 100 && dlen < 120) || (dlen > 160 && dlen <= 180):
		add("meta_description", 5)
	default:
		add("meta_description", 0)
	}

	// Section structure: 3+ h2 headings for full credit
	h2Count := len(h2Re.FindAllString(html, -1))
	switch {
	case h2Count >= 3:
		add("h2_count", 10)
	case h2Count == 2:
		add("h2_count", 5)
	default:
		add("h2_count", 0)
	}

	add("keyword_presence", s.keywordPoints(html, title, keyword))

	// Internal links: any root-relative href
	if len(intLinkRe.FindAllString(html, -1)) >= 1 {
		add("internal_links", 10)
	} else {
		add("internal_links", 0)
	}

	add("external_links", s.externalLinkPoints(html))
	add("images_alt", imagePoints(html))

	if tocRe.MatchString(html) {
		add("toc", 5)
	} else {
		add("toc", 0)
	}

	if containsAIPhrase(html) {
		add("ai_phrases", 0)
	} else {
		add("ai_phrases", 5)
	}

	if schemaRe.MatchString(html) {
		add("schema", 5)
	} else {
		add("schema", 0)
	}

	// Responsiveness comes from the site template, always credited
	add("mobile", 5)

	add("trust_signals", trustPoints(html))

	if total > 100 {
		total = 100
	}
	return total, breakdown
}

// keywordPoints checks the target keyword in the title and the first
// paragraph. Without a keyword there is partial credit for having a
// title at all.
func (s *Scorer) keywordPoints(html, title, keyword string) int {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		if title != "" {
			return 5
		}
		return 0
	}

	firstPara := ""
	if m := firstParaRe.FindStringSubmatch(html); m != nil {
		firstPara = strings.ToLower(strings.TrimSpace(tagRe.ReplaceAllString(m[1], "")))
	}

	titleHas := strings.Contains(strings.ToLower(title), kw)
	paraHas := strings.Contains(firstPara, kw)
	switch {
	case titleHas && paraHas:
		return 10
	case titleHas || paraHas:
		return 5
	default:
		return 0
	}
}

// externalLinkPoints credits outbound references, excluding links that
// point back at the site's own domain
func (s *Scorer) externalLinkPoints(html string) int {
	for _, m := range extLinkRe.FindAllStringSubmatch(html, -1) {
		if !strings.Contains(strings.ToLower(m[1]), s.ownDomain) {
			return 5
		}
	}
	return 0
}

func imagePoints(html string) int {
	imgs := imgRe.FindAllString(html, -1)
	if len(imgs) == 0 {
		return 0
	}
	for _, tag := range imgs {
		if !imgAltRe.MatchString(tag) {
			return 2
		}
	}
	return 5
}

func containsAIPhrase(html string) bool {
	lower := strings.ToLower(html)
	for _, p := range aiPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func trustPoints(html string) int {
	author := authorRe.MatchString(html)
	refs := refRe.MatchString(html)
	switch {
	case author && refs:
		return 10
	case author || refs:
		return 5
	default:
		return 0
	}
}
