package pipeline

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

var (
	nonSlugRe    = regexp.MustCompile(`[^a-z0-9\s-]`)
	spaceRunRe   = regexp.MustCompile(`\s+`)
	hyphenRunRe  = regexp.MustCompile(`-{2,}`)
	wordRe       = regexp.MustCompile(`\w+`)
	titleTokenRe = regexp.MustCompile(`[^a-z0-9\s]`)
)

// stopwords are skipped when deriving the primary keyword from a title
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "to": true, "in": true, "on": true, "for": true,
	"with": true, "how": true, "why": true, "what": true, "your": true,
	"this": true, "that": true, "is": true, "are": true,
}

// Slugify converts a title into a URL slug: lowercase alphanumerics and
// hyphens, at most 80 chars. An empty result falls back to a timestamped
// slug so a post always gets a usable path.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, "&", " and ")
	s = nonSlugRe.ReplaceAllString(s, "")
	s = spaceRunRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	if len(s) > 80 {
		s = s[:80]
	}
	if s == "" {
		return fmt.Sprintf("post-%d", time.Now().Unix())
	}
	return s
}

// EstimateReadingTime returns a human label like "4 min read" at 200
// words per minute, never under one minute
func EstimateReadingTime(text string) string {
	words := len(wordRe.FindAllString(text, -1))
	minutes := int(math.Round(float64(words) / 200))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// KeywordFromTitle picks the first significant title token as the scoring
// keyword, skipping stopwords. Returns "" for empty or all-stopword
// titles.
func KeywordFromTitle(title string) string {
	cleaned := titleTokenRe.ReplaceAllString(strings.ToLower(title), "")
	for _, tok := range strings.Fields(cleaned) {
		if !stopwords[tok] {
			return tok
		}
	}
	return ""
}
