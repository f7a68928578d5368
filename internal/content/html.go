package content

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var wordRe = regexp.MustCompile(`\w+`)

// StripTags returns the text content of an HTML fragment with tags removed
// and whitespace collapsed
func StripTags(fragment string) string {
	tok := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))
		case html.TextToken:
			b.Write(tok.Text())
			b.WriteByte(' ')
		}
	}
}

// WordCount counts the words in the text content of an HTML fragment
func WordCount(fragment string) int {
	return len(wordRe.FindAllString(StripTags(fragment), -1))
}

// Truncate shortens s to at most max runes, appending "..." when it cuts
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
