// Package content builds article specs and HTML from video transcripts,
// with a generative provider on the primary path and deterministic
// transforms as fallback.
package content

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	sentenceRe   = regexp.MustCompile(`[^.!?]+[.!?]+["')\]]*|[^.!?]+$`)
)

// SplitChunks splits raw text into at most target ordered chunks aligned on
// sentence boundaries. The concatenation of the chunks carries the original
// content; sentences are never split. Deterministic for identical input.
// Empty or whitespace-only input yields nil.
func SplitChunks(text string, target int) []string {
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if text == "" {
		return nil
	}
	if target <= 1 {
		return []string{text}
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return []string{text}
	}

	// Greedy fill: each chunk takes sentences until it reaches its share of
	// the total length
	per := len(text)/target + 1

	var chunks []string
	var current strings.Builder
	for _, s := range sentences {
		if current.Len() > 0 && current.Len()+1+len(s) > per && len(chunks) < target-1 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(s)
	}
	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks
}

// splitSentences breaks text into trimmed sentences. Text without any
// terminal punctuation comes back as a single sentence.
func splitSentences(text string) []string {
	matches := sentenceRe.FindAllString(text, -1)
	sentences := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimSpace(m)
		if m != "" {
			sentences = append(sentences, m)
		}
	}
	return sentences
}
