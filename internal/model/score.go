package model

// ScoreBreakdown maps criterion name to awarded points. Ephemeral:
// recomputed on every scoring call, never persisted.
type ScoreBreakdown map[string]int

// Criteria lists every rubric criterion in report order. The names and
// point values are a fixed contract; changing them changes published
// behavior.
var Criteria = []string{
	"word_count",
	"title_length",
	"meta_description",
	"h2_count",
	"keyword_presence",
	"internal_links",
	"external_links",
	"images_alt",
	"toc",
	"ai_phrases",
	"schema",
	"mobile",
	"trust_signals",
}
