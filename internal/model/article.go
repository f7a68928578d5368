package model

// ArticleSpec is the structured intermediate representation of an article
// before HTML rendering. The JSON tags are the provider contract: the
// generative provider is asked to return exactly this shape.
type ArticleSpec struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Hero        Hero      `json:"hero"`
	Stats       []Stat    `json:"stats,omitempty"`
	Sections    []Section `json:"sections"`
	Checklist   []string  `json:"checklist,omitempty"`
	FAQs        []FAQ     `json:"faqs,omitempty"`
	ClosingHTML string    `json:"closing_html,omitempty"`
}

// Hero is the lead block at the top of an article
type Hero struct {
	Kicker   string `json:"kicker,omitempty"`
	Title    string `json:"title"`
	LeadHTML string `json:"lead_html"`
	CTAText  string `json:"cta_text,omitempty"`
	CTAURL   string `json:"cta_url,omitempty"`
}

// Stat is a single stat card (at most 3 are rendered)
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Section is one article section: a heading plus ordered paragraphs,
// each paragraph a self-contained HTML fragment
type Section struct {
	Heading    string     `json:"h2"`
	Subheads   []string   `json:"h3s,omitempty"`
	Paragraphs []string   `json:"paragraphs"`
	Tips       []string   `json:"tips,omitempty"`
	Lists      [][]string `json:"lists,omitempty"`
}

// FAQ is a question/answer pair
type FAQ struct {
	Question   string `json:"q"`
	AnswerHTML string `json:"a_html"`
}

// IsZero reports whether the hero block carries no content
func (h Hero) IsZero() bool {
	return h == Hero{}
}
