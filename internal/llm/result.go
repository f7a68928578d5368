package llm

import (
	"encoding/json"
	"strings"
)

// ResultKind classifies the shape of a provider response
type ResultKind int

const (
	// Unrecognized means the response is unusable; the caller should fall
	// back to a deterministic path
	Unrecognized ResultKind = iota

	// DirectHTML means the response is a plain text/HTML fragment
	DirectHTML

	// StructuredJSON means the response is (or contains) a JSON object
	StructuredJSON
)

// Result is the tagged variant a provider response parses into. Only one
// of HTML or JSON is populated, per Kind.
type Result struct {
	Kind ResultKind
	HTML string
	JSON []byte
}

// ParseResult classifies raw provider output. The primary path is a strict
// JSON object; if that fails, a JSON object is recovered from the first
// "{" to the last "}" of the text (models often wrap JSON in prose).
// Non-JSON non-empty text is treated as a direct HTML fragment.
func ParseResult(text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Kind: Unrecognized}
	}

	if obj, ok := asJSONObject(text); ok {
		return Result{Kind: StructuredJSON, JSON: obj}
	}

	// Recover an embedded JSON object
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first != -1 && last > first {
		if obj, ok := asJSONObject(text[first : last+1]); ok {
			return Result{Kind: StructuredJSON, JSON: obj}
		}
	}

	return Result{Kind: DirectHTML, HTML: text}
}

// asJSONObject reports whether s is a well-formed JSON object and returns
// its bytes if so (arrays and scalars are not accepted).
func asJSONObject(s string) ([]byte, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, false
	}
	return []byte(s), true
}
