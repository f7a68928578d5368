package content

import (
	"strings"
	"testing"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "no tags here", "no tags here"},
		{"simple", "<p>hello <strong>world</strong></p>", "hello world"},
		{"nested", "<div><ul><li>one</li><li>two</li></ul></div>", "one two"},
		{"empty", "", ""},
		{"whitespace collapse", "<p>a\n\n  b</p>", "a b"},
	}

	for _, tt := range tests {
		if got := StripTags(tt.in); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"plain", "one two three", 3},
		{"markup ignored", "<p>one <em>two</em></p><ul><li>three four</li></ul>", 4},
	}

	for _, tt := range tests {
		if got := WordCount(tt.in); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 160); got != "short" {
		t.Errorf("short input should pass through, got %q", got)
	}

	long := strings.Repeat("x", 200)
	got := Truncate(long, 160)
	if len([]rune(got)) != 160 {
		t.Errorf("expected 160 runes, got %d", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got[len(got)-5:])
	}
}
