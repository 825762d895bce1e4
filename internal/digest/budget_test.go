package digest

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than cap", "hello", 10, "hello"},
		{"exactly at cap", "hello", 5, "hello"},
		{"over cap", "hello world", 5, "hello"},
		{"multibyte counted as runes", "ééééé", 3, "ééé"},
		{"empty", "", 5, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestComposeFinal_NoSummaryAppendsHint(t *testing.T) {
	msg := ComposeFinal("raw report", "")
	if !strings.HasPrefix(msg, "raw report") {
		t.Errorf("expected raw report first, got %q", msg)
	}
	if !strings.Contains(msg, enableHint) {
		t.Errorf("expected enable hint, got %q", msg)
	}
}

func TestComposeFinal_WithSummary(t *testing.T) {
	raw := strings.Repeat("d", 3000)
	msg := ComposeFinal(raw, "markets were quiet")

	if !strings.HasPrefix(msg, "🧠 AI Weekly Brief\n") {
		t.Errorf("expected brief header, got %q", msg[:40])
	}
	if !strings.Contains(msg, "markets were quiet") {
		t.Error("expected summary text in message")
	}
	if !strings.Contains(msg, "\n\n—\n📌 Details\n") {
		t.Error("expected separator and details header")
	}
	details := msg[strings.Index(msg, "📌 Details\n")+len("📌 Details\n"):]
	if utf8.RuneCountInString(details) > MaxDetailLen {
		t.Errorf("details block over cap: %d runes", utf8.RuneCountInString(details))
	}
}

func TestComposeFinal_NeverExceedsCap(t *testing.T) {
	inputs := []struct {
		raw, summary string
	}{
		{strings.Repeat("x", 100000), ""},
		{strings.Repeat("x", 100000), strings.Repeat("s", 100000)},
		{"", strings.Repeat("s", 100000)},
		{strings.Repeat("é", 10000), strings.Repeat("☕", 10000)},
	}
	for i, in := range inputs {
		msg := ComposeFinal(in.raw, in.summary)
		if n := utf8.RuneCountInString(msg); n > MaxMessageLen {
			t.Errorf("case %d: message is %d runes, cap is %d", i, n, MaxMessageLen)
		}
	}
}
