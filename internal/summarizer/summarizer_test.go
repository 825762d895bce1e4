package summarizer

import (
	"context"
	"testing"
)

func TestDisabledWithoutKey(t *testing.T) {
	s := New("", "")
	if s.Enabled() {
		t.Error("expected summarizer disabled with empty key")
	}
	summary, ok := s.Summarize(context.Background(), "some report")
	if ok || summary != "" {
		t.Errorf("disabled summarizer should return no summary, got (%q, %v)", summary, ok)
	}
}

func TestEnabledWithKey(t *testing.T) {
	s := New("sk-test", "")
	if !s.Enabled() {
		t.Error("expected summarizer enabled with key")
	}
}
