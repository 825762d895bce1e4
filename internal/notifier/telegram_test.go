package notifier

import (
	"context"
	"errors"
	"testing"
)

func TestSend_MissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		chatID  string
		missing string
	}{
		{"no token", "", "123", "bot token"},
		{"no chat id", "tok", "", "chat id"},
		{"neither", "", "", "bot token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewTelegramNotifier(tt.token, tt.chatID, "")
			err := n.Send("hello")
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if ce.Missing != tt.missing {
				t.Errorf("expected missing %q, got %q", tt.missing, ce.Missing)
			}
		})
	}
}

func TestSendWithRetry_NoRetryOnConfigError(t *testing.T) {
	n := NewTelegramNotifier("", "", "")
	err := n.SendWithRetry(context.Background(), "hello", 3)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected immediate *ConfigError, got %v", err)
	}
}
