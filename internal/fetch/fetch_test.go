package fetch

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient() *Client {
	c := New("")
	c.BaseDelay = time.Millisecond
	return c
}

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := newTestClient().Get(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("expected body %q, got %q", "ok", body)
	}
}

func TestGet_RateLimitedThenSuccess(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 4 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	body, err := newTestClient().Get(srv.URL)
	if err != nil {
		t.Fatalf("expected success after 429s, got %v", err)
	}
	if string(body) != "recovered" {
		t.Errorf("expected body %q, got %q", "recovered", body)
	}
	if attempts != 4 {
		t.Errorf("expected 4 attempts, got %d", attempts)
	}
}

func TestGet_RateLimitExhausted(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient().Get(srv.URL)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	var te *TransientError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransientError, got %T: %v", err, err)
	}
	if te.Attempts != DefaultMaxAttempts {
		t.Errorf("expected %d attempts recorded, got %d", DefaultMaxAttempts, te.Attempts)
	}
	if te.Err == nil || !strings.Contains(te.Err.Error(), "429") {
		t.Errorf("expected last cause to mention 429, got %v", te.Err)
	}
	if attempts != DefaultMaxAttempts {
		t.Errorf("expected %d requests, got %d", DefaultMaxAttempts, attempts)
	}
}

func TestGet_ServerErrorRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("fine"))
	}))
	defer srv.Close()

	body, err := newTestClient().Get(srv.URL)
	if err != nil {
		t.Fatalf("expected recovery after 500, got %v", err)
	}
	if string(body) != "fine" {
		t.Errorf("expected body %q, got %q", "fine", body)
	}
}

func TestBackoff_GrowsWithJitter(t *testing.T) {
	c := New("")
	for attempt := 0; attempt < 6; attempt++ {
		d := c.backoff(attempt)
		min := time.Duration(1<<uint(attempt))*c.BaseDelay + c.BaseDelay/2
		max := time.Duration(1<<uint(attempt))*c.BaseDelay + 3*c.BaseDelay/2
		if d < min || d > max {
			t.Errorf("attempt %d: backoff %v outside [%v, %v]", attempt, d, min, max)
		}
	}
}
