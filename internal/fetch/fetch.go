package fetch

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"time"
)

// Default retry policy. Shared CI/runner IPs are commonly rate-limited, so
// batching plus backoff is the primary defense rather than caching.
const (
	DefaultMaxAttempts = 6
	DefaultBaseDelay   = time.Second
	DefaultTimeout     = 15 * time.Second
)

// TransientError is returned once every attempt has failed. It wraps the
// last observed cause.
type TransientError struct {
	Attempts int
	Err      error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// outcome classifies a single request attempt so the retry loop can branch
// on an explicit variant instead of inspecting errors.
type outcome int

const (
	outcomeOK outcome = iota
	outcomeRateLimited
	outcomeTransient
)

// Client issues HTTP GETs with exponential backoff and jitter. Both 429 and
// generic failures use the identical backoff schedule.
type Client struct {
	HTTP        *http.Client
	MaxAttempts int
	BaseDelay   time.Duration
	UserAgent   string
}

// New creates a Client with the default retry policy and optional proxy
// support.
func New(proxyURL string) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		HTTP: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: transport,
		},
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		UserAgent:   "Mozilla/5.0",
	}
}

// Get fetches the URL, retrying transient failures. The calling goroutine
// blocks for the backoff sleeps; acceptable for a scheduled batch run.
func (c *Client) Get(rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.MaxAttempts; attempt++ {
		body, oc, err := c.attempt(rawURL)
		switch oc {
		case outcomeOK:
			return body, nil
		case outcomeRateLimited:
			lastErr = err
			log.Printf("[WARN] rate limited (attempt %d/%d): %v", attempt+1, c.MaxAttempts, err)
		case outcomeTransient:
			lastErr = err
			log.Printf("[WARN] fetch failed (attempt %d/%d): %v", attempt+1, c.MaxAttempts, err)
		}
		if attempt < c.MaxAttempts-1 {
			time.Sleep(c.backoff(attempt))
		}
	}
	return nil, &TransientError{Attempts: c.MaxAttempts, Err: lastErr}
}

func (c *Client) attempt(rawURL string) ([]byte, outcome, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, outcomeTransient, err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, outcomeTransient, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, outcomeTransient, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, outcomeRateLimited, fmt.Errorf("status 429")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, outcomeTransient, fmt.Errorf("status %d, body: %s", resp.StatusCode, body)
	}
	return body, outcomeOK, nil
}

// backoff returns 2^attempt base units plus uniform jitter in [0.5, 1.5]
// units, so synchronized runners don't retry in lockstep.
func (c *Client) backoff(attempt int) time.Duration {
	exp := time.Duration(1<<uint(attempt)) * c.BaseDelay
	jitter := time.Duration((0.5 + rand.Float64()) * float64(c.BaseDelay))
	return exp + jitter
}
