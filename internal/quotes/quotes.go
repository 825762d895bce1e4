package quotes

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"MarketDigest/internal/fetch"
	"MarketDigest/internal/model"
)

// DefaultBaseURL is the public Yahoo Finance quote API.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// SourceError means the batched quote fetch failed after all retries.
// Callers treat it as "no quote data for this run", not as fatal.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string { return fmt.Sprintf("quote source: %v", e.Err) }

func (e *SourceError) Unwrap() error { return e.Err }

// Client fetches quotes for many symbols with one batched request.
type Client struct {
	BaseURL string
	Fetcher *fetch.Client
}

// NewClient creates a quote client backed by the given retrying fetcher.
func NewClient(baseURL string, fetcher *fetch.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{BaseURL: baseURL, Fetcher: fetcher}
}

// Dedupe removes duplicate symbols, preserving first-occurrence order.
func Dedupe(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// quoteResponse is the batch quote API response shape. All per-symbol
// fields are individually optional; pointers keep absence distinguishable
// from zero.
type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                     string   `json:"symbol"`
			ShortName                  string   `json:"shortName"`
			RegularMarketPrice         *float64 `json:"regularMarketPrice"`
			RegularMarketChange        *float64 `json:"regularMarketChange"`
			RegularMarketChangePercent *float64 `json:"regularMarketChangePercent"`
			Currency                   string   `json:"currency"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// FetchQuotes issues one batched request for all symbols and returns a map
// keyed by symbol. A symbol absent from the map means "no data"; only a
// failed fetch returns an error.
func (c *Client) FetchQuotes(symbols []string) (map[string]model.Quote, error) {
	deduped := Dedupe(symbols)
	result := make(map[string]model.Quote, len(deduped))
	if len(deduped) == 0 {
		return result, nil
	}

	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s",
		c.BaseURL, url.QueryEscape(strings.Join(deduped, ",")))

	body, err := c.Fetcher.Get(u)
	if err != nil {
		return nil, &SourceError{Err: err}
	}

	var parsed quoteResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &SourceError{Err: fmt.Errorf("decode: %w", err)}
	}
	if e := parsed.QuoteResponse.Error; e != nil {
		return nil, &SourceError{Err: fmt.Errorf("api error: %s", e.Description)}
	}

	for _, r := range parsed.QuoteResponse.Result {
		if r.Symbol == "" {
			continue
		}
		result[r.Symbol] = model.Quote{
			Symbol:        r.Symbol,
			DisplayName:   r.ShortName,
			Price:         r.RegularMarketPrice,
			Change:        r.RegularMarketChange,
			ChangePercent: r.RegularMarketChangePercent,
			Currency:      r.Currency,
		}
	}
	return result, nil
}
