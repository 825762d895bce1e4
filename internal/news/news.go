package news

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the Google News RSS search endpoint.
const DefaultBaseURL = "https://news.google.com/rss/search"

// DefaultLimit caps how many headlines are returned per symbol.
const DefaultLimit = 3

// rss mirrors the slice of the feed we consume: item titles, in feed order.
type rss struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []struct {
			Title string `xml:"title"`
		} `xml:"item"`
	} `xml:"channel"`
}

// Client fetches recent headlines for a single symbol. Best-effort: one
// attempt, no retry, callers handle failure per symbol.
type Client struct {
	BaseURL string
	http    *resty.Client
}

// NewClient creates a news client.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New()
	client.SetTimeout(15 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0")
	return &Client{BaseURL: baseURL, http: client}
}

// Headlines returns up to limit non-empty headline titles for the symbol,
// in feed order, whitespace-trimmed.
func (c *Client) Headlines(symbol string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	query := url.QueryEscape(symbol + " stock")
	u := fmt.Sprintf("%s?q=%s&hl=en-US&gl=US&ceid=US:en", c.BaseURL, query)

	resp, err := c.http.R().Get(u)
	if err != nil {
		return nil, fmt.Errorf("news fetch %s: %w", symbol, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("news fetch %s: status %d", symbol, resp.StatusCode())
	}

	var feed rss
	if err := xml.Unmarshal(resp.Body(), &feed); err != nil {
		return nil, fmt.Errorf("news parse %s: %w", symbol, err)
	}

	titles := make([]string, 0, limit)
	for _, item := range feed.Channel.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		titles = append(titles, title)
		if len(titles) == limit {
			break
		}
	}
	return titles, nil
}
