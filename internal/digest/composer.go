package digest

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"MarketDigest/internal/model"
	"MarketDigest/internal/news"
)

// QuoteSource is the batched quote client.
type QuoteSource interface {
	FetchQuotes(symbols []string) (map[string]model.Quote, error)
}

// HeadlineSource fetches recent headlines for one symbol.
type HeadlineSource interface {
	Headlines(symbol string, limit int) ([]string, error)
}

// Placeholder lines. Every listed symbol renders exactly one quote line;
// failures degrade to placeholders, never to omitted lines.
const (
	noDataLine       = "(no data)"
	noHeadlinesLine  = "(no headlines found)"
	newsFailedLine   = "(news fetch failed)"
	emptySectionLine = "- (no symbols configured)"
)

// quoteWarning is appended only when the batched quote fetch failed
// entirely.
const quoteWarning = "⚠️ Quote data could not be retrieved this run.\n" +
	"The source may be rate limiting; figures should return next run."

// Composer builds the raw digest report from the watchlist.
type Composer struct {
	Quotes QuoteSource
	News   HeadlineSource
}

// NewComposer creates a Composer.
func NewComposer(q QuoteSource, n HeadlineSource) *Composer {
	return &Composer{Quotes: q, News: n}
}

// Build fetches quotes and headlines and renders the multi-section report.
// It never returns an error: a total quote failure degrades to placeholder
// lines plus a warning section, and per-symbol news failures degrade to
// per-symbol placeholders. The second return reports whether the batched
// quote fetch succeeded.
func (c *Composer) Build(wl *model.Watchlist) (string, bool) {
	quoteMap, err := c.Quotes.FetchQuotes(quoteSymbols(wl))
	quotesFailed := err != nil
	if quotesFailed {
		log.Printf("[ERROR] batched quote fetch: %v", err)
		quoteMap = map[string]model.Quote{}
	}

	lines := []string{
		"📊 Weekly Market & Economy Update",
		time.Now().UTC().Format("Generated 2006-01-02 15:04 UTC"),
		"",
	}

	lines = append(lines, "💼 Your Stocks")
	lines = append(lines, quoteLines(wl.Tickers, quoteMap)...)

	lines = append(lines, "", "🌍 Market Pulse")
	lines = append(lines, quoteLines(wl.Indices, quoteMap)...)

	lines = append(lines, "", "📰 Headlines")
	lines = append(lines, c.headlineLines(wl.Tickers)...)

	if quotesFailed {
		lines = append(lines, "", quoteWarning)
	}

	return strings.Join(lines, "\n"), !quotesFailed
}

// quoteSymbols returns the combined fetch set in watchlist order. The quote
// client deduplicates before batching.
func quoteSymbols(wl *model.Watchlist) []string {
	return wl.AllSymbols()
}

func quoteLines(symbols []string, quoteMap map[string]model.Quote) []string {
	if len(symbols) == 0 {
		return []string{emptySectionLine}
	}
	lines := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		q, ok := quoteMap[sym]
		if !ok || !q.HasPrice() {
			lines = append(lines, fmt.Sprintf("- %s: %s", sym, noDataLine))
			continue
		}
		price := formatPrice(*q.Price)
		if q.Currency != "" {
			price += " " + q.Currency
		}
		lines = append(lines, fmt.Sprintf("- %s: %s (%+.2f%%)", sym, price, *q.ChangePercent))
	}
	return lines
}

func (c *Composer) headlineLines(tickers []string) []string {
	if len(tickers) == 0 {
		return []string{emptySectionLine}
	}
	var lines []string
	for _, sym := range tickers {
		titles, err := c.News.Headlines(sym, news.DefaultLimit)
		if err != nil {
			log.Printf("[WARN] headlines for %s: %v", sym, err)
			lines = append(lines, fmt.Sprintf("- %s: %s", sym, newsFailedLine))
			continue
		}
		if len(titles) == 0 {
			lines = append(lines, fmt.Sprintf("- %s: %s", sym, noHeadlinesLine))
			continue
		}
		for _, title := range titles {
			lines = append(lines, fmt.Sprintf("- %s: %s", sym, title))
		}
	}
	return lines
}

// formatPrice renders with the fewest decimals that round-trip, but always
// at least one, so 150 prints as "150.0".
func formatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
