package model

// Watchlist is the user-supplied set of symbols to report on. Symbols are
// opaque, case-sensitive strings; both lists may be empty.
type Watchlist struct {
	Tickers []string `json:"tickers"`
	Indices []string `json:"indices"`
}

// AllSymbols returns tickers followed by indices, in watchlist order.
// Duplicates are kept; the quote client deduplicates before batching.
func (w *Watchlist) AllSymbols() []string {
	all := make([]string, 0, len(w.Tickers)+len(w.Indices))
	all = append(all, w.Tickers...)
	all = append(all, w.Indices...)
	return all
}
