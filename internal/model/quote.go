package model

// Quote holds a single symbol's market snapshot from the batch quote API.
// Numeric fields are pointers because the source may omit any of them;
// nil means "no data", which is distinct from zero.
type Quote struct {
	Symbol        string
	DisplayName   string
	Price         *float64
	Change        *float64
	ChangePercent *float64
	Currency      string
}

// HasPrice reports whether the quote carries enough data to render a
// price line.
func (q *Quote) HasPrice() bool {
	return q.Price != nil && q.ChangePercent != nil
}
