package watchlist

import (
	"encoding/json"
	"fmt"
	"os"

	"MarketDigest/internal/model"
)

// Load reads the watchlist from a JSON file of the form
// {"tickers": [...], "indices": [...]}. A missing file yields an empty
// watchlist; the digest still runs with placeholder sections.
func Load(path string) (*model.Watchlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.Watchlist{}, nil
		}
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	var wl model.Watchlist
	if err := json.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parse watchlist: %w", err)
	}
	return &wl, nil
}
