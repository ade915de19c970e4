package export

import (
	"github.com/gaborkis11/tradingview-watchlist-importer/internal/watchlist"
	jsoniter "github.com/json-iterator/go"
)

// renderJSON encodes the pairs as an indented JSON array, an empty
// watchlist renders as [] and not null.
func renderJSON(pairs []watchlist.Pair) ([]byte, error) {
	if pairs == nil {
		pairs = []watchlist.Pair{}
	}
	data, err := jsoniter.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
