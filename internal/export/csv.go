package export

import (
	"bytes"
	"encoding/csv"

	"github.com/gaborkis11/tradingview-watchlist-importer/internal/watchlist"
)

// csvHeader is the fixed column order of the csv export.
var csvHeader = []string{"exchange", "base", "quote", "symbol"}

// renderCSV encodes the pairs as csv with a fixed header row.
func renderCSV(pairs []watchlist.Pair) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, pair := range pairs {
		if err := w.Write([]string{string(pair.Exchange), pair.Base, pair.Quote, pair.Symbol}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
