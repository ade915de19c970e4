package export

import (
	"bytes"
	"fmt"

	"github.com/gaborkis11/tradingview-watchlist-importer/internal/watchlist"
)

// renderTXT encodes the pairs as a TradingView import list, one
// EXCHANGE:SYMBOL entry per line.
func renderTXT(pairs []watchlist.Pair) []byte {
	var buf bytes.Buffer
	for _, pair := range pairs {
		fmt.Fprintf(&buf, "%s:%s\n", pair.Exchange, pair.Symbol)
	}
	return buf.Bytes()
}
