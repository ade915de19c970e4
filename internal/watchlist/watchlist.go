// Package watchlist holds the common trading pair model and the
// normalization rules applied to exchange data before export.
package watchlist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Exchange identifies a supported exchange, in the uppercase form used by
// the TradingView import syntax.
type Exchange string

const (
	// Binance exchange.
	Binance Exchange = "BINANCE"
	// Kraken exchange.
	Kraken Exchange = "KRAKEN"
)

// Pair is a single spot trading pair in its exchange-native form.
// Base and Quote are uppercase alphanumeric asset codes, Symbol is the
// concatenated form the exchange itself uses.
type Pair struct {
	Exchange Exchange `json:"exchange"`
	Base     string   `json:"base"`
	Quote    string   `json:"quote"`
	Symbol   string   `json:"symbol"`
}

// FilterError is returned for a quote asset token which can not form a
// valid filter. The offending token is kept as given by the user.
type FilterError struct {
	Token string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid quote asset : %q", e.Token)
}

// QuoteFilter is a set of quote assets to keep. An empty filter keeps
// every pair.
type QuoteFilter map[string]bool

// NewQuoteFilter builds a quote asset filter from the configured tokens.
// Tokens are upper-cased and must be plain A-Z 0-9 words, anything else is
// rejected before any network call is made.
func NewQuoteFilter(tokens []string) (QuoteFilter, error) {
	filter := QuoteFilter{}
	for _, token := range tokens {
		canon := strings.ToUpper(strings.TrimSpace(token))
		if !isUpperAlnum(canon) {
			return nil, &FilterError{Token: token}
		}
		filter[canon] = true
	}
	return filter, nil
}

// Allow reports whether pairs quoted in the given asset are kept.
func (f QuoteFilter) Allow(quote string) bool {
	if len(f) == 0 {
		return true
	}
	return f[quote]
}

// Assets returns the filtered quote assets in ascending order.
func (f QuoteFilter) Assets() []string {
	assets := make([]string, 0, len(f))
	for asset := range f {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	return assets
}

// Normalize merges the per exchange pair lists into the final watchlist.
// Asset codes are upper-cased, records violating the pair invariants are
// dropped with a debug log, the quote filter is applied and duplicates of
// an (exchange, symbol) are removed keeping the first occurrence. The
// result is sorted by (Exchange, Base, Quote, Symbol) so repeated runs over
// the same data produce identical output even when an exchange returns its
// pairs in random order.
func Normalize(byExchange map[Exchange][]Pair, filter QuoteFilter) []Pair {
	exchanges := make([]Exchange, 0, len(byExchange))
	for exch := range byExchange {
		exchanges = append(exchanges, exch)
	}
	sort.Slice(exchanges, func(i, j int) bool { return exchanges[i] < exchanges[j] })

	type pairKey struct {
		exchange Exchange
		symbol   string
	}
	seen := make(map[pairKey]bool)
	merged := make([]Pair, 0)
	for _, exch := range exchanges {
		for _, pair := range byExchange[exch] {
			pair.Exchange = exch
			pair.Base = strings.ToUpper(strings.TrimSpace(pair.Base))
			pair.Quote = strings.ToUpper(strings.TrimSpace(pair.Quote))
			pair.Symbol = strings.ToUpper(strings.TrimSpace(pair.Symbol))
			if !isUpperAlnum(pair.Base) || !isUpperAlnum(pair.Quote) || pair.Symbol == "" {
				log.Debug().Str("exchange", string(exch)).Str("symbol", pair.Symbol).Str("base", pair.Base).Str("quote", pair.Quote).Msg("dropping invalid pair record")
				continue
			}
			if !filter.Allow(pair.Quote) {
				continue
			}
			key := pairKey{exchange: pair.Exchange, symbol: pair.Symbol}
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, pair)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.Exchange != b.Exchange {
			return a.Exchange < b.Exchange
		}
		if a.Base != b.Base {
			return a.Base < b.Base
		}
		if a.Quote != b.Quote {
			return a.Quote < b.Quote
		}
		return a.Symbol < b.Symbol
	})
	return merged
}

// isUpperAlnum reports whether s is a non-empty A-Z 0-9 word.
func isUpperAlnum(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
