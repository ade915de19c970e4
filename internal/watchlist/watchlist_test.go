package watchlist

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuoteFilter(t *testing.T) {
	t.Run("tokens are canonicalized", func(t *testing.T) {
		filter, err := NewQuoteFilter([]string{"usdt", " usd ", "BTC"})
		require.NoError(t, err)
		assert.Equal(t, []string{"BTC", "USD", "USDT"}, filter.Assets())
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		_, err := NewQuoteFilter([]string{"USDT", "usd-t"})
		require.Error(t, err)
		var filterErr *FilterError
		require.True(t, errors.As(err, &filterErr))
		assert.Equal(t, "usd-t", filterErr.Token)
	})

	t.Run("empty token is rejected", func(t *testing.T) {
		_, err := NewQuoteFilter([]string{""})
		var filterErr *FilterError
		require.True(t, errors.As(err, &filterErr))
	})

	t.Run("no tokens allows every quote", func(t *testing.T) {
		filter, err := NewQuoteFilter(nil)
		require.NoError(t, err)
		assert.True(t, filter.Allow("USDT"))
		assert.True(t, filter.Allow("ANY"))
		assert.Empty(t, filter.Assets())
	})

	t.Run("filter keeps only listed quotes", func(t *testing.T) {
		filter, err := NewQuoteFilter([]string{"USDT"})
		require.NoError(t, err)
		assert.True(t, filter.Allow("USDT"))
		assert.False(t, filter.Allow("BTC"))
	})
}

func TestNormalize(t *testing.T) {
	noFilter := QuoteFilter{}

	t.Run("merges exchanges in name order", func(t *testing.T) {
		byExchange := map[Exchange][]Pair{
			Kraken:  {{Exchange: Kraken, Base: "XBT", Quote: "USD", Symbol: "XBTUSD"}},
			Binance: {{Exchange: Binance, Base: "BTC", Quote: "USDT", Symbol: "BTCUSDT"}},
		}
		pairs := Normalize(byExchange, noFilter)
		require.Len(t, pairs, 2)
		assert.Equal(t, Binance, pairs[0].Exchange)
		assert.Equal(t, Kraken, pairs[1].Exchange)
	})

	t.Run("sorts by base quote symbol inside an exchange", func(t *testing.T) {
		byExchange := map[Exchange][]Pair{
			Binance: {
				{Base: "ETH", Quote: "USDT", Symbol: "ETHUSDT"},
				{Base: "BTC", Quote: "USDT", Symbol: "BTCUSDT"},
				{Base: "BTC", Quote: "EUR", Symbol: "BTCEUR"},
			},
		}
		pairs := Normalize(byExchange, noFilter)
		require.Len(t, pairs, 3)
		assert.Equal(t, "BTCEUR", pairs[0].Symbol)
		assert.Equal(t, "BTCUSDT", pairs[1].Symbol)
		assert.Equal(t, "ETHUSDT", pairs[2].Symbol)
	})

	t.Run("asset codes are upper-cased", func(t *testing.T) {
		byExchange := map[Exchange][]Pair{
			Binance: {{Base: "btc", Quote: " usdt ", Symbol: "btcusdt"}},
		}
		pairs := Normalize(byExchange, noFilter)
		require.Len(t, pairs, 1)
		assert.Equal(t, Pair{Exchange: Binance, Base: "BTC", Quote: "USDT", Symbol: "BTCUSDT"}, pairs[0])
	})

	t.Run("duplicate symbols keep the first occurrence", func(t *testing.T) {
		byExchange := map[Exchange][]Pair{
			Binance: {
				{Base: "BTC", Quote: "USDT", Symbol: "BTCUSDT"},
				{Base: "BTC", Quote: "USDT", Symbol: "BTCUSDT"},
			},
			Kraken: {{Base: "BTC", Quote: "USDT", Symbol: "BTCUSDT"}},
		}
		pairs := Normalize(byExchange, noFilter)
		require.Len(t, pairs, 2)
		assert.Equal(t, Binance, pairs[0].Exchange)
		assert.Equal(t, Kraken, pairs[1].Exchange)
	})

	t.Run("invalid records are dropped", func(t *testing.T) {
		byExchange := map[Exchange][]Pair{
			Binance: {
				{Base: "BTC", Quote: "USDT", Symbol: "BTCUSDT"},
				{Base: "BT-C", Quote: "USDT", Symbol: "BTCUSDT2"},
				{Base: "BTC", Quote: "", Symbol: "BTC"},
				{Base: "BTC", Quote: "USDT", Symbol: ""},
			},
		}
		pairs := Normalize(byExchange, noFilter)
		require.Len(t, pairs, 1)
		assert.Equal(t, "BTCUSDT", pairs[0].Symbol)
	})

	t.Run("quote filter is applied after canonicalization", func(t *testing.T) {
		filter, err := NewQuoteFilter([]string{"USDT"})
		require.NoError(t, err)
		byExchange := map[Exchange][]Pair{
			Binance: {
				{Base: "BTC", Quote: "usdt", Symbol: "BTCUSDT"},
				{Base: "BTC", Quote: "EUR", Symbol: "BTCEUR"},
			},
		}
		pairs := Normalize(byExchange, filter)
		require.Len(t, pairs, 1)
		assert.Equal(t, "USDT", pairs[0].Quote)
	})

	t.Run("result is stable over repeated runs", func(t *testing.T) {
		byExchange := map[Exchange][]Pair{
			Binance: {
				{Base: "ETH", Quote: "BTC", Symbol: "ETHBTC"},
				{Base: "BTC", Quote: "USDT", Symbol: "BTCUSDT"},
			},
			Kraken: {
				{Base: "XBT", Quote: "USD", Symbol: "XBTUSD"},
				{Base: "ETH", Quote: "EUR", Symbol: "ETHEUR"},
			},
		}
		first := Normalize(byExchange, noFilter)
		second := Normalize(byExchange, noFilter)
		assert.Equal(t, first, second)
	})

	t.Run("empty input gives empty watchlist", func(t *testing.T) {
		pairs := Normalize(map[Exchange][]Pair{}, noFilter)
		require.NotNil(t, pairs)
		assert.Empty(t, pairs)
	})
}
