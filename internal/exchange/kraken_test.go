package exchange

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gaborkis11/tradingview-watchlist-importer/internal/watchlist"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// krakenAssetPairs is a cut down AssetPairs response with one pair per
// naming and filter case.
const krakenAssetPairs = `{
	"error": [],
	"result": {
		"XXBTZUSD": {"altname": "XBTUSD", "wsname": "XBT/USD", "base": "XXBT", "quote": "ZUSD", "status": "online"},
		"XETHZEUR": {"altname": "ETHEUR", "wsname": "ETH/EUR", "base": "XETH", "quote": "ZEUR", "status": "online"},
		"XXBTZUSD.d": {"altname": "XBTUSD.d", "wsname": "XBT/USD", "base": "XXBT", "quote": "ZUSD", "status": "online"},
		"LUNAUSD": {"altname": "LUNAUSD", "wsname": "LUNA/USD", "base": "LUNA", "quote": "ZUSD", "status": "cancel_only"},
		"USDTUSD": {"altname": "USDTUSD", "wsname": "USDT/USD", "base": "USDT", "quote": "ZUSD"},
		"SOLEUR": {"altname": "SOLEUR", "base": "SOL", "quote": "ZEUR", "status": "online"}
	}
}`

func newKrakenTestClient(serverURL string) *Kraken {
	client := NewKraken(testREST())
	client.BaseURL = serverURL + "/"
	return client
}

func TestKrakenFetchPairs(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps only online spot pairs", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/AssetPairs" {
				http.NotFound(w, r)
				return
			}
			fmt.Fprint(w, krakenAssetPairs)
		}))
		defer ts.Close()

		pairs, err := newKrakenTestClient(ts.URL).FetchPairs(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []watchlist.Pair{
			{Exchange: watchlist.Kraken, Base: "XBT", Quote: "USD", Symbol: "XBTUSD"},
			{Exchange: watchlist.Kraken, Base: "ETH", Quote: "EUR", Symbol: "ETHEUR"},
			{Exchange: watchlist.Kraken, Base: "USDT", Quote: "USD", Symbol: "USDTUSD"},
			{Exchange: watchlist.Kraken, Base: "SOL", Quote: "EUR", Symbol: "SOLEUR"},
		}, pairs)
	})

	t.Run("API error array is a parse error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"error": ["EService:Unavailable"], "result": {}}`)
		}))
		defer ts.Close()

		_, err := newKrakenTestClient(ts.URL).FetchPairs(ctx)
		require.Error(t, err)
		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Contains(t, err.Error(), "EService:Unavailable")
	})

	t.Run("unreachable host is a network error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		client := newKrakenTestClient(ts.URL)
		ts.Close()

		_, err := client.FetchPairs(ctx)
		require.Error(t, err)
		var netErr *NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Equal(t, watchlist.Kraken, netErr.Exchange)
	})

	t.Run("invalid body is a parse error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "not json")
		}))
		defer ts.Close()

		_, err := newKrakenTestClient(ts.URL).FetchPairs(ctx)
		require.Error(t, err)
		var parseErr *ParseError
		assert.True(t, errors.As(err, &parseErr))
	})
}

func TestKrakenAssetCodes(t *testing.T) {
	t.Run("base codes lose the classic prefix", func(t *testing.T) {
		assert.Equal(t, "XBT", krakenBaseCode("XXBT"))
		assert.Equal(t, "ETH", krakenBaseCode("XETH"))
		assert.Equal(t, "USD", krakenBaseCode("ZUSD"))
		assert.Equal(t, "SOL", krakenBaseCode("SOL"))
		assert.Equal(t, "USDT", krakenBaseCode("USDT"))
		assert.Equal(t, "XTZ", krakenBaseCode("XTZ"))
	})

	t.Run("quote codes map to their common form", func(t *testing.T) {
		assert.Equal(t, "USD", krakenQuoteCode("ZUSD"))
		assert.Equal(t, "EUR", krakenQuoteCode("ZEUR"))
		assert.Equal(t, "USDT", krakenQuoteCode("USDT"))
		assert.Equal(t, "XBT", krakenQuoteCode("XBT"))
	})
}
