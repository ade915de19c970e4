package exchange

import (
	"context"
	"strings"

	"github.com/gaborkis11/tradingview-watchlist-importer/internal/config"
	"github.com/gaborkis11/tradingview-watchlist-importer/internal/connector"
	"github.com/gaborkis11/tradingview-watchlist-importer/internal/watchlist"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// krakenQuoteAlias maps kraken's classic fiat quote codes to their common
// form. Codes outside the table are kept as is.
var krakenQuoteAlias = map[string]string{
	"ZUSD": "USD",
	"ZEUR": "EUR",
	"ZGBP": "GBP",
	"ZJPY": "JPY",
	"ZCAD": "CAD",
	"ZAUD": "AUD",
}

// Kraken is the pair catalog client for the kraken exchange.
type Kraken struct {
	// BaseURL is the public API url, overridable for tests.
	BaseURL string
	rest    *connector.REST
}

// NewKraken returns a kraken client using the shared REST connection.
func NewKraken(rest *connector.REST) *Kraken {
	return &Kraken{
		BaseURL: config.KrakenRESTBaseURL,
		rest:    rest,
	}
}

// Exchange returns the TradingView name of the exchange.
func (k *Kraken) Exchange() watchlist.Exchange {
	return watchlist.Kraken
}

// FetchPairs gets all the kraken spot market pairs which are currently open
// for trade. Dark pool pairs carry a .d suffix and are skipped, as are
// pairs in a restricted trading status. A missing status field counts as
// tradeable, older API payloads did not carry one.
func (k *Kraken) FetchPairs(ctx context.Context) ([]watchlist.Pair, error) {
	req, err := k.rest.Request(ctx, "GET", k.BaseURL+"AssetPairs")
	if err != nil {
		logErrStack(err)
		return nil, &NetworkError{Exchange: watchlist.Kraken, Err: err}
	}
	resp, err := k.rest.Do(req)
	if err != nil {
		logErrStack(err)
		return nil, &NetworkError{Exchange: watchlist.Kraken, Err: err}
	}

	krakenPairs := krakenResp{}
	if err = jsoniter.NewDecoder(resp.Body).Decode(&krakenPairs); err != nil {
		resp.Body.Close()
		logErrStack(err)
		return nil, &ParseError{Exchange: watchlist.Kraken, Err: err}
	}
	resp.Body.Close()
	if len(krakenPairs.Error) > 0 {
		err = errors.Errorf("kraken API error : %v", strings.Join(krakenPairs.Error, ", "))
		logErrStack(err)
		return nil, &ParseError{Exchange: watchlist.Kraken, Err: err}
	}

	pairs := make([]watchlist.Pair, 0, len(krakenPairs.Result))
	for name, record := range krakenPairs.Result {
		if strings.HasSuffix(name, ".d") {
			continue
		}
		if record.Status != "" && record.Status != "online" {
			continue
		}
		symbol := strings.ReplaceAll(record.Wsname, "/", "")
		if symbol == "" {
			symbol = record.Altname
		}
		pairs = append(pairs, watchlist.Pair{
			Exchange: watchlist.Kraken,
			Base:     krakenBaseCode(record.Base),
			Quote:    krakenQuoteCode(record.Quote),
			Symbol:   symbol,
		})
	}
	log.Info().Str("exchange", "kraken").Int("pairs", len(pairs)).Msg("got pairs from kraken")
	return pairs, nil
}

// krakenBaseCode strips the classic X/Z prefix kraken puts on its older
// four letter asset codes, XXBT becomes XBT and XETH becomes ETH.
func krakenBaseCode(base string) string {
	if len(base) == 4 && (base[0] == 'X' || base[0] == 'Z') {
		return base[1:]
	}
	return base
}

// krakenQuoteCode maps a classic quote code to its common form, ZUSD
// becomes USD.
func krakenQuoteCode(quote string) string {
	if common, ok := krakenQuoteAlias[quote]; ok {
		return common
	}
	return quote
}

type krakenResp struct {
	Error  []string                  `json:"error"`
	Result map[string]krakenRespPair `json:"result"`
}
type krakenRespPair struct {
	Altname string `json:"altname"`
	Wsname  string `json:"wsname"`
	Base    string `json:"base"`
	Quote   string `json:"quote"`
	Status  string `json:"status"`
}
