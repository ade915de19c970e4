package exchange

import (
	"context"

	"github.com/gaborkis11/tradingview-watchlist-importer/internal/config"
	"github.com/gaborkis11/tradingview-watchlist-importer/internal/connector"
	"github.com/gaborkis11/tradingview-watchlist-importer/internal/watchlist"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

// Binance is the pair catalog client for the binance exchange.
type Binance struct {
	// BaseURL is the public API url, overridable for tests.
	BaseURL string
	rest    *connector.REST
}

// NewBinance returns a binance client using the shared REST connection.
func NewBinance(rest *connector.REST) *Binance {
	return &Binance{
		BaseURL: config.BinanceRESTBaseURL,
		rest:    rest,
	}
}

// Exchange returns the TradingView name of the exchange.
func (b *Binance) Exchange() watchlist.Exchange {
	return watchlist.Binance
}

// FetchPairs gets all the binance spot market pairs which are currently
// open for trade. Symbols in a non trading status or without spot trading
// allowed are skipped.
func (b *Binance) FetchPairs(ctx context.Context) ([]watchlist.Pair, error) {
	req, err := b.rest.Request(ctx, "GET", b.BaseURL+"exchangeInfo")
	if err != nil {
		logErrStack(err)
		return nil, &NetworkError{Exchange: watchlist.Binance, Err: err}
	}
	resp, err := b.rest.Do(req)
	if err != nil {
		logErrStack(err)
		return nil, &NetworkError{Exchange: watchlist.Binance, Err: err}
	}

	binanceInfo := binanceResp{}
	if err = jsoniter.NewDecoder(resp.Body).Decode(&binanceInfo); err != nil {
		resp.Body.Close()
		logErrStack(err)
		return nil, &ParseError{Exchange: watchlist.Binance, Err: err}
	}
	resp.Body.Close()

	pairs := make([]watchlist.Pair, 0, len(binanceInfo.Result))
	for _, record := range binanceInfo.Result {
		if record.Status != "TRADING" || !record.IsSpotTradingAllowed {
			continue
		}
		pairs = append(pairs, watchlist.Pair{
			Exchange: watchlist.Binance,
			Base:     record.BaseAsset,
			Quote:    record.QuoteAsset,
			Symbol:   record.Name,
		})
	}
	log.Info().Str("exchange", "binance").Int("pairs", len(pairs)).Msg("got pairs from binance")
	return pairs, nil
}

type binanceResp struct {
	Result []binanceRespRes `json:"symbols"`
}
type binanceRespRes struct {
	Name                 string `json:"symbol"`
	Status               string `json:"status"`
	BaseAsset            string `json:"baseAsset"`
	QuoteAsset           string `json:"quoteAsset"`
	IsSpotTradingAllowed bool   `json:"isSpotTradingAllowed"`
}
