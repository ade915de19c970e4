package main

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/gaborkis11/tradingview-watchlist-importer/internal/config"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

// krakenQuoteAlias maps kraken's classic fiat quote codes to their common
// form, the same way the app itself reports them.
var krakenQuoteAlias = map[string]string{
	"ZUSD": "USD",
	"ZEUR": "EUR",
	"ZGBP": "GBP",
	"ZJPY": "JPY",
	"ZCAD": "CAD",
	"ZAUD": "AUD",
}

// This helper will query both exchanges for their tradeable spot pairs and
// store the distinct quote assets per exchange in a csv file.
// Users can look up to this csv file to give -quote values to the app.
// CSV file created at ./examples/quotes.csv.
func main() {
	f, err := os.Create("./examples/quotes.csv")
	if err != nil {
		log.Error().Err(err).Msg("csv file create")
		return
	}
	w := csv.NewWriter(f)
	defer f.Close()

	// Binance exchange.
	resp, err := http.Get(config.BinanceRESTBaseURL + "exchangeInfo")
	if err != nil {
		log.Error().Err(err).Str("exchange", "binance").Msg("exchange request for quote assets")
		return
	}
	binanceInfo := binanceResp{}
	if err = jsoniter.NewDecoder(resp.Body).Decode(&binanceInfo); err != nil {
		log.Error().Err(err).Str("exchange", "binance").Msg("convert quote assets response")
		return
	}
	resp.Body.Close()
	binanceQuotes := make(map[string]bool)
	for _, record := range binanceInfo.Result {
		if record.Status == "TRADING" && record.IsSpotTradingAllowed {
			binanceQuotes[record.QuoteAsset] = true
		}
	}
	for _, quote := range sortedKeys(binanceQuotes) {
		if err = w.Write([]string{"binance", quote}); err != nil {
			log.Error().Err(err).Str("exchange", "binance").Msg("writing quote assets to csv")
			return
		}
	}
	w.Flush()
	fmt.Println("got quote assets from Binance")

	// Kraken exchange.
	resp, err = http.Get(config.KrakenRESTBaseURL + "AssetPairs")
	if err != nil {
		log.Error().Err(err).Str("exchange", "kraken").Msg("exchange request for quote assets")
		return
	}
	krakenPairs := krakenResp{}
	if err = jsoniter.NewDecoder(resp.Body).Decode(&krakenPairs); err != nil {
		log.Error().Err(err).Str("exchange", "kraken").Msg("convert quote assets response")
		return
	}
	resp.Body.Close()
	if len(krakenPairs.Error) > 0 {
		log.Error().Strs("error", krakenPairs.Error).Str("exchange", "kraken").Msg("kraken API error")
		return
	}
	krakenQuotes := make(map[string]bool)
	for name, record := range krakenPairs.Result {
		if strings.HasSuffix(name, ".d") {
			continue
		}
		if record.Status != "" && record.Status != "online" {
			continue
		}
		quote := record.Quote
		if common, ok := krakenQuoteAlias[quote]; ok {
			quote = common
		}
		krakenQuotes[quote] = true
	}
	for _, quote := range sortedKeys(krakenQuotes) {
		if err = w.Write([]string{"kraken", quote}); err != nil {
			log.Error().Err(err).Str("exchange", "kraken").Msg("writing quote assets to csv")
			return
		}
	}
	w.Flush()
	fmt.Println("got quote assets from Kraken")

	fmt.Println("CSV file generated successfully at ./examples/quotes.csv")
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type binanceResp struct {
	Result []binanceRespRes `json:"symbols"`
}
type binanceRespRes struct {
	Status               string `json:"status"`
	QuoteAsset           string `json:"quoteAsset"`
	IsSpotTradingAllowed bool   `json:"isSpotTradingAllowed"`
}

type krakenResp struct {
	Error  []string                  `json:"error"`
	Result map[string]krakenRespPair `json:"result"`
}
type krakenRespPair struct {
	Quote  string `json:"quote"`
	Status string `json:"status"`
}
