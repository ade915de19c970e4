package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gaborkis11/tradingview-watchlist-importer/internal/config"
	"github.com/gaborkis11/tradingview-watchlist-importer/internal/initializer"
	jsoniter "github.com/json-iterator/go"
)

func main() {

	// Load config file values over the defaults.
	// Default path for file is ./config.json and the file is optional.
	cfgPath := flag.String("config", "./config.json", "configuration JSON file path")
	quote := flag.String("quote", "", "comma separated quote assets to keep, empty keeps all")
	exchanges := flag.String("exchanges", "", "comma separated exchanges to fetch (binance,kraken)")
	formats := flag.String("formats", "", "comma separated export formats (json,csv,txt)")
	outDir := flag.String("out", "", "directory for the watchlist files")
	baseName := flag.String("name", "", "base name for the watchlist files")
	stamped := flag.Bool("stamped", false, "append a timestamp to the file names")
	flag.Parse()

	cfg := config.Default()
	cfgFile, err := os.Open(*cfgPath)
	if err == nil {
		if err = jsoniter.NewDecoder(cfgFile).Decode(&cfg); err != nil {
			fmt.Println("Not able to parse JSON from config file :", *cfgPath)
			fmt.Println("exiting the app")
			os.Exit(1)
		}
		cfgFile.Close()
	} else if !os.IsNotExist(err) {
		fmt.Println("Not able to open config file :", *cfgPath)
		fmt.Println("exiting the app")
		os.Exit(1)
	}

	// Flags given on the command line override the config file values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "quote":
			cfg.QuoteAssets = splitList(*quote)
		case "exchanges":
			cfg.Exchanges = splitList(*exchanges)
		case "formats":
			cfg.Export.Formats = splitList(*formats)
		case "out":
			cfg.Export.Directory = *outDir
		case "name":
			cfg.Export.BaseName = *baseName
		case "stamped":
			cfg.Export.TimestampNames = *stamped
		}
	})

	// Start the app.
	if err = initializer.Start(context.Background(), &cfg); err != nil {
		fmt.Println(err)
		fmt.Println("exiting the app")
		os.Exit(1)
	}
}

// splitList splits a comma separated flag value, dropping empty items.
func splitList(s string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
