package export

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gaborkis11/tradingview-watchlist-importer/internal/config"
	"github.com/gaborkis11/tradingview-watchlist-importer/internal/watchlist"
	"github.com/rs/zerolog/log"
)

// WrittenFile describes one produced watchlist file.
type WrittenFile struct {
	Path   string
	Format Format
	Pairs  int
}

// BaseName returns the configured file base name, or derives
// watchlist[_ASSETS] from the quote filter when none is configured.
// With timestamp_names on, the current time is appended so repeated runs
// keep their own files.
func BaseName(cfg *config.Export, filter watchlist.QuoteFilter) string {
	name := cfg.BaseName
	if name == "" {
		name = "watchlist"
		if assets := filter.Assets(); len(assets) > 0 {
			name += "_" + strings.Join(assets, "_")
		}
	}
	if cfg.TimestampNames {
		name += "_" + time.Now().Format("20060102_150405")
	}
	return name
}

// WriteFiles renders and writes one file per format under the export
// directory, plus the per exchange TradingView lists when enabled. The
// returned files are in a stable order. On error the files written so far
// are still returned.
func WriteFiles(cfg *config.Export, formats []Format, baseName string, pairs []watchlist.Pair) ([]WrittenFile, error) {
	if cfg.Directory != "" {
		if err := os.MkdirAll(cfg.Directory, 0755); err != nil {
			return nil, &WriteError{Path: cfg.Directory, Err: err}
		}
	}

	var files []WrittenFile
	for _, format := range formats {
		path := filepath.Join(cfg.Directory, baseName+"."+string(format))
		data, err := Render(pairs, format)
		if err != nil {
			return files, &WriteError{Path: path, Err: err}
		}
		if err = os.WriteFile(path, data, 0644); err != nil {
			return files, &WriteError{Path: path, Err: err}
		}
		files = append(files, WrittenFile{Path: path, Format: format, Pairs: len(pairs)})
		log.Info().Str("path", path).Int("pairs", len(pairs)).Msg("watchlist file written")
	}

	if cfg.PerExchangeWatchlists {
		exchangeFiles, err := writeExchangeLists(cfg, baseName, pairs)
		files = append(files, exchangeFiles...)
		if err != nil {
			return files, err
		}
	}
	return files, nil
}

// writeExchangeLists writes one TradingView txt list per exchange present
// in the watchlist. Pairs arrive sorted by exchange, so the files come out
// in exchange name order.
func writeExchangeLists(cfg *config.Export, baseName string, pairs []watchlist.Pair) ([]WrittenFile, error) {
	byExchange := make(map[watchlist.Exchange][]watchlist.Pair)
	exchanges := make([]watchlist.Exchange, 0, 2)
	for _, pair := range pairs {
		if _, ok := byExchange[pair.Exchange]; !ok {
			exchanges = append(exchanges, pair.Exchange)
		}
		byExchange[pair.Exchange] = append(byExchange[pair.Exchange], pair)
	}

	var files []WrittenFile
	for _, exch := range exchanges {
		path := filepath.Join(cfg.Directory, baseName+"_"+string(exch)+".txt")
		if err := os.WriteFile(path, renderTXT(byExchange[exch]), 0644); err != nil {
			return files, &WriteError{Path: path, Err: err}
		}
		files = append(files, WrittenFile{Path: path, Format: FormatTXT, Pairs: len(byExchange[exch])})
		log.Info().Str("path", path).Int("pairs", len(byExchange[exch])).Msg("watchlist file written")
	}
	return files, nil
}
