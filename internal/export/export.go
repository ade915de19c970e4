// Package export renders the normalized watchlist into the supported
// output formats and delivers the result to files, terminal and s3.
package export

import (
	"fmt"
	"strings"

	"github.com/gaborkis11/tradingview-watchlist-importer/internal/watchlist"
	"github.com/pkg/errors"
)

// Format is a supported watchlist output format.
type Format string

const (
	// FormatJSON is the machine readable pair list.
	FormatJSON Format = "json"
	// FormatCSV is the spreadsheet friendly pair list.
	FormatCSV Format = "csv"
	// FormatTXT is the TradingView import list.
	FormatTXT Format = "txt"
)

// ParseFormats converts the configured format names, rejecting unknown
// ones and dropping repeats.
func ParseFormats(names []string) ([]Format, error) {
	formats := make([]Format, 0, len(names))
	seen := make(map[Format]bool)
	for _, name := range names {
		format := Format(strings.ToLower(strings.TrimSpace(name)))
		switch format {
		case FormatJSON, FormatCSV, FormatTXT:
		default:
			return nil, errors.Errorf("export format %s is not supported", name)
		}
		if seen[format] {
			continue
		}
		seen[format] = true
		formats = append(formats, format)
	}
	return formats, nil
}

// Render returns the byte content of the watchlist in the given format.
// Pairs are rendered in input order, renderers never sort or filter.
func Render(pairs []watchlist.Pair, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return renderJSON(pairs)
	case FormatCSV:
		return renderCSV(pairs)
	case FormatTXT:
		return renderTXT(pairs), nil
	default:
		return nil, errors.Errorf("export format %s is not supported", format)
	}
}

// WriteError is returned when a watchlist file can not be created or
// written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s : write error : %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
