package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/gaborkis11/tradingview-watchlist-importer/internal/watchlist"
)

// Terminal is for displaying the run summary on terminal.
type Terminal struct {
	out io.Writer
}

var terminal Terminal

// TerminalTimestamp is used as a format to display the query time.
const TerminalTimestamp = "2006-01-02 15:04:05"

// InitTerminal initializes terminal display.
// Output writer is always os.Stdout except in case of testing where a buffer will be set as output terminal.
func InitTerminal(out io.Writer) *Terminal {
	if terminal.out == nil {
		terminal = Terminal{
			out: out,
		}
	}
	return &terminal
}

// GetTerminal returns already prepared terminal instance.
func GetTerminal() *Terminal {
	return &terminal
}

// CommitSummary outputs the per exchange pair counts, the written files and
// the failed exchanges as a fixed width table.
func (t *Terminal) CommitSummary(pairs []watchlist.Pair, files []WrittenFile, failed []string) {
	type countKey struct {
		exchange watchlist.Exchange
		quote    string
	}
	counts := make(map[countKey]int)
	keys := make([]countKey, 0)
	for _, pair := range pairs {
		key := countKey{exchange: pair.Exchange, quote: pair.Quote}
		if _, ok := counts[key]; !ok {
			keys = append(keys, key)
		}
		counts[key]++
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].exchange != keys[j].exchange {
			return keys[i].exchange < keys[j].exchange
		}
		return keys[i].quote < keys[j].quote
	})

	fmt.Fprintf(t.out, "\n%-12s%-10s%12s\n", "Exchange", "Quote", "Pairs")
	for _, key := range keys {
		fmt.Fprintf(t.out, "%-12s%-10s%12d\n", key.exchange, key.quote, counts[key])
	}
	fmt.Fprintf(t.out, "%-12s%-10s%12d\n", "TOTAL", "", len(pairs))

	fmt.Fprintf(t.out, "\n%-50s%12s\n", "File", "Pairs")
	for _, file := range files {
		fmt.Fprintf(t.out, "%-50s%12d\n", file.Path, file.Pairs)
	}

	if len(failed) > 0 {
		fmt.Fprintf(t.out, "\nfailed exchanges : %s\n", strings.Join(failed, ", "))
	}
	fmt.Fprintf(t.out, "\nquery time : %s\n", time.Now().Format(TerminalTimestamp))
}
