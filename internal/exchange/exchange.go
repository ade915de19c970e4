package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/gaborkis11/tradingview-watchlist-importer/internal/config"
	"github.com/gaborkis11/tradingview-watchlist-importer/internal/connector"
	"github.com/gaborkis11/tradingview-watchlist-importer/internal/watchlist"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Client fetches the current spot trading pairs of one exchange.
type Client interface {
	Exchange() watchlist.Exchange
	FetchPairs(ctx context.Context) ([]watchlist.Pair, error)
}

// NewClient returns the pair fetch client for the named exchange.
func NewClient(name string, rest *connector.REST) (Client, error) {
	switch name {
	case "binance":
		return NewBinance(rest), nil
	case "kraken":
		return NewKraken(rest), nil
	default:
		return nil, errors.Errorf("exchange %s is not supported", name)
	}
}

// NetworkError is returned when an exchange API could not be reached or
// answered with a non 200 status.
type NetworkError struct {
	Exchange watchlist.Exchange
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%v : network error : %v", e.Exchange, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError is returned when an exchange API response could not be decoded
// or reported an application level error.
type ParseError struct {
	Exchange watchlist.Exchange
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v : parse error : %v", e.Exchange, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FetchWithRetry fetches the exchange pairs, retrying network failures with
// a time gap till it reaches a configured number of retry. Parse failures
// are never retried.
func FetchWithRetry(ctx context.Context, c Client, retry *config.Retry) ([]watchlist.Pair, error) {
	var retryCount int
	for {
		pairs, err := c.FetchPairs(ctx)
		if err == nil {
			return pairs, nil
		}

		var netErr *NetworkError
		if !errors.As(err, &netErr) {
			return nil, err
		}
		if retry.Number == 0 {
			return nil, err
		}
		retryCount++
		if retryCount > retry.Number {
			return nil, errors.Wrapf(err, "not able to fetch %v pairs even after %d retry", c.Exchange(), retry.Number)
		}

		log.Error().Str("exchange", string(c.Exchange())).Int("retry", retryCount).Msg(fmt.Sprintf("retrying pair fetch in %d seconds", retry.GapSec))
		if retry.GapSec > 0 {
			tick := time.NewTicker(time.Duration(retry.GapSec) * time.Second)
			select {
			case <-tick.C:
				tick.Stop()
			case <-ctx.Done():
				tick.Stop()
				log.Error().Str("exchange", string(c.Exchange())).Msg("ctx canceled, return from FetchWithRetry")
				return nil, ctx.Err()
			}
		}
	}
}

// logErrStack logs error with stack trace.
func logErrStack(err error) {
	log.Error().Stack().Err(errors.WithStack(err)).Msg("")
}
