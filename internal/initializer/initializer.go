package initializer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gaborkis11/tradingview-watchlist-importer/internal/config"
	"github.com/gaborkis11/tradingview-watchlist-importer/internal/connector"
	"github.com/gaborkis11/tradingview-watchlist-importer/internal/exchange"
	"github.com/gaborkis11/tradingview-watchlist-importer/internal/export"
	"github.com/gaborkis11/tradingview-watchlist-importer/internal/watchlist"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"golang.org/x/sync/errgroup"
)

// Start will initialize various required systems and then execute the app.
func Start(mainCtx context.Context, cfg *config.Config) error {

	// Setting up logger.
	// If the path given in the config for logging ends with .log then create a log file with the same name and
	// write log messages to it. If some other path is given, create a new log file with a timestamp attached to
	// it's name. Without a configured path, log human readable to stderr.
	var logWriter io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	if cfg.Log.FilePath != "" {
		var (
			logFile *os.File
			err     error
		)
		if strings.HasSuffix(cfg.Log.FilePath, ".log") {
			logFile, err = os.OpenFile(cfg.Log.FilePath, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0666)
			if err != nil {
				return fmt.Errorf("not able to open or create log file: %v", cfg.Log.FilePath)
			}
		} else {
			logFile, err = os.Create(cfg.Log.FilePath + "_" + strconv.Itoa(int(time.Now().Unix())) + ".log")
			if err != nil {
				return fmt.Errorf("not able to create log file: %v", cfg.Log.FilePath+"_"+strconv.Itoa(int(time.Now().Unix()))+".log")
			}
		}
		logWriter = logFile
		defer func() {
			log.Error().Msg("exiting the app")
			_ = logFile.Close()
		}()
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	switch cfg.Log.Level {
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(logWriter).With().Timestamp().Logger()
	log.Info().Msg("logger setup is done")

	// Validate user defined config values before any network call.
	filter, err := watchlist.NewQuoteFilter(cfg.QuoteAssets)
	if err != nil {
		log.Error().Stack().Err(errors.WithStack(err)).Msg("")
		return err
	}
	formats, err := export.ParseFormats(cfg.Export.Formats)
	if err != nil {
		log.Error().Stack().Err(errors.WithStack(err)).Msg("")
		return err
	}
	if len(formats) == 0 {
		err = errors.New("no export format configured")
		log.Error().Stack().Err(errors.WithStack(err)).Msg("")
		return err
	}

	restConn := connector.InitREST(&cfg.Connection.REST)
	clients := make([]exchange.Client, 0, len(cfg.Exchanges))
	for _, name := range cfg.Exchanges {
		client, err := exchange.NewClient(name, restConn)
		if err != nil {
			log.Error().Stack().Err(errors.WithStack(err)).Msg("")
			return err
		}
		clients = append(clients, client)
	}
	if len(clients) == 0 {
		err = errors.New("no exchange configured")
		log.Error().Stack().Err(errors.WithStack(err)).Msg("")
		return err
	}

	_ = export.InitTerminal(os.Stdout)
	if cfg.Connection.S3.Enabled {
		_ = export.InitS3(&cfg.Connection.S3)
		log.Info().Msg("s3 connected")
	}

	return run(mainCtx, cfg, filter, formats, clients)
}

// fetchResult is the outcome of one exchange fetch.
type fetchResult struct {
	exchange watchlist.Exchange
	pairs    []watchlist.Pair
	err      error
}

// run fetches every configured exchange, normalizes the result and exports
// the watchlist. A failing exchange is left out with a warning, only a run
// where every exchange failed is an error and produces no files.
func run(mainCtx context.Context, cfg *config.Config, filter watchlist.QuoteFilter, formats []export.Format, clients []exchange.Client) error {
	results := make([]fetchResult, len(clients))

	appErrGroup, appCtx := errgroup.WithContext(mainCtx)
	for i, client := range clients {
		i, client := i, client
		appErrGroup.Go(func() error {
			// Record the outcome instead of returning the error, a failing
			// exchange must not cancel the others.
			pairs, err := exchange.FetchWithRetry(appCtx, client, &cfg.Retry)
			results[i] = fetchResult{exchange: client.Exchange(), pairs: pairs, err: err}
			return nil
		})
	}
	_ = appErrGroup.Wait()

	byExchange := make(map[watchlist.Exchange][]watchlist.Pair)
	failed := make([]string, 0)
	for _, result := range results {
		if result.err != nil {
			log.Warn().Err(result.err).Str("exchange", string(result.exchange)).Msg("pair fetch failed, exchange left out of the watchlist")
			failed = append(failed, string(result.exchange))
			continue
		}
		byExchange[result.exchange] = result.pairs
	}
	if len(byExchange) == 0 {
		err := errors.New("not able to fetch pairs from any exchange. please check the log for details")
		log.Error().Stack().Err(errors.WithStack(err)).Msg("")
		return err
	}

	pairs := watchlist.Normalize(byExchange, filter)
	baseName := export.BaseName(&cfg.Export, filter)
	files, err := export.WriteFiles(&cfg.Export, formats, baseName, pairs)
	if err != nil {
		log.Error().Stack().Err(errors.WithStack(err)).Msg("")
		return err
	}

	if cfg.Connection.S3.Enabled {
		if err = export.GetS3().UploadFiles(mainCtx, files); err != nil {
			log.Warn().Err(err).Msg("s3 upload failed, watchlist files are only available locally")
		}
	}

	export.GetTerminal().CommitSummary(pairs, files, failed)
	log.Info().Int("pairs", len(pairs)).Int("files", len(files)).Int("exchanges", len(byExchange)).Msg("watchlist export finished")
	return nil
}
