package config

const (
	// BinanceRESTBaseURL is the binance exchange base REST url.
	BinanceRESTBaseURL = "https://api.binance.com/api/v3/"

	// KrakenRESTBaseURL is the kraken exchange base REST url.
	KrakenRESTBaseURL = "https://api.kraken.com/0/public/"
)

// Config contains config values for the app.
// Struct values are loaded from user defined JSON config file over the defaults.
type Config struct {
	Exchanges   []string   `json:"exchanges"`
	QuoteAssets []string   `json:"quote_assets"`
	Export      Export     `json:"export"`
	Connection  Connection `json:"connection"`
	Retry       Retry      `json:"retry"`
	Log         Log        `json:"log"`
}

// Export contains config values for watchlist file generation.
type Export struct {
	Directory             string   `json:"directory"`
	BaseName              string   `json:"base_name"`
	Formats               []string `json:"formats"`
	PerExchangeWatchlists bool     `json:"per_exchange_watchlists"`
	TimestampNames        bool     `json:"timestamp_names"`
}

// Retry contains config values for retry process.
type Retry struct {
	Number int `json:"number"`
	GapSec int `json:"gap_sec"`
}

// Connection contains config values for different API and upload connections.
type Connection struct {
	REST REST `json:"rest"`
	S3   S3   `json:"s3"`
}

// REST contains config values for REST API connection.
type REST struct {
	ReqTimeoutSec       int `json:"request_timeout_sec"`
	MaxIdleConns        int `json:"max_idle_conns"`
	MaxIdleConnsPerHost int `json:"max_idle_conns_per_host"`
}

// S3 contains config values for s3.
type S3 struct {
	Enabled             bool   `json:"enabled"`
	AWSRegion           string `json:"aws_region"`
	AccessKeyID         string `json:"access_key_id"`
	SecretAccessKey     string `json:"secret_access_key"`
	Bucket              string `json:"bucket"`
	UsePrefixForObjName bool   `json:"use_prefix_for_object_name"`
	ReqTimeoutSec       int    `json:"request_timeout_sec"`
}

// Log contains config values for logging.
type Log struct {
	Level    string `json:"level"`
	FilePath string `json:"file_path"`
}

// Default returns the config used when the config file or any of its fields are absent.
func Default() Config {
	return Config{
		Exchanges: []string{"binance", "kraken"},
		Export: Export{
			Directory:             "export",
			Formats:               []string{"json", "csv", "txt"},
			PerExchangeWatchlists: true,
		},
		Connection: Connection{
			REST: REST{
				ReqTimeoutSec:       15,
				MaxIdleConns:        4,
				MaxIdleConnsPerHost: 2,
			},
			S3: S3{
				ReqTimeoutSec: 30,
			},
		},
		Retry: Retry{
			Number: 1,
			GapSec: 2,
		},
		Log: Log{
			Level: "info",
		},
	}
}
