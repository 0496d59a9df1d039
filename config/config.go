package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Feed     FeedConfig     `mapstructure:"feed"`
	Market   MarketConfig   `mapstructure:"market"`
	Log      LogConfig      `mapstructure:"log"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// FeedConfig defines the moodswing backend endpoints and stream tuning.
type FeedConfig struct {
	RESTBaseURL    string        `mapstructure:"rest_base_url"`   // e.g. "http://127.0.0.1:8000"
	WSBaseURL      string        `mapstructure:"ws_base_url"`     // e.g. "ws://127.0.0.1:8000"
	Timeout        time.Duration `mapstructure:"timeout"`         // REST request timeout
	Ticker         string        `mapstructure:"ticker"`          // instrument to track, e.g. "AAPL"
	StreamInterval int           `mapstructure:"stream_interval"` // tick push interval in seconds
	RetryDelay     time.Duration `mapstructure:"retry_delay"`     // delay before reconnect attempts
	HistoryDays    int           `mapstructure:"history_days"`    // trailing window of daily candles
	NewsLimit      int           `mapstructure:"news_limit"`      // max articles per news fetch
	RecordTicks    bool          `mapstructure:"record_ticks"`    // archive applied ticks to Postgres
}

// MarketConfig defines the exchange session in exchange-local civil time.
type MarketConfig struct {
	Timezone string `mapstructure:"timezone"` // e.g. "America/New_York"
	Open     string `mapstructure:"open"`     // session open, "HH:MM"
	Close    string `mapstructure:"close"`    // session close, "HH:MM"
	MIC      string `mapstructure:"mic"`      // optional ISO 10383 MIC for holiday calendar, e.g. "xnys"
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

// Load loads application configuration using Viper.
// It reads from config.yaml and overrides with environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")

	ex, _ := os.Executable()
	if strings.Contains(ex, "go-build") {
		pwd, _ := os.Getwd()
		v.AddConfigPath(filepath.Join(pwd, "../../config"))
	} else {
		v.AddConfigPath(filepath.Join(filepath.Dir(ex), "../config"))
	}

	// Support environment variables with dot notation (e.g., FEED_WS_BASE_URL)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("feed.timeout", 10*time.Second)
	v.SetDefault("feed.stream_interval", 5)
	v.SetDefault("feed.retry_delay", 5*time.Second)
	v.SetDefault("feed.history_days", 30)
	v.SetDefault("feed.news_limit", 10)
	v.SetDefault("market.timezone", "America/New_York")
	v.SetDefault("market.open", "09:30")
	v.SetDefault("market.close", "16:00")
	v.SetDefault("log.level", "info")
}

// Validate performs basic configuration validation.
func (c *Config) Validate() error {
	if c.Feed.RESTBaseURL == "" {
		return fmt.Errorf("feed rest_base_url cannot be empty")
	}
	if c.Feed.WSBaseURL == "" {
		return fmt.Errorf("feed ws_base_url cannot be empty")
	}
	if c.Feed.Ticker == "" {
		return fmt.Errorf("feed ticker cannot be empty")
	}
	if c.Feed.StreamInterval <= 0 {
		return fmt.Errorf("feed stream_interval must be greater than 0")
	}
	if c.Feed.RetryDelay <= 0 {
		return fmt.Errorf("feed retry_delay must be greater than 0")
	}
	if c.Feed.HistoryDays <= 0 {
		return fmt.Errorf("feed history_days must be greater than 0")
	}
	if c.Market.Timezone == "" {
		return fmt.Errorf("market timezone cannot be empty")
	}
	return nil
}
