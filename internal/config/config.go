// Package config builds the explicit configuration value the pipeline
// components are constructed with. Environment and config-file state
// is read exactly once here; no component reads the environment
// directly.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/fundradar/fundradar/internal/feeds"
	"github.com/fundradar/fundradar/pkg/errors"
	"github.com/fundradar/fundradar/pkg/history"
)

// Defaults.
const (
	DefaultHistoryFile    = "data/history.json"
	DefaultSinkFile       = "data/funding.csv"
	DefaultFeedsFile      = "feeds.yaml"
	DefaultExtractDelay   = 1500 * time.Millisecond
	DefaultRequestTimeout = 30 * time.Second
)

// DefaultGeminiModels are tried in order when a Gemini API key is
// configured.
var DefaultGeminiModels = []string{"gemini-2.0-flash"}

// Config holds everything the pipeline needs, resolved at startup.
type Config struct {
	// Feeds is the resolved feed list.
	Feeds []feeds.Feed

	// GeminiAPIKey enables the generative extraction strategies when
	// non-empty; absence simply disables them.
	GeminiAPIKey string

	// GeminiModels are the model IDs to build strategies for, in
	// trial order.
	GeminiModels []string

	// HistoryFile is the JSON history store path.
	HistoryFile string

	// SinkFile is the CSV sink path.
	SinkFile string

	// RetentionDays is the history retention window.
	RetentionDays int

	// ExtractDelay is the cooperative delay between successive remote
	// extraction calls.
	ExtractDelay time.Duration

	// RequestTimeout bounds an individual remote call; expiry is an
	// ordinary strategy failure.
	RequestTimeout time.Duration
}

// Load builds the configuration from environment variables (prefix
// FUNDRADAR_), an optional config file, and the feeds file.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FUNDRADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("feeds_file", DefaultFeedsFile)
	v.SetDefault("history_file", DefaultHistoryFile)
	v.SetDefault("sink_file", DefaultSinkFile)
	v.SetDefault("retention_days", history.DefaultRetentionDays)
	v.SetDefault("extract_delay", DefaultExtractDelay)
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	v.SetDefault("gemini_models", DefaultGeminiModels)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, &errors.ConfigError{
				Component: "config",
				Message:   "config file unreadable",
				Err:       err,
			}
		}
	}

	feedList, err := feeds.LoadFile(v.GetString("feeds_file"))
	if err != nil {
		return nil, err
	}
	if len(feedList) == 0 {
		return nil, &errors.ConfigError{
			Component: "feeds",
			Message:   "no feeds configured",
		}
	}

	cfg := &Config{
		Feeds:          feedList,
		GeminiAPIKey:   v.GetString("gemini_api_key"),
		GeminiModels:   v.GetStringSlice("gemini_models"),
		HistoryFile:    v.GetString("history_file"),
		SinkFile:       v.GetString("sink_file"),
		RetentionDays:  v.GetInt("retention_days"),
		ExtractDelay:   v.GetDuration("extract_delay"),
		RequestTimeout: v.GetDuration("request_timeout"),
	}

	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = history.DefaultRetentionDays
	}
	if cfg.ExtractDelay < 0 {
		cfg.ExtractDelay = DefaultExtractDelay
	}

	return cfg, nil
}
