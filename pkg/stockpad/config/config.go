// Package config loads runtime configuration from a config file and
// STOCKPAD_* environment variables.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keeps the runtime configuration for the CLI.
type Config struct {
	Finnhub  FinnhubConfig
	Database DatabaseConfig
	Display  DisplayConfig
}

// FinnhubConfig holds market-data provider settings.
type FinnhubConfig struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

// DatabaseConfig holds the hosted table store connection.
type DatabaseConfig struct {
	DSN string
}

// DisplayConfig holds table presentation defaults.
type DisplayConfig struct {
	Sets        []string // default column sets for ls/export
	MaxColWidth int
	Color       bool
}

// Load reads $HOME/.stockpad.yaml (when present) and the environment.
// Keys: finnhub.token, finnhub.base_url, finnhub.timeout, database.dsn,
// display.sets, display.max_col_width, display.color; env override via
// STOCKPAD_FINNHUB_TOKEN etc.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".stockpad")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STOCKPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("finnhub.base_url", "https://finnhub.io/api/v1")
	v.SetDefault("finnhub.timeout", "10s")
	v.SetDefault("display.sets", []string{"all"})
	v.SetDefault("display.max_col_width", 40)
	v.SetDefault("display.color", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		Finnhub: FinnhubConfig{
			Token:   v.GetString("finnhub.token"),
			BaseURL: v.GetString("finnhub.base_url"),
			Timeout: v.GetDuration("finnhub.timeout"),
		},
		Database: DatabaseConfig{
			DSN: v.GetString("database.dsn"),
		},
		Display: DisplayConfig{
			Sets:        v.GetStringSlice("display.sets"),
			MaxColWidth: v.GetInt("display.max_col_width"),
			Color:       v.GetBool("display.color"),
		},
	}, nil
}

// RequireToken errors when no provider token is configured.
func (c *Config) RequireToken() error {
	if c.Finnhub.Token == "" {
		return errors.New("finnhub token not configured (set STOCKPAD_FINNHUB_TOKEN or finnhub.token)")
	}
	return nil
}

// RequireDSN errors when no database connection is configured.
func (c *Config) RequireDSN() error {
	if c.Database.DSN == "" {
		return errors.New("database DSN not configured (set STOCKPAD_DATABASE_DSN or database.dsn)")
	}
	return nil
}
