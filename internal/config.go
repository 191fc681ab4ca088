package internal

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Trip     TripConfig     `mapstructure:"trip"`
}

type DatabaseConfig struct {
	// Path is the sqlite file the whole app shares; ":memory:" is allowed
	// for tests.
	Path       string `mapstructure:"path"`
	LogQueries bool   `mapstructure:"log_queries"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TripConfig seeds the settings table on first run; after that the stored
// values win.
type TripConfig struct {
	DefaultExchangeRate    float64 `mapstructure:"default_exchange_rate"`
	DefaultUSDExchangeRate float64 `mapstructure:"default_usd_exchange_rate"`
}

func (c *Config) Validate() error {
	var errs []string

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if err := c.Trip.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("trip config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid level %q", c.Level)
	}
	switch c.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid format %q", c.Format)
	}
	return nil
}

func (c *TripConfig) Validate() error {
	if c.DefaultExchangeRate <= 0 || math.IsNaN(c.DefaultExchangeRate) || math.IsInf(c.DefaultExchangeRate, 0) {
		return errors.New("default_exchange_rate must be a positive number")
	}
	if c.DefaultUSDExchangeRate <= 0 || math.IsNaN(c.DefaultUSDExchangeRate) || math.IsInf(c.DefaultUSDExchangeRate, 0) {
		return errors.New("default_usd_exchange_rate must be a positive number")
	}
	return nil
}
