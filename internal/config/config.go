// Package config loads findash settings from defaults, the user's
// config.yaml, a .env file and FINDASH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/findash/internal/logging"
	"github.com/rshade/findash/internal/marketdata"
)

// Default values.
const (
	DefaultBaseURL  = "http://localhost:5001"
	DefaultSeries   = string(marketdata.SeriesMonthly)
	DefaultInterval = marketdata.DefaultInterval
	DefaultSymbol   = "AAPL"

	outputFormatTable = "table"
	outputFormatJSON  = "json"

	configFileName = "config.yaml"
)

// Config is the top-level configuration document.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// APIConfig describes the market data backend.
type APIConfig struct {
	BaseURL  string `yaml:"base_url"`
	Series   string `yaml:"series"`
	Interval string `yaml:"interval"`
	// TimeoutSeconds bounds a whole request. 0 leaves it to the transport.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// MaxConcurrency caps parallel requests for `findash fetch`.
	MaxConcurrency int `yaml:"max_concurrency"`
}

// DashboardConfig tunes the interactive dashboard.
type DashboardConfig struct {
	DefaultSymbol string `yaml:"default_symbol"`
	// DiscardStale drops responses older than the latest issued fetch instead
	// of letting the last response to arrive win.
	DiscardStale bool `yaml:"discard_stale"`
}

// OutputConfig controls non-interactive rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// LoggingConfig controls logging.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	// Caller adds the source file and line to every event.
	Caller bool `yaml:"caller"`
}

// Validation errors.
var (
	ErrMissingBaseURL = errors.New("api.base_url is required")
	ErrInvalidSeries  = errors.New("invalid api.series")
	ErrInvalidOutput  = errors.New("invalid output.default_format")
)

// Defaults returns a Config populated with built-in defaults only.
func Defaults() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			Series:         DefaultSeries,
			Interval:       DefaultInterval,
			MaxConcurrency: 4, //nolint:mnd // Modest fan-out for a local backend.
		},
		Dashboard: DashboardConfig{
			DefaultSymbol: DefaultSymbol,
		},
		Output: OutputConfig{
			DefaultFormat: outputFormatTable,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     logging.FormatConsole,
			MaxSizeMB:  10, //nolint:mnd // Rotation size.
			MaxBackups: 3,  //nolint:mnd // Rotation count.
		},
	}
}

// New builds the effective configuration: defaults, then config.yaml from the
// config directory, then .env and environment overrides. Problems reading the
// file are reported on stderr and otherwise ignored.
func New() *Config {
	cfg := Defaults()

	if path, err := FilePath(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if mergeErr := ShallowMergeYAML(cfg, path); mergeErr != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: ignoring %s: %v\n", path, mergeErr)
			}
		}
	}

	loadDotEnv()
	ApplyEnvOverrides(cfg)
	cfg.fillDefaults()
	return cfg
}

// fillDefaults restores built-in values for settings a replaced section left
// empty.
func (c *Config) fillDefaults() {
	d := Defaults()
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.Series == "" {
		c.API.Series = d.API.Series
	}
	if c.API.Interval == "" {
		c.API.Interval = d.API.Interval
	}
	if c.API.MaxConcurrency <= 0 {
		c.API.MaxConcurrency = d.API.MaxConcurrency
	}
	if c.Dashboard.DefaultSymbol == "" {
		c.Dashboard.DefaultSymbol = d.Dashboard.DefaultSymbol
	}
	if c.Output.DefaultFormat == "" {
		c.Output.DefaultFormat = d.Output.DefaultFormat
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = d.Logging.Format
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return ErrMissingBaseURL
	}
	if _, err := marketdata.ParseSeries(c.API.Series); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSeries, err)
	}
	switch c.Output.DefaultFormat {
	case outputFormatTable, outputFormatJSON:
	default:
		return fmt.Errorf("%w: %q (want table or json)", ErrInvalidOutput, c.Output.DefaultFormat)
	}
	if c.Logging.Format != "" {
		if err := logging.ValidateFormat(c.Logging.Format); err != nil {
			return err
		}
	}
	return nil
}

// FilePath returns the path of config.yaml in the config directory.
func FilePath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// WriteFile writes cfg as YAML to path, creating parent directories.
func (c *Config) WriteFile(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	return data, nil
}
