package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables recognised by findash.
const (
	EnvHome      = "FINDASH_HOME"
	EnvBaseURL   = "FINDASH_BASE_URL"
	EnvSeries    = "FINDASH_SERIES"
	EnvInterval  = "FINDASH_INTERVAL"
	EnvLogLevel  = "FINDASH_LOG_LEVEL"
	EnvLogFormat = "FINDASH_LOG_FORMAT"
	EnvLogFile   = "FINDASH_LOG_FILE"
	EnvDotEnv    = "FINDASH_DOTENV"
)

// loadDotEnv loads variables from a .env file (or $FINDASH_DOTENV) without
// overriding variables already set in the process environment.
func loadDotEnv() {
	path := os.Getenv(EnvDotEnv)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = os.Stderr.WriteString("Warning: could not load " + path + ": " + err.Error() + "\n")
	}
}

// ApplyEnvOverrides copies FINDASH_* variables onto cfg.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv(EnvSeries); v != "" {
		cfg.API.Series = v
	}
	if v := os.Getenv(EnvInterval); v != "" {
		cfg.API.Interval = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.File = v
	}
}
