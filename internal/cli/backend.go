package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/findash/internal/config"
	"github.com/rshade/findash/internal/marketdata"
)

// applyBackendFlags copies explicitly set backend flags onto the global
// config. Flags override the config file and environment.
func applyBackendFlags(cmd *cobra.Command) error {
	cfg := config.GetGlobalConfig()

	if cmd.Flags().Changed("base-url") {
		cfg.API.BaseURL, _ = cmd.Flags().GetString("base-url")
	}
	if cmd.Flags().Changed("series") {
		series, _ := cmd.Flags().GetString("series")
		if _, err := marketdata.ParseSeries(series); err != nil {
			return fmt.Errorf("invalid --series: %w", err)
		}
		cfg.API.Series = series
	}
	if cmd.Flags().Changed("interval") {
		cfg.API.Interval, _ = cmd.Flags().GetString("interval")
	}
	return nil
}

// newMarketDataClient builds a client for the configured backend.
func newMarketDataClient(cfg *config.Config) (*marketdata.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	timeout := time.Duration(cfg.API.TimeoutSeconds) * time.Second
	client, err := marketdata.NewClient(marketdata.ClientConfig{
		BaseURL:  cfg.API.BaseURL,
		Series:   marketdata.Series(cfg.API.Series),
		Interval: cfg.API.Interval,
	}, marketdata.NewHTTPClient(timeout))
	if err != nil {
		return nil, fmt.Errorf("creating market data client: %w", err)
	}
	return client, nil
}
