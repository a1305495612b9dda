package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/findash/internal/config"
	"github.com/rshade/findash/internal/dashboard"
	"github.com/rshade/findash/internal/logging"
	"github.com/rshade/findash/internal/marketdata"
	"github.com/rshade/findash/internal/tui"
)

// Output formats of the fetch command.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// ErrFetchFailed is returned when at least one symbol could not be fetched.
var ErrFetchFailed = errors.New("fetch failed")

// symbolResult is the outcome of fetching one symbol.
type symbolResult struct {
	Symbol string           `json:"symbol"`
	Rows   []marketdata.Row `json:"rows"`
	Error  string           `json:"error,omitempty"`

	err error
}

// NewFetchCmd creates the fetch command, which prints the rows for one or
// more symbols without opening the dashboard.
func NewFetchCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fetch SYMBOL...",
		Short: "Print price rows for one or more symbols",
		Long: `Fetches each symbol from the backend and prints its rows in server order.

Symbols are upper-cased like in the dashboard. Requests run concurrently,
bounded by api.max_concurrency; output keeps argument order. A symbol that
fails prints the empty-table placeholder and makes the command exit non-zero.`,
		Example: `  # Monthly prices for two symbols
  findash fetch AAPL msft

  # Daily prices as JSON
  findash fetch TSLA --series daily --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args, config.GetOutputFormat(output))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json (default from config)")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string, output string) error {
	if output != outputTable && output != outputJSON {
		return fmt.Errorf("invalid output format %q (want table or json)", output)
	}

	cfg := config.GetGlobalConfig()
	client, err := newMarketDataClient(cfg)
	if err != nil {
		return err
	}

	results := fetchAll(cmd.Context(), client, args, cfg.API.MaxConcurrency)

	switch output {
	case outputJSON:
		err = writeJSONResults(cmd.OutOrStdout(), results)
	default:
		err = writeTableResults(cmd.OutOrStdout(), results)
	}
	if err != nil {
		return err
	}

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Symbol, r.err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrFetchFailed, errors.Join(errs...))
	}
	return nil
}

// fetchAll fetches every symbol with at most limit requests in flight. One
// failure does not cancel the others.
func fetchAll(ctx context.Context, fetcher tui.Fetcher, symbols []string, limit int) []symbolResult {
	results := make([]symbolResult, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, raw := range symbols {
		symbol := dashboard.NormalizeSymbol(raw)
		g.Go(func() error {
			reqCtx := logging.ContextWithRequestID(gctx, logging.NewRequestID())
			rows, err := fetcher.Fetch(reqCtx, symbol)
			results[i] = symbolResult{Symbol: symbol, Rows: rows, err: err}
			if err != nil {
				results[i].Error = err.Error()
				logger.Error().Ctx(reqCtx).
					Str("symbol", symbol).
					Err(err).
					Msg("error fetching data")
				return nil
			}
			logger.Info().Ctx(reqCtx).
				Str("symbol", symbol).
				Int("rows", len(rows)).
				Msg("fetched data")
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func writeTableResults(w io.Writer, results []symbolResult) error {
	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n", r.Symbol); err != nil {
			return err
		}
		if err := dashboard.WriteTable(w, r.Rows); err != nil {
			return fmt.Errorf("rendering %s: %w", r.Symbol, err)
		}
	}
	return nil
}

func writeJSONResults(w io.Writer, results []symbolResult) error {
	for i := range results {
		if results[i].Rows == nil {
			results[i].Rows = []marketdata.Row{}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}
