package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/findash/internal/config"
	"github.com/rshade/findash/internal/tui"
)

// ErrNotInteractive is returned when the dashboard cannot take over a terminal.
var ErrNotInteractive = errors.New("the dashboard needs an interactive terminal; use `findash fetch` instead")

type dashboardFlags struct {
	symbol       string
	discardStale bool
	noColor      bool
}

// NewDashboardCmd creates the dashboard command, which is also what the bare
// root command runs.
func NewDashboardCmd() *cobra.Command {
	var flags dashboardFlags

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Opens a full-screen dashboard with a ticker input, a Fetch Data button
and a table of the rows last fetched.

Typing only changes the ticker; press the button (tab to focus, then enter)
to fetch. Logs go to a file so they do not disturb the screen.`,
		Example: `  # Start on the configured default symbol
  findash dashboard

  # Start on TSLA and ignore responses to superseded fetches
  findash dashboard --symbol tsla --discard-stale`,
		Args: cobra.NoArgs,
		Annotations: map[string]string{
			annotationOwnsTerminal: "true",
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.symbol, "symbol", "", "initial ticker symbol")
	cmd.Flags().BoolVar(&flags.discardStale, "discard-stale", false,
		"ignore responses to fetches superseded by a newer one")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "render without colours (also set by NO_COLOR)")

	return cmd
}

func runDashboard(cmd *cobra.Command, flags dashboardFlags) error {
	if mode := tui.DetectOutputMode(false); mode != tui.OutputModeInteractive {
		return fmt.Errorf("%w (output mode %s)", ErrNotInteractive, mode)
	}
	tui.ApplyColorPreference(flags.noColor)

	cfg := config.GetGlobalConfig()
	client, err := newMarketDataClient(cfg)
	if err != nil {
		return err
	}

	symbol := flags.symbol
	if symbol == "" {
		symbol = cfg.Dashboard.DefaultSymbol
	}

	ctx := cmd.Context()
	model := tui.NewDashboardModel(ctx, client, tui.DashboardOptions{
		InitialSymbol: symbol,
		DiscardStale:  flags.discardStale || cfg.Dashboard.DiscardStale,
	})

	logger.Info().Ctx(ctx).
		Str("base_url", cfg.API.BaseURL).
		Str("series", string(client.Series())).
		Str("symbol", model.Symbol()).
		Msg("starting dashboard")

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
