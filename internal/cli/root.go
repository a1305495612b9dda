package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/findash/internal/logging"
	"github.com/rshade/findash/pkg/version"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the findash CLI.
// Without a subcommand it opens the interactive dashboard.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "findash",
		Short:   "Financial dashboard for a market data backend",
		Long:    "findash: view historical stock prices served by a market data backend",
		Version: ver,
		Example: rootCmdExample,
		Args:    cobra.NoArgs,
		// Runtime failures such as an unreachable backend are not usage errors.
		SilenceUsage: true,
		Annotations: map[string]string{
			annotationOwnsTerminal: "true",
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyBackendFlags(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, dashboardFlags{})
		},
	}

	cmd.SetVersionTemplate("{{.Name}} " + version.String() + "\n")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("base-url", "", "market data backend URL (overrides config file and env var)")
	cmd.PersistentFlags().String("series", "", "price series: monthly, daily or intraday")
	cmd.PersistentFlags().String("interval", "", "bar interval for the intraday series, e.g. 5min")
	cmd.AddCommand(NewDashboardCmd(), NewFetchCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Open the dashboard against the default backend
  findash

  # Open the dashboard on daily prices for MSFT
  findash dashboard --symbol MSFT --series daily

  # Print monthly prices for several symbols
  findash fetch AAPL MSFT TSLA

  # Print intraday bars as JSON from another backend
  findash fetch NVDA --series intraday --interval 15min --output json --base-url http://prices:5001

  # Write a default configuration file
  findash config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
