package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/findash/internal/config"
	"github.com/rshade/findash/internal/logging"
	"github.com/rshade/findash/pkg/version"
)

// annotationOwnsTerminal marks commands that draw a full-screen UI, so log
// output must not go to the terminal.
const annotationOwnsTerminal = "findash/owns-terminal"

func ownsTerminal(cmd *cobra.Command) bool {
	return cmd.Annotations[annotationOwnsTerminal] == "true"
}

// setupLogging configures logging based on config file, environment, and CLI flags.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.Caller = true
		if !ownsTerminal(cmd) {
			loggingCfg.File = ""
		}
	}

	if ownsTerminal(cmd) && loggingCfg.File == "" {
		if path, err := config.DefaultLogFile(); err == nil {
			loggingCfg.File = path
			loggingCfg.Format = logging.FormatJSON
		}
	}

	logCfg := loggingCfg.ToLoggingConfig()
	if ownsTerminal(cmd) {
		// Anything written to stderr would be drawn over the dashboard.
		logCfg.DiscardOnFallback = true
		if logCfg.File == "" {
			logCfg.Output = logging.OutputDiscard
		}
	}

	result := logging.NewLoggerWithPath(logCfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	switch {
	case result.FallbackUsed && result.Discarding:
		logging.PrintDiscardWarning(cmd.ErrOrStderr(), result.FallbackReason)
	case result.FallbackUsed:
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	case result.UsingFile && !ownsTerminal(cmd):
		// The dashboard takes over the screen, so the path notice would be lost.
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).
		Str("command", cmd.Name()).
		Str("version", version.GetVersion()).
		Str("commit", version.GetGitCommit()).
		Str("build_date", version.GetBuildDate()).
		Msg("command started")

	return result
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(_ *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
