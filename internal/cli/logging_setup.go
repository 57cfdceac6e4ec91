package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/serviceimpact/internal/config"
	"github.com/rshade/serviceimpact/internal/logging"
)

// setupLogging configures logging based on config file, environment, and CLI flags.
func setupLogging(cmd *cobra.Command, cfg *config.Config) logging.LogPathResult {
	loggingCfg := cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Str("trace_id", traceID).Str("command", cmd.Name()).Msg("command started")

	return result
}

// closeLogOnExit wraps every RunE in the tree so logging is cleaned up
// whether or not the command fails. Cobra skips PersistentPostRunE after a
// failed RunE.
func closeLogOnExit(root *cobra.Command, result func() *logging.LogPathResult) {
	for _, c := range root.Commands() {
		closeLogOnExit(c, result)
	}
	if root.RunE == nil {
		return
	}

	run := root.RunE
	root.RunE = func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if cleanupErr := cleanupLogging(cmd, result(), err); err == nil {
			err = cleanupErr
		}
		return err
	}
}

// cleanupLogging logs the command outcome and closes the log file handle.
func cleanupLogging(cmd *cobra.Command, logResult *logging.LogPathResult, cmdErr error) error {
	event := logging.FromContext(cmd.Context()).Debug().Str("command", cmd.Name())
	if cmdErr != nil {
		event = event.Err(cmdErr)
	}
	event.Msg("command finished")

	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
