package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/serviceimpact/internal/config"
	"github.com/rshade/serviceimpact/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

type configKey struct{}

// contextWithConfig stores the loaded configuration for subcommands.
func contextWithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFromContext returns the configuration loaded by the root command, or
// defaults when the command was invoked without it.
func configFromContext(ctx context.Context) *config.Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
			return cfg
		}
	}
	return config.New()
}

// NewRootCmd creates the root Cobra command for the serviceimpact CLI.
// It loads configuration, wires up logging and registers the report, view,
// config and version subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serviceimpact",
		Short: "Compare engine oil consumption before and after a service",
		Long: `serviceimpact compares two monitored periods of engine oil consumption and
reports how a service changed consumption (L/1000km), efficiency (km/L) and
daily distance, as summary cards, a bar chart and a progress indicator.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ResolvePath(configPath)
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			result := setupLogging(cmd, cfg)
			logResult = &result

			ctx := contextWithConfig(cmd.Context(), cfg)
			cmd.SetContext(ctx)

			logging.FromContext(ctx).Debug().Str("config_path", path).Msg("configuration loaded")
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default $SERVICEIMPACT_CONFIG or ~/.serviceimpact/config.yaml)")

	cmd.AddCommand(NewReportCmd(), NewViewCmd(), newConfigCmd(), NewVersionCmd(ver))
	closeLogOnExit(cmd, func() *logging.LogPathResult { return logResult })
	return cmd
}

const rootCmdExample = `  # Report on the built-in periods
  serviceimpact report

  # Report on your own periods file
  serviceimpact report --input periods.yaml

  # Machine-readable output
  serviceimpact report --input periods.yaml --output json

  # Browse the report interactively
  serviceimpact view --input periods.yaml

  # Write a starter configuration
  serviceimpact config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd(), NewConfigShowCmd())
	return cmd
}

// NewVersionCmd prints the build version.
func NewVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("serviceimpact %s\n", ver)
			return nil
		},
	}
}
