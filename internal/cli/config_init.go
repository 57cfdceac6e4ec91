package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/serviceimpact/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var (
		force       bool
		withPeriods bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at the path given by
--config, $SERVICEIMPACT_CONFIG, or ~/.serviceimpact/config.yaml.`,
		Example: `  # Create the default configuration
  serviceimpact config init

  # Include the built-in periods so they can be edited
  serviceimpact config init --with-periods

  # Overwrite an existing file
  serviceimpact config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configFlag, _ := cmd.Flags().GetString("config")
			path := config.ResolvePath(configFlag)
			if path == "" {
				return errors.New("cannot determine config path, use --config")
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("cannot access config path %s: %w", path, err)
				}
			}

			cfg := config.New()
			if withPeriods {
				periods := config.DefaultPeriods()
				cfg.Periods = &periods
			}
			if err := cfg.Save(path); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			cmd.Printf("Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&withPeriods, "with-periods", false, "include the built-in periods section")

	return cmd
}
