package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/serviceimpact/internal/report"
	"github.com/rshade/serviceimpact/internal/tui"
)

// NewViewCmd creates the interactive view command.
func NewViewCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the service impact report interactively",
		Long: `Opens the report in an interactive terminal viewer with Summary, Chart and
Table tabs. When stdout is not a terminal the report is printed instead.`,
		Example: `  serviceimpact view
  serviceimpact view --input periods.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			r, err := buildReport(ctx, cfg, input)
			if err != nil {
				return err
			}

			out, ok := cmd.OutOrStdout().(*os.File)
			if !ok || !isTerminal(out) {
				logger.Debug().Msg("stdout is not a terminal, printing report")
				return report.Render(cmd.OutOrStdout(), r, report.RenderOptions{
					Format: report.FormatTable,
					Width:  cfg.Output.Width,
				})
			}
			return tui.Run(ctx, r, cmd.InOrStdin(), out)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "YAML file with before/after periods")
	return cmd
}
