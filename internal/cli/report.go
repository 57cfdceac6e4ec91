package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/serviceimpact/internal/config"
	"github.com/rshade/serviceimpact/internal/logging"
	"github.com/rshade/serviceimpact/internal/metrics"
	"github.com/rshade/serviceimpact/internal/report"
)

// reportParams holds the flags of the report command.
type reportParams struct {
	input  string
	output string
	width  int
}

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	var params reportParams

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the service impact report",
		Long: `Compares the before and after periods and renders the service impact report.

Periods are read from --input, then the periods section of the config file,
then the built-in October / November-December records.

Output formats:
  table     styled panels on a terminal, plain text otherwise (default)
  plain     plain text with a comparison table
  json      the full report model
  ndjson    one comparison row per line
  markdown  Markdown, rendered for the terminal when attached to one`,
		Example: `  serviceimpact report
  serviceimpact report --input periods.yaml --output json
  serviceimpact report --output markdown > report.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, params)
		},
	}

	cmd.Flags().StringVarP(&params.input, "input", "i", "", "YAML file with before/after periods")
	cmd.Flags().StringVarP(&params.output, "output", "o", "",
		"output format: table, plain, json, ndjson, markdown (default from config)")
	cmd.Flags().IntVar(&params.width, "width", 0, "report width in columns (0 = detect)")

	return cmd
}

func runReport(cmd *cobra.Command, params reportParams) error {
	ctx := cmd.Context()
	cfg := configFromContext(ctx)

	formatName := params.output
	if formatName == "" {
		formatName = cfg.Output.DefaultFormat
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if params.width < 0 {
		return fmt.Errorf("%w: got %d", config.ErrInvalidWidth, params.width)
	}

	r, err := buildReport(ctx, cfg, params.input)
	if err != nil {
		return err
	}

	width := params.width
	if width == 0 {
		width = cfg.Output.Width
	}
	return report.Render(cmd.OutOrStdout(), r, report.RenderOptions{Format: format, Width: width})
}

// buildReport resolves the periods, compares them and builds the display model.
// Invalid periods surface as *metrics.InvalidInputError.
func buildReport(ctx context.Context, cfg *config.Config, input string) (report.Report, error) {
	log := logging.FromContext(ctx)

	periods, err := cfg.ResolvePeriods(input)
	if err != nil {
		return report.Report{}, err
	}
	before, after, err := periods.Records()
	if err != nil {
		return report.Report{}, err
	}

	cmp, err := metrics.Compare(before, after)
	if err != nil {
		return report.Report{}, fmt.Errorf("comparing periods: %w", err)
	}

	log.Debug().
		Str("before", before.Label).
		Str("after", after.Label).
		Float64("consumption_improvement_pct", cmp.Summary.ConsumptionImprovementPct).
		Float64("efficiency_improvement_pct", cmp.Summary.EfficiencyImprovementPct).
		Msg("periods compared")

	return report.Build(cmp, report.Options{}), nil
}
