package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/rshade/serviceimpact/internal/metrics"
)

// Plain progress bar glyphs.
const (
	plainBarWidth  = 30
	plainBarFilled = "#"
	plainBarEmpty  = "-"
)

// RenderPlain writes the report as plain text for pipes, CI logs and files.
func RenderPlain(w io.Writer, r Report) error {
	if _, err := fmt.Fprintln(w, strings.ToUpper(r.Title)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("=", len(r.Title))); err != nil {
		return err
	}

	for _, c := range r.Cards {
		if err := writePlainCard(w, c); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", r.Improvement.Title); err != nil {
		return err
	}
	for _, it := range r.Improvement.Items {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", it.Label, it.Display); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := writeComparisonTable(w, r.Chart); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s\n%s\n", r.Progress.Title, renderPlainProgress(r.Progress, plainBarWidth))
	return err
}

func writePlainCard(w io.Writer, c Card) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", c.Title); err != nil {
		return err
	}
	for _, l := range c.Lines {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", l.Label, l.Value); err != nil {
			return err
		}
	}
	return nil
}

// writeComparisonTable renders one row per chart category with a column per
// series and the unit. Values use the metric's display precision.
func writeComparisonTable(w io.Writer, c BarChart) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	// Header auto-format would turn "Pre-Service" into "PRE - SERVICE".
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Formatting.AutoFormat = tw.Off
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	headers := []string{"Metric"}
	for _, s := range c.Series {
		headers = append(headers, s.Name)
	}
	headers = append(headers, "Unit")
	table.Header(headers)

	data := make([][]string, 0, len(c.Categories))
	for i, cat := range c.Categories {
		row := []string{cat}
		precision := metrics.PrecisionFor(cat)
		for _, s := range c.Series {
			if i < len(s.Values) {
				row = append(row, metrics.FormatValue(s.Values[i], precision))
			} else {
				row = append(row, "")
			}
		}
		unit := ""
		if i < len(c.Units) {
			unit = c.Units[i]
		}
		row = append(row, unit)
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// renderPlainProgress draws "[####------] 89.6% Improved".
func renderPlainProgress(p ProgressIndicator, width int) string {
	filled := scaledWidth(p.FillPercent, maxFillPercent, width)
	return "[" + strings.Repeat(plainBarFilled, filled) +
		strings.Repeat(plainBarEmpty, width-filled) + "] " + p.Label
}
