package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/rshade/serviceimpact/internal/metrics"
)

// glamourGutter accounts for glamour's left margin when wrapping.
const glamourGutter = 2

// RenderMarkdown returns the report as GitHub-flavored Markdown.
func RenderMarkdown(r Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", r.Title)

	for _, c := range r.Cards {
		fmt.Fprintf(&sb, "## %s\n\n", c.Title)
		for _, l := range c.Lines {
			if l.Highlight {
				fmt.Fprintf(&sb, "- **%s: %s**\n", l.Label, l.Value)
			} else {
				fmt.Fprintf(&sb, "- %s: %s\n", l.Label, l.Value)
			}
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "## %s\n\n", r.Improvement.Title)
	for _, it := range r.Improvement.Items {
		fmt.Fprintf(&sb, "- %s: **%s**\n", it.Label, it.Display)
	}
	sb.WriteString("\n")

	sb.WriteString("| Metric |")
	for _, s := range r.Chart.Series {
		fmt.Fprintf(&sb, " %s |", s.Name)
	}
	sb.WriteString("\n|---|")
	for range r.Chart.Series {
		sb.WriteString("---:|")
	}
	sb.WriteString("\n")
	for i, cat := range r.Chart.Categories {
		fmt.Fprintf(&sb, "| %s |", cat)
		for _, s := range r.Chart.Series {
			if i < len(s.Values) {
				fmt.Fprintf(&sb, " %s |", tooltipAt(s, i))
			} else {
				sb.WriteString(" |")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "## %s\n\n", r.Progress.Title)
	fmt.Fprintf(&sb, "`%s`\n", renderPlainProgress(r.Progress, plainBarWidth))
	fmt.Fprintf(&sb, "\n_Efficiency change: %s_\n", metrics.FormatPercent(r.Progress.Percent))

	return sb.String()
}

// RenderMarkdownStyled renders the Markdown through glamour for a terminal.
func RenderMarkdownStyled(w io.Writer, r Report, width int) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width-glamourGutter, minWidth)),
	)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}

	out, err := renderer.Render(RenderMarkdown(r))
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
