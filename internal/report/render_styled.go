package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Bar chart glyphs and sizing.
const (
	barFilledChar    = "█"
	barLabelWidth    = 16
	seriesNameWidth  = 13
	barValueReserve  = 18
	minBarWidth      = 8
	cardGapWidth     = 2
	borderWidth      = 2
	progressTrackHex = "#3a3a3a"
)

// Colors shared by the styled renderer and the interactive view.
var (
	ColorHeader    = lipgloss.Color("39")
	ColorBorder    = lipgloss.Color("240")
	ColorLabel     = lipgloss.Color("246")
	ColorValue     = lipgloss.Color("252")
	ColorHighlight = lipgloss.Color("42")
	ColorPanel     = lipgloss.Color("33")
)

// Styles.
var (
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	SectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPanel)
	LabelStyle     = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle     = lipgloss.NewStyle().Foreground(ColorValue)
	HighlightStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	BoxStyle       = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)

// RenderStyled writes the report as bordered Lip Gloss panels.
func RenderStyled(w io.Writer, r Report, width int) error {
	_, err := fmt.Fprintln(w, RenderStyledString(r, width))
	return err
}

// RenderStyledString builds the styled report.
func RenderStyledString(r Report, width int) string {
	inner := width - boxPaddingWidth

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(r.Title))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", max(inner, 0)))
	sb.WriteString("\n\n")

	sb.WriteString(RenderCards(r.Cards, inner))
	sb.WriteString("\n\n")
	sb.WriteString(RenderImprovement(r.Improvement))
	sb.WriteString("\n\n")
	sb.WriteString(RenderBarChart(r.Chart, inner))
	sb.WriteString("\n\n")
	sb.WriteString(RenderProgress(r.Progress, inner))

	// Lip Gloss widths exclude the border.
	return BoxStyle.Width(max(width-borderWidth, 0)).Render(sb.String())
}

// RenderCards lays the period cards side by side, or stacked when narrow.
func RenderCards(cards []Card, width int) string {
	if len(cards) == 0 {
		return ""
	}

	sideBySide := width >= sideBySideMinWidth
	cardWidth := width
	if sideBySide {
		cardWidth = (width - cardGapWidth*(len(cards)-1)) / len(cards)
	}

	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, RenderCard(c, cardWidth))
	}

	if !sideBySide {
		return lipgloss.JoinVertical(lipgloss.Left, rendered...)
	}

	gap := strings.Repeat(" ", cardGapWidth)
	parts := make([]string, 0, len(rendered)*2-1)
	for i, c := range rendered {
		if i > 0 {
			parts = append(parts, gap)
		}
		parts = append(parts, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// RenderCard renders one period card in a bordered box of the given width.
func RenderCard(c Card, width int) string {
	var sb strings.Builder
	sb.WriteString(SectionStyle.Render(c.Title))
	for _, l := range c.Lines {
		sb.WriteString("\n")
		sb.WriteString(LabelStyle.Render(l.Label + ": "))
		if l.Highlight {
			sb.WriteString(HighlightStyle.Render(l.Value))
		} else {
			sb.WriteString(ValueStyle.Render(l.Value))
		}
	}
	return BoxStyle.Width(max(width-borderWidth, 0)).Render(sb.String())
}

// RenderImprovement renders the headline percentages on one line.
func RenderImprovement(b ImprovementBlock) string {
	var sb strings.Builder
	sb.WriteString(SectionStyle.Render(b.Title))
	sb.WriteString("\n")

	parts := make([]string, 0, len(b.Items))
	for _, it := range b.Items {
		style := HighlightStyle
		if it.Percent < 0 {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
		}
		parts = append(parts, LabelStyle.Render(it.Label+": ")+style.Render(it.Display))
	}
	sb.WriteString(strings.Join(parts, "    "))
	return sb.String()
}

// RenderBarChart draws the grouped horizontal bar chart. Each category is
// scaled to its own maximum because the metrics have unrelated units.
func RenderBarChart(c BarChart, width int) string {
	barWidth := max(width-barLabelWidth-seriesNameWidth-barValueReserve, minBarWidth)

	var sb strings.Builder
	for i, cat := range c.Categories {
		if i > 0 {
			sb.WriteString("\n")
		}
		peak := 0.0
		for _, s := range c.Series {
			if i < len(s.Values) {
				peak = math.Max(peak, math.Abs(s.Values[i]))
			}
		}

		for j, s := range c.Series {
			if i >= len(s.Values) {
				continue
			}
			label := ""
			if j == 0 {
				label = cat
			}
			sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", barLabelWidth, truncate(label, barLabelWidth))))
			sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", seriesNameWidth, truncate(s.Name, seriesNameWidth))))

			filled := scaledWidth(s.Values[i], peak, barWidth)
			bar := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render(strings.Repeat(barFilledChar, filled))
			sb.WriteString(bar)
			sb.WriteString(" ")
			sb.WriteString(ValueStyle.Render(tooltipAt(s, i)))
			sb.WriteString("\n")
		}
	}

	legend := make([]string, 0, len(c.Series))
	for _, s := range c.Series {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render(barFilledChar + barFilledChar)
		legend = append(legend, swatch+" "+LabelStyle.Render(s.Name))
	}
	sb.WriteString(strings.Join(legend, "   "))
	return sb.String()
}

// RenderProgress renders the progress indicator with a bubbles progress bar.
func RenderProgress(p ProgressIndicator, width int) string {
	label := " " + p.Label
	barWidth := max(width-lipgloss.Width(label)-progressLabelMargin, minBarWidth)

	bar := progress.New(
		progress.WithSolidFill(DefaultAfterColor),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = progressTrackHex

	var sb strings.Builder
	sb.WriteString(SectionStyle.Render(p.Title))
	sb.WriteString("\n")
	sb.WriteString(bar.ViewAs(p.FillPercent / maxFillPercent))
	sb.WriteString(HighlightStyle.Render(label))
	return sb.String()
}

// scaledWidth maps v onto [0, width] relative to peak.
func scaledWidth(v, peak float64, width int) int {
	if peak <= 0 || v <= 0 {
		return 0
	}
	n := int(math.Round(v / peak * float64(width)))
	return min(max(n, 0), width)
}

func tooltipAt(s Series, i int) string {
	if i < len(s.Tooltips) {
		return s.Tooltips[i]
	}
	return fmt.Sprintf("%.1f", s.Values[i])
}

// truncate shortens s to n display columns, adding "…" when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
