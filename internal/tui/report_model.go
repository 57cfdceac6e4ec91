package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/serviceimpact/internal/logging"
	"github.com/rshade/serviceimpact/internal/metrics"
	"github.com/rshade/serviceimpact/internal/report"
)

// Tab identifies a page of the interactive report.
type Tab int

const (
	// TabSummary shows the period cards and improvement block.
	TabSummary Tab = iota
	// TabChart shows the bar chart and progress indicator.
	TabChart
	// TabTable shows the comparison rows in a navigable table.
	TabTable

	tabCount = 3
)

// String returns the tab title.
func (t Tab) String() string {
	switch t {
	case TabSummary:
		return "Summary"
	case TabChart:
		return "Chart"
	case TabTable:
		return "Table"
	default:
		return fmt.Sprintf("Tab(%d)", int(t))
	}
}

// Default dimensions before the first WindowSizeMsg.
const (
	defaultWidth  = 80
	defaultHeight = 24
	chromeWidth   = 4
	tableHeight   = 6
)

// Column widths for the comparison table.
const (
	colMetric = 18
	colValue  = 16
	colChange = 10
)

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(report.ColorHighlight).Underline(true)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(report.ColorLabel)
	helpStyle        = lipgloss.NewStyle().Foreground(report.ColorBorder).Italic(true)
)

// ReportModel is the Bubble Tea model for the interactive report viewer.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type ReportModel struct {
	ctx    context.Context
	report report.Report
	tab    Tab
	table  table.Model
	width  int
	height int
	quit   bool
}

// NewReportModel creates the viewer for r.
func NewReportModel(ctx context.Context, r report.Report) ReportModel {
	m := ReportModel{
		ctx:    ctx,
		report: r,
		tab:    TabSummary,
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.table = newComparisonTable(r)
	return m
}

// Init initializes the model (Bubble Tea interface).
func (m ReportModel) Init() tea.Cmd {
	return nil
}

// Tab returns the active tab.
func (m ReportModel) Tab() Tab {
	return m.tab
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quit = true
			logging.FromContext(m.ctx).Debug().Str("component", "tui").Msg("viewer closed")
			return m, tea.Quit
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % tabCount
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab + tabCount - 1) % tabCount
			return m, nil
		case "1":
			m.tab = TabSummary
			return m, nil
		case "2":
			m.tab = TabChart
			return m, nil
		case "3":
			m.tab = TabTable
			return m, nil
		}
	}

	if m.tab == TabTable {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the active tab (Bubble Tea interface).
func (m ReportModel) View() string {
	if m.quit {
		return ""
	}

	inner := max(m.width-chromeWidth, 0)

	var sb strings.Builder
	sb.WriteString(report.TitleStyle.Render(m.report.Title))
	sb.WriteString("\n")
	sb.WriteString(m.renderTabs())
	sb.WriteString("\n\n")

	switch m.tab {
	case TabSummary:
		sb.WriteString(report.RenderCards(m.report.Cards, inner))
		sb.WriteString("\n\n")
		sb.WriteString(report.RenderImprovement(m.report.Improvement))
	case TabChart:
		sb.WriteString(report.RenderBarChart(m.report.Chart, inner))
		sb.WriteString("\n\n")
		sb.WriteString(report.RenderProgress(m.report.Progress, inner))
	case TabTable:
		sb.WriteString(m.table.View())
	}

	sb.WriteString("\n\n")
	sb.WriteString(helpStyle.Render("tab/←/→ switch view • 1-3 jump • q quit"))
	return sb.String()
}

func (m ReportModel) renderTabs() string {
	parts := make([]string, 0, tabCount)
	for t := TabSummary; t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", int(t)+1, t)
		if t == m.tab {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

// newComparisonTable lists each comparison row with its relative change.
func newComparisonTable(r report.Report) table.Model {
	columns := []table.Column{
		{Title: "Metric", Width: colMetric},
		{Title: report.DefaultBeforeSeries, Width: colValue},
		{Title: report.DefaultAfterSeries, Width: colValue},
		{Title: "Change", Width: colChange},
	}
	if len(r.Chart.Series) == 2 { //nolint:mnd // before and after.
		columns[1].Title = r.Chart.Series[0].Name
		columns[2].Title = r.Chart.Series[1].Name
	}

	rows := make([]table.Row, 0, len(r.Comparison.Rows))
	for _, row := range r.Comparison.Rows {
		rows = append(rows, table.Row{
			row.Metric,
			metrics.FormatWithUnit(row.Before, metrics.PrecisionFor(row.Metric), row.Unit),
			metrics.FormatWithUnit(row.After, metrics.PrecisionFor(row.Metric), row.Unit),
			changeColumn(row),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(report.ColorHeader)
	s.Selected = s.Selected.Foreground(report.ColorHighlight).Bold(true)
	t.SetStyles(s)
	return t
}

// changeColumn shows the raw percentage change after vs before.
func changeColumn(row metrics.ComparisonRow) string {
	pct, err := metrics.ImprovementPct(row.Before, row.After, metrics.HigherIsBetter)
	if err != nil {
		return "n/a"
	}
	sign := ""
	if pct > 0 {
		sign = "+"
	}
	return sign + metrics.FormatPercent(pct)
}

// Run starts the interactive viewer and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, r report.Report, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(
		NewReportModel(ctx, r),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running report viewer: %w", err)
	}
	return nil
}
