// Package report shapes a metrics.Comparison into a display model (cards, an
// improvement block, a bar chart and a progress indicator) and renders that
// model as styled terminal output, plain text, JSON, NDJSON or Markdown.
package report

import (
	"time"

	"github.com/rshade/serviceimpact/internal/metrics"
)

// ChartLayoutHorizontal draws one bar group per metric, bars running left to right.
const ChartLayoutHorizontal = "horizontal"

// Report is the complete display model for one comparison.
type Report struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	GeneratedAt time.Time          `json:"generated_at"`
	Cards       []Card             `json:"cards"`
	Improvement ImprovementBlock   `json:"improvement"`
	Chart       BarChart           `json:"chart"`
	Progress    ProgressIndicator  `json:"progress"`
	Comparison  metrics.Comparison `json:"comparison"`
}

// Card summarizes one period.
type Card struct {
	Title string     `json:"title"`
	Lines []CardLine `json:"lines"`
}

// CardLine is a labelled, pre-formatted value. Highlight marks the headline figure.
type CardLine struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Highlight bool   `json:"highlight,omitempty"`
}

// ImprovementBlock shows the headline percentage changes.
type ImprovementBlock struct {
	Title string            `json:"title"`
	Items []ImprovementItem `json:"items"`
}

// ImprovementItem is one percentage figure.
type ImprovementItem struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
	Display string  `json:"display"`
}

// BarChart is a grouped bar chart: one category per metric, one series per period.
type BarChart struct {
	Layout     string   `json:"layout"`
	Categories []string `json:"categories"`
	Units      []string `json:"units"`
	Series     []Series `json:"series"`
}

// Series is one period's values across the chart categories.
// Tooltips[i] is the display text for Values[i].
type Series struct {
	Name     string    `json:"name"`
	Color    string    `json:"color"`
	Values   []float64 `json:"values"`
	Tooltips []string  `json:"tooltips"`
}

// ProgressIndicator is a single bar showing the efficiency improvement.
// Percent is the raw figure; FillPercent is clamped to [0, 100] for drawing.
type ProgressIndicator struct {
	Title       string  `json:"title"`
	Percent     float64 `json:"percent"`
	FillPercent float64 `json:"fill_percent"`
	Label       string  `json:"label"`
}
