package report

import (
	"math"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/serviceimpact/internal/metrics"
)

// Default presentation values.
const (
	DefaultTitle            = "Service Impact Analysis"
	DefaultImprovementTitle = "Service Improvement"
	DefaultProgressTitle    = "Service Impact Timeline"
	DefaultBeforeSeries     = "Pre-Service"
	DefaultAfterSeries      = "Post-Service"
	DefaultBeforeColor      = "#ff7043"
	DefaultAfterColor       = "#4caf50"

	maxFillPercent = 100.0
)

// Card line labels.
const (
	LabelMonitoringPeriod = "Monitoring Period"
	LabelDistanceDriven   = "Distance Driven"
	LabelTotalOilAdded    = "Total Oil Added"
	LabelDailyDistance    = "Daily Distance"
	LabelOilConsumption   = "Oil Consumption"
	LabelEfficiency       = "Efficiency"

	LabelConsumptionImprovement = "Consumption Improvement"
	LabelEfficiencyImprovement  = "Efficiency Improvement"
)

// Options customizes Build. Zero values fall back to the defaults above.
type Options struct {
	Title        string
	BeforeSeries string
	AfterSeries  string
	BeforeColor  string
	AfterColor   string

	// Now and NewID make Build deterministic in tests.
	Now   func() time.Time
	NewID func() string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.BeforeSeries == "" {
		o.BeforeSeries = DefaultBeforeSeries
	}
	if o.AfterSeries == "" {
		o.AfterSeries = DefaultAfterSeries
	}
	if o.BeforeColor == "" {
		o.BeforeColor = DefaultBeforeColor
	}
	if o.AfterColor == "" {
		o.AfterColor = DefaultAfterColor
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = func() string { return ulid.Make().String() }
	}
	return o
}

// Build maps a comparison onto the display model. It only shapes data that
// metrics.Compare has already validated, so it cannot fail.
func Build(cmp metrics.Comparison, opts Options) Report {
	opts = opts.withDefaults()

	return Report{
		ID:          opts.NewID(),
		Title:       opts.Title,
		GeneratedAt: opts.Now().UTC(),
		Cards: []Card{
			buildCard(cmp, cmp.Before, cmp.BeforeDerived, func(r metrics.ComparisonRow) float64 { return r.Before }),
			buildCard(cmp, cmp.After, cmp.AfterDerived, func(r metrics.ComparisonRow) float64 { return r.After }),
		},
		Improvement: buildImprovement(cmp.Summary),
		Chart:       buildChart(cmp.Rows, opts),
		Progress:    buildProgress(cmp.Summary),
		Comparison:  cmp,
	}
}

// buildCard lists the period's raw and derived values. Consumption and
// efficiency come from the comparison rows so the card agrees with the chart.
func buildCard(
	cmp metrics.Comparison,
	p metrics.PeriodRecord,
	d metrics.Derived,
	pick func(metrics.ComparisonRow) float64,
) Card {
	consumption := d.ConsumptionRate
	if row, ok := cmp.Row(metrics.MetricOilConsumption); ok {
		consumption = pick(row)
	}
	efficiency := d.Efficiency
	if row, ok := cmp.Row(metrics.MetricEfficiency); ok {
		efficiency = pick(row)
	}

	return Card{
		Title: p.Label,
		Lines: []CardLine{
			{Label: LabelMonitoringPeriod, Value: strconv.Itoa(p.DaysMonitored) + " " + metrics.UnitDays},
			{Label: LabelDistanceDriven, Value: formatCompact(p.DistanceKm) + " " + metrics.UnitKm},
			{Label: LabelTotalOilAdded, Value: formatCompact(p.OilAddedLiters) + " " + metrics.UnitLiters},
			{
				Label: LabelDailyDistance,
				Value: metrics.FormatWithUnit(d.DailyDistance, metrics.RatioDisplayPrecision, metrics.UnitDailyDistance),
			},
			{
				Label: LabelOilConsumption,
				Value: metrics.FormatWithUnit(consumption, metrics.ConsumptionRowPrecision, metrics.UnitConsumption),
			},
			{
				Label:     LabelEfficiency,
				Value:     metrics.FormatWithUnit(efficiency, metrics.EfficiencyDisplayPrecision, metrics.UnitEfficiency),
				Highlight: true,
			},
		},
	}
}

func buildImprovement(s metrics.ImprovementSummary) ImprovementBlock {
	return ImprovementBlock{
		Title: DefaultImprovementTitle,
		Items: []ImprovementItem{
			{
				Label:   LabelConsumptionImprovement,
				Percent: s.ConsumptionImprovementPct,
				Display: metrics.FormatPercent(s.ConsumptionImprovementPct),
			},
			{
				Label:   LabelEfficiencyImprovement,
				Percent: s.EfficiencyImprovementPct,
				Display: metrics.FormatPercent(s.EfficiencyImprovementPct),
			},
		},
	}
}

func buildChart(rows []metrics.ComparisonRow, opts Options) BarChart {
	chart := BarChart{
		Layout:     ChartLayoutHorizontal,
		Categories: make([]string, 0, len(rows)),
		Units:      make([]string, 0, len(rows)),
	}
	before := Series{Name: opts.BeforeSeries, Color: opts.BeforeColor}
	after := Series{Name: opts.AfterSeries, Color: opts.AfterColor}

	for _, r := range rows {
		chart.Categories = append(chart.Categories, r.Metric)
		chart.Units = append(chart.Units, r.Unit)

		before.Values = append(before.Values, r.Before)
		before.Tooltips = append(before.Tooltips, tooltip(r.Before, r.Unit))
		after.Values = append(after.Values, r.After)
		after.Tooltips = append(after.Tooltips, tooltip(r.After, r.Unit))
	}
	chart.Series = []Series{before, after}
	return chart
}

// buildProgress derives the indicator from the efficiency improvement.
func buildProgress(s metrics.ImprovementSummary) ProgressIndicator {
	pct := s.EfficiencyImprovementPct
	return ProgressIndicator{
		Title:       DefaultProgressTitle,
		Percent:     pct,
		FillPercent: math.Max(0, math.Min(maxFillPercent, pct)),
		Label:       progressLabel(pct),
	}
}

func progressLabel(pct float64) string {
	if pct < 0 {
		return metrics.FormatPercent(-pct) + " Regressed"
	}
	return metrics.FormatPercent(pct) + " Improved"
}

func tooltip(v float64, unit string) string {
	return metrics.FormatWithUnit(v, metrics.TooltipPrecision, unit)
}

// formatCompact prints raw inputs the way they were entered: 2.3, 2.75, 887.
func formatCompact(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
