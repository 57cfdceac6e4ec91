package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/serviceimpact/internal/metrics"
)

var fixedNow = time.Date(2024, time.December, 31, 12, 0, 0, 0, time.UTC)

func fixedOptions() Options {
	return Options{
		Now:   func() time.Time { return fixedNow },
		NewID: func() string { return "01TESTREPORT" },
	}
}

func defaultComparison(t *testing.T) metrics.Comparison {
	t.Helper()
	before, err := metrics.NewPeriodRecord("Pre-Service (Oct)", 887, 2.3, 22)
	require.NoError(t, err)
	after, err := metrics.NewPeriodRecord("Post-Service (Nov-Dec)", 2013, 2.75, 45)
	require.NoError(t, err)
	cmp, err := metrics.Compare(before, after)
	require.NoError(t, err)
	return cmp
}

func lineValue(t *testing.T, c Card, label string) CardLine {
	t.Helper()
	for _, l := range c.Lines {
		if l.Label == label {
			return l
		}
	}
	t.Fatalf("card %q has no line %q", c.Title, label)
	return CardLine{}
}

func TestBuild_Cards(t *testing.T) {
	r := Build(defaultComparison(t), fixedOptions())

	require.Len(t, r.Cards, 2)
	pre, post := r.Cards[0], r.Cards[1]

	assert.Equal(t, "Pre-Service (Oct)", pre.Title)
	assert.Equal(t, "22 days", lineValue(t, pre, LabelMonitoringPeriod).Value)
	assert.Equal(t, "887 km", lineValue(t, pre, LabelDistanceDriven).Value)
	assert.Equal(t, "2.3 L", lineValue(t, pre, LabelTotalOilAdded).Value)
	assert.Equal(t, "40.3 km/day", lineValue(t, pre, LabelDailyDistance).Value)
	assert.Equal(t, "2.59 L/1000km", lineValue(t, pre, LabelOilConsumption).Value)
	eff := lineValue(t, pre, LabelEfficiency)
	assert.Equal(t, "386 km/L", eff.Value)
	assert.True(t, eff.Highlight)

	assert.Equal(t, "Post-Service (Nov-Dec)", post.Title)
	assert.Equal(t, "45 days", lineValue(t, post, LabelMonitoringPeriod).Value)
	assert.Equal(t, "2013 km", lineValue(t, post, LabelDistanceDriven).Value)
	assert.Equal(t, "2.75 L", lineValue(t, post, LabelTotalOilAdded).Value)
	assert.Equal(t, "44.7 km/day", lineValue(t, post, LabelDailyDistance).Value)
	assert.Equal(t, "1.37 L/1000km", lineValue(t, post, LabelOilConsumption).Value)
	assert.Equal(t, "732 km/L", lineValue(t, post, LabelEfficiency).Value)
}

func TestBuild_ImprovementAndProgress(t *testing.T) {
	r := Build(defaultComparison(t), fixedOptions())

	require.Len(t, r.Improvement.Items, 2)
	assert.Equal(t, LabelConsumptionImprovement, r.Improvement.Items[0].Label)
	assert.Equal(t, "47.1%", r.Improvement.Items[0].Display)
	assert.Equal(t, LabelEfficiencyImprovement, r.Improvement.Items[1].Label)
	assert.Equal(t, "89.6%", r.Improvement.Items[1].Display)

	// The indicator is derived from the same summary the block shows.
	assert.Equal(t, "89.6% Improved", r.Progress.Label)
	assert.InDelta(t, r.Comparison.Summary.EfficiencyImprovementPct, r.Progress.Percent, 1e-12)
	assert.InDelta(t, r.Progress.Percent, r.Progress.FillPercent, 1e-12)
	assert.Equal(t, DefaultProgressTitle, r.Progress.Title)
}

func TestBuild_Chart(t *testing.T) {
	r := Build(defaultComparison(t), fixedOptions())
	c := r.Chart

	assert.Equal(t, ChartLayoutHorizontal, c.Layout)
	assert.Equal(t, []string{
		metrics.MetricOilConsumption, metrics.MetricEfficiency, metrics.MetricDailyDistance,
	}, c.Categories)
	assert.Equal(t, []string{
		metrics.UnitConsumption, metrics.UnitEfficiency, metrics.UnitDailyDistance,
	}, c.Units)

	require.Len(t, c.Series, 2)
	assert.Equal(t, DefaultBeforeSeries, c.Series[0].Name)
	assert.Equal(t, DefaultBeforeColor, c.Series[0].Color)
	assert.Equal(t, DefaultAfterSeries, c.Series[1].Name)
	assert.Equal(t, DefaultAfterColor, c.Series[1].Color)

	assert.Equal(t, []string{"2.6 L/1000km", "386.0 km/L", "40.3 km/day"}, c.Series[0].Tooltips)
	assert.Equal(t, []string{"1.4 L/1000km", "732.0 km/L", "44.7 km/day"}, c.Series[1].Tooltips)
	assert.InDelta(t, 732.0, c.Series[1].Values[1], 1e-9)
}

func TestBuild_ProgressClampAndRegression(t *testing.T) {
	tests := []struct {
		name      string
		pct       float64
		wantFill  float64
		wantLabel string
	}{
		{name: "within range", pct: 42.25, wantFill: 42.25, wantLabel: "42.3% Improved"},
		{name: "above 100 clamps", pct: 250, wantFill: 100, wantLabel: "250.0% Improved"},
		{name: "negative clamps to zero", pct: -12.5, wantFill: 0, wantLabel: "12.5% Regressed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := buildProgress(metrics.ImprovementSummary{EfficiencyImprovementPct: tt.pct})
			assert.InDelta(t, tt.wantFill, p.FillPercent, 1e-12)
			assert.Equal(t, tt.wantLabel, p.Label)
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	cmp := defaultComparison(t)
	assert.Equal(t, Build(cmp, fixedOptions()), Build(cmp, fixedOptions()))
}

func TestBuild_Defaults(t *testing.T) {
	r := Build(defaultComparison(t), Options{Title: "Custom", BeforeSeries: "Old"})
	assert.Equal(t, "Custom", r.Title)
	assert.Equal(t, "Old", r.Chart.Series[0].Name)
	assert.Equal(t, DefaultAfterSeries, r.Chart.Series[1].Name)
	assert.NotEmpty(t, r.ID)
	assert.False(t, r.GeneratedAt.IsZero())
}
