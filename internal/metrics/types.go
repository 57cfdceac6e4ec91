// Package metrics derives service comparison metrics from two monitored
// periods of engine oil consumption.
//
// A PeriodRecord holds the raw observations for one period. Derived values
// (daily distance, consumption rate, efficiency) are computed on read and
// never stored. Compare turns a before/after pair into comparison rows and an
// improvement summary.
package metrics

import "fmt"

// Direction tells ImprovementPct which way counts as better.
type Direction int

const (
	// LowerIsBetter treats a decrease from the baseline as improvement.
	LowerIsBetter Direction = iota

	// HigherIsBetter treats an increase from the baseline as improvement.
	HigherIsBetter
)

// String returns a human-readable representation of the Direction.
func (d Direction) String() string {
	switch d {
	case LowerIsBetter:
		return "LowerIsBetter"
	case HigherIsBetter:
		return "HigherIsBetter"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}

// PeriodRecord is the raw data observed over one monitoring period.
// Construct it with NewPeriodRecord so the denominators are validated.
type PeriodRecord struct {
	// Label names the period (e.g. "Pre-Service (Oct)").
	Label string `json:"label"`

	// DistanceKm is the distance driven during the period.
	DistanceKm float64 `json:"distance_km"`

	// OilAddedLiters is the total oil topped up during the period.
	OilAddedLiters float64 `json:"oil_added_liters"`

	// DaysMonitored is the length of the period in days.
	DaysMonitored int `json:"days_monitored"`
}

// Derived holds the values computed from a PeriodRecord.
type Derived struct {
	// DailyDistance is km per day.
	DailyDistance float64 `json:"daily_distance"`

	// ConsumptionRate is liters per 1000 km.
	ConsumptionRate float64 `json:"consumption_rate"`

	// Efficiency is km per liter.
	Efficiency float64 `json:"efficiency"`
}

// ComparisonRow pairs the before and after value of one metric.
type ComparisonRow struct {
	Metric string  `json:"metric"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
	Unit   string  `json:"unit"`
}

// ImprovementSummary holds the percentage change of the two headline metrics.
// Positive values are improvements in both fields.
type ImprovementSummary struct {
	ConsumptionImprovementPct float64 `json:"consumption_improvement_pct"`
	EfficiencyImprovementPct  float64 `json:"efficiency_improvement_pct"`
}

// Comparison is the full result of comparing two periods.
type Comparison struct {
	Before        PeriodRecord       `json:"before"`
	After         PeriodRecord       `json:"after"`
	BeforeDerived Derived            `json:"before_derived"`
	AfterDerived  Derived            `json:"after_derived"`
	Rows          []ComparisonRow    `json:"rows"`
	Summary       ImprovementSummary `json:"summary"`
}

// Row returns the comparison row for the named metric.
func (c Comparison) Row(metric string) (ComparisonRow, bool) {
	for _, r := range c.Rows {
		if r.Metric == metric {
			return r, true
		}
	}
	return ComparisonRow{}, false
}
