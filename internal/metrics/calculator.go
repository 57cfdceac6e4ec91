package metrics

import (
	"fmt"
	"math"
)

// Field names reported in InvalidInputError.
const (
	FieldLabel          = "label"
	FieldDistanceKm     = "distance_km"
	FieldOilAddedLiters = "oil_added_liters"
	FieldDaysMonitored  = "days_monitored"
)

// NewPeriodRecord builds a validated PeriodRecord.
//
// Every denominator used by the derived metrics must be finite and strictly
// positive. A failing field is returned as *InvalidInputError.
func NewPeriodRecord(label string, distanceKm, oilAddedLiters float64, daysMonitored int) (PeriodRecord, error) {
	p := PeriodRecord{
		Label:          label,
		DistanceKm:     distanceKm,
		OilAddedLiters: oilAddedLiters,
		DaysMonitored:  daysMonitored,
	}
	if err := p.Validate(); err != nil {
		return PeriodRecord{}, err
	}
	return p, nil
}

// Validate checks that the record can produce finite derived metrics.
func (p PeriodRecord) Validate() error {
	if p.Label == "" {
		return &InvalidInputError{Field: FieldLabel, Reason: "label is required"}
	}
	if err := checkPositive(p.Label, FieldDistanceKm, p.DistanceKm); err != nil {
		return err
	}
	if err := checkPositive(p.Label, FieldOilAddedLiters, p.OilAddedLiters); err != nil {
		return err
	}
	return checkPositive(p.Label, FieldDaysMonitored, float64(p.DaysMonitored))
}

func checkPositive(period, field string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return &InvalidInputError{Period: period, Field: field, Value: v, Reason: "must be finite"}
	case v <= 0:
		return &InvalidInputError{Period: period, Field: field, Value: v, Reason: "must be greater than zero"}
	}
	return nil
}

// DailyDistance returns km driven per monitored day.
func (p PeriodRecord) DailyDistance() float64 {
	return p.DistanceKm / float64(p.DaysMonitored)
}

// ConsumptionRate returns liters of oil per 1000 km.
func (p PeriodRecord) ConsumptionRate() float64 {
	return p.OilAddedLiters * perThousandKm / p.DistanceKm
}

// Efficiency returns km driven per liter of oil.
func (p PeriodRecord) Efficiency() float64 {
	return p.DistanceKm / p.OilAddedLiters
}

// Derive validates the record and computes all derived values.
// It never returns a non-finite value without an error.
func (p PeriodRecord) Derive() (Derived, error) {
	if err := p.Validate(); err != nil {
		return Derived{}, err
	}

	d := Derived{
		DailyDistance:   p.DailyDistance(),
		ConsumptionRate: p.ConsumptionRate(),
		Efficiency:      p.Efficiency(),
	}
	if !isFinite(d.DailyDistance) || !isFinite(d.ConsumptionRate) || !isFinite(d.Efficiency) {
		return Derived{}, ErrCalculationOverflow
	}
	return d, nil
}

// ImprovementPct returns the percentage change from before to after, signed
// so that an improvement in the given direction is positive.
//
// LowerIsBetter: (before - after) / before * 100.
// HigherIsBetter: (after - before) / before * 100.
func ImprovementPct(before, after float64, dir Direction) (float64, error) {
	if !isFinite(before) || !isFinite(after) {
		return 0, ErrCalculationOverflow
	}
	if before == 0 {
		return 0, &InvalidInputError{Field: "baseline", Value: before, Reason: "baseline must be non-zero"}
	}

	var pct float64
	if dir == HigherIsBetter {
		pct = (after - before) / before * percentScale
	} else {
		pct = (before - after) / before * percentScale
	}
	if !isFinite(pct) {
		return 0, ErrCalculationOverflow
	}
	return pct, nil
}

// Compare derives both periods and builds the comparison rows and summary.
//
// Row values carry the precision they are displayed with: consumption to two
// decimals, efficiency to whole km/L, daily distance unrounded. Values too
// small for that precision keep three significant digits instead. The
// improvement summary is computed from those row values so the percentages
// shown next to the rows agree with them.
func Compare(before, after PeriodRecord) (Comparison, error) {
	bd, err := before.Derive()
	if err != nil {
		return Comparison{}, err
	}
	ad, err := after.Derive()
	if err != nil {
		return Comparison{}, err
	}

	rows := []ComparisonRow{
		{
			Metric: MetricOilConsumption,
			Before: RoundRow(bd.ConsumptionRate, ConsumptionRowPrecision),
			After:  RoundRow(ad.ConsumptionRate, ConsumptionRowPrecision),
			Unit:   UnitConsumption,
		},
		{
			Metric: MetricEfficiency,
			Before: RoundRow(bd.Efficiency, EfficiencyRowPrecision),
			After:  RoundRow(ad.Efficiency, EfficiencyRowPrecision),
			Unit:   UnitEfficiency,
		},
		{
			Metric: MetricDailyDistance,
			Before: Round(bd.DailyDistance, fullPrecision),
			After:  Round(ad.DailyDistance, fullPrecision),
			Unit:   UnitDailyDistance,
		},
	}

	consumption, err := ImprovementPct(rows[0].Before, rows[0].After, LowerIsBetter)
	if err != nil {
		return Comparison{}, fmt.Errorf("consumption improvement: %w", err)
	}
	efficiency, err := ImprovementPct(rows[1].Before, rows[1].After, HigherIsBetter)
	if err != nil {
		return Comparison{}, fmt.Errorf("efficiency improvement: %w", err)
	}

	return Comparison{
		Before:        before,
		After:         after,
		BeforeDerived: bd,
		AfterDerived:  ad,
		Rows:          rows,
		Summary: ImprovementSummary{
			ConsumptionImprovementPct: consumption,
			EfficiencyImprovementPct:  efficiency,
		},
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
