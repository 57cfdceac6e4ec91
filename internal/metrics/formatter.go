package metrics

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware printer for thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Round rounds v to the given number of decimals. A negative precision
// returns v unchanged.
func Round(v float64, precision int) float64 {
	if precision < 0 {
		return v
	}
	const base = 10
	multiplier := math.Pow(base, float64(precision))
	return math.Round(v*multiplier) / multiplier
}

// RoundRow rounds a row value to at least minPrecision decimals, keeping
// RowSignificantDigits significant digits for small magnitudes so that a
// positive value never rounds to zero.
// Example: RoundRow(2.593, 2) returns 2.59; RoundRow(0.003333, 2) returns 0.00333.
func RoundRow(v float64, minPrecision int) float64 {
	if minPrecision < 0 || v == 0 || !isFinite(v) {
		return Round(v, minPrecision)
	}
	magnitude := int(math.Floor(math.Log10(math.Abs(v))))
	precision := max(minPrecision, RowSignificantDigits-1-magnitude)
	return Round(v, precision)
}

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(2013) returns "2,013".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatValue formats v at the given precision with thousand separators.
// Example: FormatValue(1234.567, 1) returns "1,234.6".
func FormatValue(v float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	rounded := Round(v, precision)
	if rounded == 0 {
		// Avoid "-0.0".
		rounded = 0
	}

	formatted := strconv.FormatFloat(rounded, 'f', precision, 64)
	intPart, fracPart, hasFrac := strings.Cut(formatted, ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return formatted
	}
	grouped := FormatNumber(n)
	if n == 0 && strings.HasPrefix(intPart, "-") {
		grouped = "-" + grouped
	}
	if !hasFrac {
		return grouped
	}
	return grouped + "." + fracPart
}

// FormatPercent formats a percentage at one decimal with a trailing "%".
// Example: FormatPercent(89.637) returns "89.6%".
func FormatPercent(pct float64) string {
	return FormatValue(pct, RatioDisplayPrecision) + "%"
}

// FormatWithUnit joins a formatted value and its unit.
// Example: FormatWithUnit(40.318, 1, "km/day") returns "40.3 km/day".
func FormatWithUnit(v float64, precision int, unit string) string {
	if unit == "" {
		return FormatValue(v, precision)
	}
	return FormatValue(v, precision) + " " + unit
}

// PrecisionFor returns the display precision used for a metric's values.
// Efficiency is shown in whole km/L; everything else at one decimal.
func PrecisionFor(metric string) int {
	if metric == MetricEfficiency {
		return EfficiencyDisplayPrecision
	}
	return RatioDisplayPrecision
}

// UnitFor returns the unit of a known metric, or "" for unknown names.
func UnitFor(metric string) string {
	switch metric {
	case MetricOilConsumption:
		return UnitConsumption
	case MetricEfficiency:
		return UnitEfficiency
	case MetricDailyDistance:
		return UnitDailyDistance
	default:
		return ""
	}
}
