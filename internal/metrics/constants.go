package metrics

// Unit labels attached to comparison rows and display values.
const (
	// UnitConsumption is liters of oil added per 1000 km driven.
	UnitConsumption = "L/1000km"

	// UnitEfficiency is km driven per liter of oil added.
	UnitEfficiency = "km/L"

	// UnitDailyDistance is average km driven per monitored day.
	UnitDailyDistance = "km/day"

	// UnitKm is a plain distance in kilometers.
	UnitKm = "km"

	// UnitLiters is a plain volume in liters.
	UnitLiters = "L"

	// UnitDays is a monitoring duration.
	UnitDays = "days"
)

// Metric names, in the order comparison rows are produced.
const (
	MetricOilConsumption = "Oil Consumption"
	MetricEfficiency     = "Efficiency"
	MetricDailyDistance  = "Daily Distance"
)

// Precision constants control rounding of row values and display strings.
const (
	// ConsumptionRowPrecision is the minimum number of decimals consumption
	// rows are recorded at. Improvement percentages are computed from row
	// values, so this matters.
	ConsumptionRowPrecision = 2

	// EfficiencyRowPrecision is the minimum number of decimals efficiency
	// rows are recorded at.
	EfficiencyRowPrecision = 0

	// RowSignificantDigits is the number of significant digits a row value
	// keeps when its minimum precision would cut it shorter.
	RowSignificantDigits = 3

	// RatioDisplayPrecision is used for ratios and percentages on screen.
	RatioDisplayPrecision = 1

	// EfficiencyDisplayPrecision is used for km/L on screen.
	EfficiencyDisplayPrecision = 0

	// TooltipPrecision is used for chart tooltip values.
	TooltipPrecision = 1

	// fullPrecision marks a row value that is not rounded.
	fullPrecision = -1
)

// perThousandKm scales liters per km to liters per 1000 km.
const perThousandKm = 1000.0

// percentScale converts a fraction to a percentage.
const percentScale = 100.0
