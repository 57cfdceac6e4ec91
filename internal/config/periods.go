package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rshade/serviceimpact/internal/metrics"
)

// Labels of the built-in periods.
const (
	DefaultBeforeLabel = "Pre-Service (Oct)"
	DefaultAfterLabel  = "Post-Service (Nov-Dec)"
)

// PeriodConfig is one period as written in YAML.
type PeriodConfig struct {
	Label          string  `yaml:"label"            json:"label"`
	DistanceKm     float64 `yaml:"distance_km"      json:"distance_km"`
	OilAddedLiters float64 `yaml:"oil_added_liters" json:"oil_added_liters"`
	DaysMonitored  int     `yaml:"days_monitored"   json:"days_monitored"`
}

// PeriodsConfig holds the before and after periods.
type PeriodsConfig struct {
	Before PeriodConfig `yaml:"before" json:"before"`
	After  PeriodConfig `yaml:"after"  json:"after"`
}

// DefaultPeriods returns the built-in October / November-December records.
func DefaultPeriods() PeriodsConfig {
	return PeriodsConfig{
		Before: PeriodConfig{
			Label:          DefaultBeforeLabel,
			DistanceKm:     887,
			OilAddedLiters: 2.3,
			DaysMonitored:  22,
		},
		After: PeriodConfig{
			Label:          DefaultAfterLabel,
			DistanceKm:     2013,
			OilAddedLiters: 2.75,
			DaysMonitored:  45,
		},
	}
}

// Record validates the period and converts it to a metrics.PeriodRecord.
func (p PeriodConfig) Record() (metrics.PeriodRecord, error) {
	return metrics.NewPeriodRecord(p.Label, p.DistanceKm, p.OilAddedLiters, p.DaysMonitored)
}

// Records converts both periods. Errors are *metrics.InvalidInputError.
func (p PeriodsConfig) Records() (metrics.PeriodRecord, metrics.PeriodRecord, error) {
	before, err := p.Before.Record()
	if err != nil {
		return metrics.PeriodRecord{}, metrics.PeriodRecord{}, fmt.Errorf("before: %w", err)
	}
	after, err := p.After.Record()
	if err != nil {
		return metrics.PeriodRecord{}, metrics.PeriodRecord{}, fmt.Errorf("after: %w", err)
	}
	return before, after, nil
}

// LoadPeriods reads a standalone periods file with top-level before/after keys.
func LoadPeriods(path string) (PeriodsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PeriodsConfig{}, fmt.Errorf("reading periods %s: %w", path, err)
	}

	var p PeriodsConfig
	if err = yaml.Unmarshal(data, &p); err != nil {
		return PeriodsConfig{}, fmt.Errorf("parsing periods %s: %w", path, err)
	}
	return p, nil
}

// ResolvePeriods picks the periods to compare: an explicit input file, then
// the config's periods section, then the built-in defaults.
func (c *Config) ResolvePeriods(inputPath string) (PeriodsConfig, error) {
	if inputPath != "" {
		return LoadPeriods(inputPath)
	}
	if c != nil && c.Periods != nil {
		return *c.Periods, nil
	}
	return DefaultPeriods(), nil
}
