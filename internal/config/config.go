// Package config loads serviceimpact configuration and period input files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/serviceimpact/internal/report"
)

// CurrentSchemaVersion is written by `config init`.
const CurrentSchemaVersion = "1.0.0"

// supportedSchemaRange is the semver constraint accepted for schema_version.
const supportedSchemaRange = ">= 1.0.0, < 2.0.0"

// DefaultWidth is the report width when the terminal size is unknown.
const DefaultWidth = 72

// Environment variables that override file settings.
const (
	EnvConfigPath = "SERVICEIMPACT_CONFIG"
	EnvLogLevel   = "SERVICEIMPACT_LOG_LEVEL"
	EnvLogFormat  = "SERVICEIMPACT_LOG_FORMAT"
	EnvOutput     = "SERVICEIMPACT_OUTPUT"
)

// Configuration errors.
var (
	ErrUnsupportedSchema = errors.New("unsupported schema_version")
	ErrInvalidFormat     = errors.New("invalid output.default_format")
	ErrInvalidWidth      = errors.New("output width must be >= 0")
)

// Config is the top-level configuration file.
type Config struct {
	SchemaVersion string         `yaml:"schema_version"    json:"schema_version"`
	Output        OutputConfig   `yaml:"output"            json:"output"`
	Logging       LoggingConfig  `yaml:"logging"           json:"logging"`
	Periods       *PeriodsConfig `yaml:"periods,omitempty" json:"periods,omitempty"`
}

// OutputConfig controls report rendering defaults.
type OutputConfig struct {
	// DefaultFormat is one of table, plain, json, ndjson, markdown.
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	// Width is the report width in columns. 0 means detect from the terminal.
	Width int `yaml:"width,omitempty" json:"width,omitempty"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		SchemaVersion: CurrentSchemaVersion,
		Output: OutputConfig{
			DefaultFormat: string(report.FormatTable),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns ~/.serviceimpact/config.yaml, or "" if the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".serviceimpact", "config.yaml")
}

// ResolvePath picks the config path: flag value, then SERVICEIMPACT_CONFIG,
// then DefaultPath.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	return DefaultPath()
}

// Load reads the YAML file at path on top of the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := New()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Defaults only.
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err = yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// ApplyEnv overlays environment variables on the config.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvOutput); ok && v != "" {
		c.Output.DefaultFormat = v
	}
}

// Validate checks the schema version, output, logging and any embedded periods.
func (c *Config) Validate() error {
	if err := ValidateSchemaVersion(c.SchemaVersion); err != nil {
		return err
	}
	if _, err := report.ParseFormat(c.Output.DefaultFormat); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	if c.Output.Width < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWidth, c.Output.Width)
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if c.Periods != nil {
		if _, _, err := c.Periods.Records(); err != nil {
			return fmt.Errorf("periods: %w", err)
		}
	}
	return nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// ValidateSchemaVersion accepts an empty version (treated as current) or any
// 1.x semantic version.
func ValidateSchemaVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, version, err)
	}
	constraint, err := semver.NewConstraint(supportedSchemaRange)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported %s)", ErrUnsupportedSchema, v, supportedSchemaRange)
	}
	return nil
}
