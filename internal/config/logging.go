package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/serviceimpact/internal/logging"
)

// LoggingConfig is the logging section of the config file.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// Validate checks the level and format.
func (l LoggingConfig) Validate() error {
	if l.Level != "" {
		if _, err := zerolog.ParseLevel(l.Level); err != nil {
			return fmt.Errorf("logging.level: %w", err)
		}
	}
	switch l.Format {
	case "", logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", l.Format)
	}
	return nil
}

// ToLoggingConfig converts the file section into a logging.Config.
// A non-empty File switches output to the file.
func (l LoggingConfig) ToLoggingConfig() logging.Config {
	out := logging.Config{
		Level:  l.Level,
		Format: l.Format,
		Output: logging.OutputStderr,
	}
	if l.File != "" {
		out.Output = logging.OutputFile
		out.File = l.File
	}
	return out
}
