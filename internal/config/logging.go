package config

import "utilitybelt/internal/logging"

// ValidLevels are the accepted logging.level values.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// ValidFormats are the accepted logging.format values.
var ValidFormats = []string{"json", "text"}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level,omitempty"`           // debug, info, warn, error
	Format    string `yaml:"format" json:"format,omitempty"`         // json, text
	DebugMode bool   `yaml:"debug_mode" json:"debug_mode,omitempty"` // Master toggle - false = no logging (production)
	File      string `yaml:"file,omitempty" json:"file,omitempty"`   // Log file; empty = stderr

	// Per-category toggles
	Categories map[string]bool `yaml:"categories,omitempty" json:"categories,omitempty"`
}

// Options converts the config into logging.Options.
func (c *LoggingConfig) Options() logging.Options {
	return logging.Options{
		DebugMode:  c.DebugMode,
		Categories: c.Categories,
		Level:      c.Level,
		JSONFormat: c.Format == "json",
		OutputPath: c.File,
	}
}
