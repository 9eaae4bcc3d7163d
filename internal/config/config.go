package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"utilitybelt/internal/logging"
	"utilitybelt/pkg/belt"
)

// Config holds all utilitybelt configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Structural cloning
	Clone CloneConfig `yaml:"clone"`

	// Extra named patterns (name -> regular expression) layered over the
	// built-in registry.
	Patterns map[string]string `yaml:"patterns,omitempty"`
}

// CloneConfig configures the default Cloner.
type CloneConfig struct {
	// Record keys copied by reference instead of recursively.
	ByReferenceKeys []string `yaml:"by_reference_keys,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "utilitybelt",
		Version: "1.0.0",
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			DebugMode: false,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if !slices.Contains(ValidLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	if !slices.Contains(ValidFormats, c.Logging.Format) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidFormats)
	}
	for _, k := range c.Clone.ByReferenceKeys {
		if k == "" {
			return fmt.Errorf("clone.by_reference_keys: empty key name")
		}
	}
	if _, err := belt.NewRegistry(c.Patterns); err != nil {
		return fmt.Errorf("patterns: %w", err)
	}
	return nil
}

// Apply validates the configuration, initializes logging, installs the
// by-reference keys on the default Cloner and returns the pattern registry
// described by Patterns.
func (c *Config) Apply() (*belt.Registry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := logging.Initialize(c.Logging.Options()); err != nil {
		return nil, err
	}

	belt.SetByReferenceKeys(c.Clone.ByReferenceKeys...)

	registry, err := belt.NewRegistry(c.Patterns)
	if err != nil {
		return nil, fmt.Errorf("patterns: %w", err)
	}
	for _, name := range belt.DefaultRegistry().Names() {
		if _, ok := c.Patterns[name]; ok {
			logging.BootWarn("Pattern %q overrides the built-in definition", name)
		}
	}
	logging.Boot("Config %s %s applied: %d by-reference keys, patterns %v",
		c.Name, c.Version, len(c.Clone.ByReferenceKeys), registry.Names())
	return registry, nil
}
