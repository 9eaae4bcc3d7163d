// Package logging provides config-driven categorized logging for utilitybelt.
// Each category gets a named zap logger. Logging is controlled by debug_mode in
// the belt config - when false, every category logger is a no-op.
package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/subsystem
type Category string

const (
	CategoryBoot     Category = "boot"     // Config load, initialization
	CategoryClassify Category = "classify" // Kind classification
	CategoryClone    Category = "clone"    // Structural cloning
	CategoryPattern  Category = "pattern"  // Named pattern registry
	CategoryCalendar Category = "calendar" // Week number computation
	CategoryCLI      Category = "cli"      // Command line driver
)

// Options mirrors the relevant parts of config.LoggingConfig
// to avoid circular imports
type Options struct {
	DebugMode  bool
	Categories map[string]bool
	Level      string
	JSONFormat bool
	OutputPath string // file to append to; empty means stderr
}

// Logger wraps a sugared zap logger bound to one category.
// A Logger with a nil sugar is a no-op.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	base      = zap.NewNop()
	options   Options
	configMu  sync.RWMutex
)

// ParseLevel maps a config level string to a zap level. Unknown strings map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Initialize builds the base zap logger from opts.
// Should be called once at startup; later calls replace the previous base.
func Initialize(opts Options) error {
	if !opts.DebugMode {
		install(zap.NewNop(), opts)
		return nil
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(opts.Level))
	cfg.Encoding = "console"
	if opts.JSONFormat {
		cfg.Encoding = "json"
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if opts.OutputPath != "" {
		cfg.OutputPaths = []string{opts.OutputPath}
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	install(l, opts)

	boot := Get(CategoryBoot)
	boot.Info("=== utilitybelt logging initialized ===")
	boot.Info("Log level: %s", cfg.Level.String())
	if len(opts.Categories) > 0 {
		enabledCount := 0
		for cat, enabled := range opts.Categories {
			if enabled {
				enabledCount++
			}
			boot.Debug("Category '%s': %v", cat, enabled)
		}
		boot.Info("Enabled categories: %d/%d", enabledCount, len(opts.Categories))
	} else {
		boot.Info("All categories enabled (no category filter)")
	}
	return nil
}

// SetBase installs an already-built zap logger. Tests use it with a
// zaptest/observer core. Debug mode is forced on.
func SetBase(l *zap.Logger, categories map[string]bool) {
	install(l, Options{DebugMode: true, Categories: categories})
}

// Reset restores the no-op production state.
func Reset() {
	install(zap.NewNop(), Options{})
}

func install(l *zap.Logger, opts Options) {
	configMu.Lock()
	old := base
	base = l
	options = opts
	configMu.Unlock()

	loggersMu.Lock()
	loggers = make(map[Category]*Logger)
	loggersMu.Unlock()

	if old != nil && old != l {
		_ = old.Sync()
	}
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	configMu.RLock()
	defer configMu.RUnlock()
	return options.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	configMu.RLock()
	defer configMu.RUnlock()

	if !options.DebugMode {
		return false
	}
	if options.Categories == nil {
		return true // All enabled by default in debug mode
	}
	enabled, exists := options.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{category: category}
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l
	}

	configMu.RLock()
	named := base.Named(string(category))
	configMu.RUnlock()

	l := &Logger{category: category, sugar: named.Sugar()}
	loggers[category] = l
	return l
}

// Category returns the category the logger writes to.
func (l *Logger) Category() Category {
	return l.category
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Errorf(format, args...)
}

// WithContext returns a context logger for structured logging
func (l *Logger) WithContext(ctx map[string]interface{}) *ContextLogger {
	fields := make([]interface{}, 0, len(ctx)*2)
	for k, v := range ctx {
		fields = append(fields, k, v)
	}
	if l.sugar == nil {
		return &ContextLogger{}
	}
	return &ContextLogger{sugar: l.sugar.With(fields...)}
}

// ContextLogger provides structured logging with key-value context
type ContextLogger struct {
	sugar *zap.SugaredLogger
}

func (c *ContextLogger) Debug(format string, args ...interface{}) {
	if c.sugar == nil {
		return
	}
	c.sugar.Debugf(format, args...)
}

func (c *ContextLogger) Info(format string, args ...interface{}) {
	if c.sugar == nil {
		return
	}
	c.sugar.Infof(format, args...)
}

func (c *ContextLogger) Warn(format string, args ...interface{}) {
	if c.sugar == nil {
		return
	}
	c.sugar.Warnf(format, args...)
}

func (c *ContextLogger) Error(format string, args ...interface{}) {
	if c.sugar == nil {
		return
	}
	c.sugar.Errorf(format, args...)
}

// Sync flushes the base logger (call at shutdown)
func Sync() {
	configMu.RLock()
	l := base
	configMu.RUnlock()
	_ = l.Sync()
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// These are no-ops if the category is disabled
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Info(format, args...)
}

// BootWarn logs warning to the boot category
func BootWarn(format string, args ...interface{}) {
	Get(CategoryBoot).Warn(format, args...)
}

// ClassifyDebug logs debug to the classify category
func ClassifyDebug(format string, args ...interface{}) {
	Get(CategoryClassify).Debug(format, args...)
}

// ClassifyWarn logs warning to the classify category
func ClassifyWarn(format string, args ...interface{}) {
	Get(CategoryClassify).Warn(format, args...)
}

// CloneDebug logs debug to the clone category
func CloneDebug(format string, args ...interface{}) {
	Get(CategoryClone).Debug(format, args...)
}

// CloneWarn logs warning to the clone category
func CloneWarn(format string, args ...interface{}) {
	Get(CategoryClone).Warn(format, args...)
}

// PatternWarn logs warning to the pattern category
func PatternWarn(format string, args ...interface{}) {
	Get(CategoryPattern).Warn(format, args...)
}

// CalendarDebug logs debug to the calendar category
func CalendarDebug(format string, args ...interface{}) {
	Get(CategoryCalendar).Debug(format, args...)
}

// CLI logs to the cli category
func CLI(format string, args ...interface{}) {
	Get(CategoryCLI).Info(format, args...)
}

// CLIDebug logs debug to the cli category
func CLIDebug(format string, args ...interface{}) {
	Get(CategoryCLI).Debug(format, args...)
}
