// Package output provides terminal output utilities for the quickstart CLI.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// logger is the package-level logger. Use the helper functions below.
var logger *log.Logger

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
}

// LogConfig controls logger setup.
type LogConfig struct {
	// Verbose enables debug level and caller reporting. It turns timestamps
	// on unless Timestamps says otherwise.
	Verbose bool

	// Timestamps is the explicit timestamp setting (flag or config).
	// nil falls back to Verbose.
	Timestamps *bool
}

// timestamps resolves timestamp display: explicit setting, then Verbose.
func (c LogConfig) timestamps() bool {
	if c.Timestamps != nil {
		return *c.Timestamps
	}
	return c.Verbose
}

// SetupLogging configures the logger from cfg.
func SetupLogging(cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: cfg.timestamps(),
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
}

// StepLogger returns a child logger whose prefix names a task step.
func StepLogger(step string) *log.Logger {
	child := logger.With()
	child.SetPrefix(lipgloss.NewStyle().Foreground(ColorCyan).Render(step))
	return child
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
