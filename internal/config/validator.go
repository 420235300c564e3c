package config

import (
	"fmt"
	"strings"

	"github.com/quickstart-dev/quickstart/internal/install"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks a loaded configuration. It returns nil or ValidationErrors.
// templatesDir is not checked here: flags can override it, and the effective
// root is checked when templates are resolved.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	var errs ValidationErrors

	if !install.IsValidManager(cfg.PackageManager) {
		errs = append(errs, ValidationError{
			Field:   "packageManager",
			Message: fmt.Sprintf("unsupported value %q (valid: %s)", cfg.PackageManager, strings.Join(install.Managers(), ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
