// Package errors provides sentinel and typed errors for the quickstart CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid command input.
	ErrValidation = errors.New("validation error")

	// ErrPermission indicates insufficient permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a file or directory was not found.
	ErrNotFound = errors.New("not found")

	// ErrTemplateNotFound indicates the requested template is missing or unreadable.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrCopy indicates copying template files into the target failed.
	ErrCopy = errors.New("copy failed")

	// ErrGitInit indicates the git repository could not be initialized.
	ErrGitInit = errors.New("git init failed")

	// ErrInstall indicates dependency installation failed.
	ErrInstall = errors.New("install failed")
)

// TemplateNotFoundError is returned when a template name does not resolve to
// a readable directory.
type TemplateNotFoundError struct {
	// Name is the requested template name.
	Name string

	// Path is the directory that was checked (empty if the name was rejected outright).
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *TemplateNotFoundError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid template %q", e.Name)
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid template %q (%s): %v", e.Name, e.Path, e.Err)
	}
	return fmt.Sprintf("invalid template %q (%s)", e.Name, e.Path)
}

func (e *TemplateNotFoundError) Unwrap() error { return e.Err }

// Is matches ErrTemplateNotFound.
func (e *TemplateNotFoundError) Is(target error) bool { return target == ErrTemplateNotFound }

// CopyError is returned when a file operation fails while copying a template.
type CopyError struct {
	// Path is the file or directory being written or read.
	Path string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copying %s: %v", e.Path, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// Is matches ErrCopy.
func (e *CopyError) Is(target error) bool { return target == ErrCopy }

// GitInitError is returned when `git init` cannot be run or exits non-zero.
type GitInitError struct {
	Dir string

	// Stderr is the trimmed error output of the git process, if any.
	Stderr string
	Err    error
}

func (e *GitInitError) Error() string {
	msg := fmt.Sprintf("initializing git repository in %s", e.Dir)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *GitInitError) Unwrap() error { return e.Err }

// Is matches ErrGitInit.
func (e *GitInitError) Is(target error) bool { return target == ErrGitInit }

// InstallError is returned when the package manager fails.
type InstallError struct {
	// Manager is the package manager name (npm, yarn, pnpm).
	Manager string
	Dir     string

	// Output is the tail of the package manager's error output.
	Output string
	Err    error
}

func (e *InstallError) Error() string {
	msg := fmt.Sprintf("%s install in %s", e.Manager, e.Dir)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Output != "" {
		msg += "\n" + e.Output
	}
	return msg
}

func (e *InstallError) Unwrap() error { return e.Err }

// Is matches ErrInstall.
func (e *InstallError) Is(target error) bool { return target == ErrInstall }

// DetailError captures structured, user-facing error information.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file or directory involved (optional).
	Location string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
