package errors

import (
	"errors"
	"io/fs"
)

// Exit codes returned by the quickstart binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates a step failed (copy, git init, install).
	ExitGeneralError = 1

	// ExitValidationError indicates invalid arguments or flags.
	ExitValidationError = 2

	// ExitPermissionDenied indicates a permission problem on the filesystem.
	ExitPermissionDenied = 4

	// ExitNotFound indicates the template (or another input) was not found.
	ExitNotFound = 5
)

// ExitError carries an exit code alongside the error.
type ExitError struct {
	// Code is the process exit code.
	Code int

	// Err is the underlying error.
	Err error

	// Printed is true when the command already reported the error to the user.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status"
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrTemplateNotFound), errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrPermission), errors.Is(err, fs.ErrPermission):
		return ExitPermissionDenied
	default:
		return ExitGeneralError
	}
}
