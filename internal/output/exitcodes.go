// Package output provides structured output and error handling for the shipshape CLI.
package output

import "errors"

// Exit codes:
// 0 = Clean (all checks passed)
// 1 = Findings (one or more checks reported violations)
// 2 = User error (bad args, bad config, unknown check)
// 3 = System error (git failed, jupytext failed, I/O error)
const (
	ExitClean       = 0
	ExitFindings    = 1
	ExitUserError   = 2
	ExitSystemError = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewFindingsError creates an error signalling that checks found violations
// (exit code 1). The message summarizes the findings.
func NewFindingsError(message string) *ExitError {
	return &ExitError{
		Code:    ExitFindings,
		Message: message,
	}
}

// NewUserError creates an error for user-caused issues (exit code 2).
// Use for: bad arguments, malformed config, unknown check names.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewSystemError creates an error for system failures (exit code 3).
// Use for: git or jupytext invocation failures, I/O errors.
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitClean for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitClean
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Default to user error for untyped errors
	return ExitUserError
}
