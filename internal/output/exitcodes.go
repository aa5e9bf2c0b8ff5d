package output

import "errors"

// Exit codes:
// 0 = Success
// 1 = Failure (bad arguments, rejected operations, unexpected errors)
// 2 = Configuration error (credentials, profiles, environment)
// 3 = Connection error (unreachable instance, failed authentication)
const (
	ExitSuccess         = 0
	ExitUserError       = 1
	ExitConfigError     = 2
	ExitConnectionError = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code       int
	Message    string
	Suggestion string
	Cause      error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// WithSuggestion attaches a one-line hint printed under the error message.
func (e *ExitError) WithSuggestion(suggestion string) *ExitError {
	e.Suggestion = suggestion
	return e
}

// NewUserError creates an error for run-of-the-mill failures (exit code 1).
// Use for: bad arguments, issues that do not exist, rejected API calls.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewConfigError creates an error for broken configuration (exit code 2).
// Use for: missing credentials, unresolvable profiles, invalid registries.
func NewConfigError(message string) *ExitError {
	return &ExitError{
		Code:    ExitConfigError,
		Message: message,
	}
}

// NewConnectionError creates an error for unreachable or unauthenticated
// instances (exit code 3).
func NewConnectionError(message string) *ExitError {
	return &ExitError{
		Code:    ExitConnectionError,
		Message: message,
	}
}

// NewConnectionErrorWithCause creates a connection error wrapping an
// underlying transport failure.
func NewConnectionErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitConnectionError,
		Message: message,
		Cause:   cause,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Default to the generic failure code for untyped errors
	return ExitUserError
}
