package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorRun      = 2   // Indicates a benchmark run was aborted.
	ExitErrorMismatch = 3   // Indicates runs disagreed on the number of primes found.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrLifecycle is the sentinel matched by every LifecycleError.
var ErrLifecycle = errors.New("worker lifecycle violation")

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// LifecycleError reports an operation attempted on a worker handle in a state
// that does not allow it, such as releasing a worker that is still running.
// It is a programming error, not a runtime condition.
type LifecycleError struct {
	// Worker identifies the handle.
	Worker int
	// Op is the attempted operation ("dispatch", "release", "post").
	Op string
	// State is the state the handle was in.
	State string
}

// Error returns a formatted message describing the violation.
func (e LifecycleError) Error() string {
	return fmt.Sprintf("worker %d: cannot %s in state %s", e.Worker, e.Op, e.State)
}

// Is reports a match against ErrLifecycle so callers can use errors.Is.
func (e LifecycleError) Is(target error) bool { return target == ErrLifecycle }

// SpawnError reports that the requested number of workers could not be
// reserved. No worker of the run has been started when it is returned.
type SpawnError struct {
	// Requested is the number of workers the run asked for.
	Requested int
	// Available is the capacity that was free at the time of the request.
	Available int
}

// Error returns a formatted message describing the exhaustion.
func (e SpawnError) Error() string {
	return fmt.Sprintf("cannot spawn %d workers: only %d slots available", e.Requested, e.Available)
}

// WorkerError wraps the failure of a single worker task, including a recovered panic.
type WorkerError struct {
	// Worker identifies the handle that failed.
	Worker int
	// Cause is the underlying error.
	Cause error
}

// Error returns the worker identity followed by the cause.
func (e WorkerError) Error() string {
	return fmt.Sprintf("worker %d failed: %v", e.Worker, e.Cause)
}

// Unwrap returns the original cause.
func (e WorkerError) Unwrap() error { return e.Cause }

// RunError encapsulates the error that aborted a benchmark run while
// preserving the original cause.
type RunError struct {
	// Label is the human-readable run label (worker count or "(Main Thread)").
	Label string
	// Cause is the underlying error that aborted the run.
	Cause error
}

// Error returns a message naming the run and its cause.
func (e RunError) Error() string {
	return fmt.Sprintf("run %s aborted: %v", e.Label, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e RunError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
