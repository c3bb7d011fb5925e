package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess        = 0   // All subsystems reported ready.
	ExitErrorGeneric   = 1   // Indicates a generic error.
	ExitErrorTimeout   = 2   // The readiness deadline elapsed.
	ExitErrorSubsystem = 3   // A subsystem reported an initialization failure.
	ExitErrorConfig    = 4   // Indicates a configuration error.
	ExitErrorCanceled  = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

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
//   - format: The format string for the error message.
//   - a: The arguments for the format string.
//
// Returns:
//   - error: A ConfigError holding the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// SubsystemError reports that a single subsystem failed to initialize. The
// subsystem's own error is kept verbatim as Cause.
type SubsystemError struct {
	// Subsystem is the name the failing subsystem reported.
	Subsystem string
	// Cause is the error raised by the subsystem.
	Cause error
}

// Error returns a message naming the subsystem and its error. A cause with an
// empty message is still a failure and is rendered as such.
func (e SubsystemError) Error() string {
	if e.Cause == nil || e.Cause.Error() == "" {
		return fmt.Sprintf("subsystem %q failed (no message)", e.Subsystem)
	}
	return fmt.Sprintf("subsystem %q failed: %s", e.Subsystem, e.Cause.Error())
}

// Unwrap returns the subsystem's original error.
func (e SubsystemError) Unwrap() error { return e.Cause }

// TimeoutError represents an operation that did not finish before its
// deadline. Completed lists the parts that did finish, in completion order.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
	// Completed holds the names of the units that finished before the deadline.
	Completed []string
}

// Error returns a formatted message describing the timeout and the partial
// progress made before it.
func (e TimeoutError) Error() string {
	msg := fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
	if len(e.Completed) == 0 {
		return msg + "; nothing completed"
	}
	return msg + "; completed: " + strings.Join(e.Completed, " / ")
}

// Is reports context.DeadlineExceeded as matching, so callers can treat a
// readiness timeout like any other deadline.
func (e TimeoutError) Is(target error) bool {
	return target == context.DeadlineExceeded
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

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap. May be nil.
//   - format: The format string for the context message.
//   - args: The arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if err wraps context.Canceled or context.DeadlineExceeded.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit status. Subsystem failures and
// timeouts are checked before the generic context check so that a
// TimeoutError is not reported as a cancellation.
//
// Parameters:
//   - err: The error returned by the run, or nil.
//
// Returns:
//   - int: One of the Exit* constants.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var subErr SubsystemError
	if errors.As(err, &subErr) {
		return ExitErrorSubsystem
	}
	var timeoutErr TimeoutError
	if errors.As(err, &timeoutErr) {
		return ExitErrorTimeout
	}
	var cfgErr ConfigError
	var valErr ValidationError
	if errors.As(err, &cfgErr) || errors.As(err, &valErr) {
		return ExitErrorConfig
	}
	if errors.Is(err, context.Canceled) {
		return ExitErrorCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ExitErrorTimeout
	}
	return ExitErrorGeneric
}
