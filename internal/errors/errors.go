package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Exit codes returned by agecalc.
const (
	ExitSuccess           = 0   // every selected strategy agreed, or at least one succeeded
	ExitErrorGeneric      = 1   // anything not classified below
	ExitErrorTimeout      = 2   // the --timeout budget ran out
	ExitErrorMismatch     = 3   // successful strategies computed different ages
	ExitErrorConfig       = 4   // bad flag or environment value
	ExitErrorInvalidInput = 5   // unparsable birth date or malformed roster
	ExitErrorCanceled     = 130 // interrupted by SIGINT or SIGTERM
)

// ErrInvalidDate is the sentinel returned when a raw birth date cannot be
// parsed into a calendar date.
var ErrInvalidDate = errors.New("invalid date")

// ConfigError is a flag or AGECALC_* value agecalc cannot run with.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError the way fmt.Sprintf would.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// InvalidBirthDateError reports a person whose birth date could not be turned
// into a calendar date. It is the only domain failure of an age batch.
type InvalidBirthDateError struct {
	// Person is the name of the offending person.
	Person string
	// Value is the raw birth date as supplied.
	Value string
	// Cause is the underlying parse failure, if any.
	Cause error
}

// Error returns a message naming the offending person.
func (e InvalidBirthDateError) Error() string {
	return fmt.Sprintf("invalid birth date for %s: %q", e.Person, e.Value)
}

// Unwrap returns the underlying parse failure.
func (e InvalidBirthDateError) Unwrap() error { return e.Cause }

// BatchError ties a failure to the strategy that produced it.
type BatchError struct {
	// Strategy is the name of the batch strategy that failed.
	Strategy string
	// Cause is the underlying error that aborted the batch.
	Cause error
}

// Error returns the strategy name followed by the cause message.
func (e BatchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Strategy, e.Cause)
}

func (e BatchError) Unwrap() error { return e.Cause }

// TimeoutError reports a strategy that ran past the --timeout budget.
type TimeoutError struct {
	// Operation is the strategy that timed out.
	Operation string
	// Limit is the configured budget.
	Limit time.Duration
	// Cause is the context error observed by the batch, if any.
	Cause error
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap returns the underlying context error.
func (e TimeoutError) Unwrap() error { return e.Cause }

// ValidationError reports a malformed roster entry, such as a person
// without a name.
type ValidationError struct {
	// Field locates the offending value, e.g. "people[2].name".
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError prefixes err with a formatted context message and keeps err in
// the chain. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from cancellation or a deadline
// rather than from a lookup itself.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code that best describes it.
// A nil error maps to ExitSuccess.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		configErr     ConfigError
		invalidErr    InvalidBirthDateError
		validationErr ValidationError
		timeoutErr    TimeoutError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr):
		return ExitErrorConfig
	case errors.As(err, &invalidErr), errors.As(err, &validationErr):
		return ExitErrorInvalidInput
	default:
		return ExitErrorGeneric
	}
}
