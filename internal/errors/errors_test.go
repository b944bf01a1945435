package apperrors

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	err := NewConfigError("unknown strategy %q (want all, %s)", "promise", "await, callback, future")
	if got, want := err.Error(), `unknown strategy "promise" (want all, await, callback, future)`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	var configErr ConfigError
	if !errors.As(err, &configErr) {
		t.Errorf("NewConfigError should build a ConfigError, got %T", err)
	}
}

func TestInvalidBirthDateError(t *testing.T) {
	t.Parallel()
	err := InvalidBirthDateError{Person: "Ana", Value: "not-a-date", Cause: ErrInvalidDate}

	if got, want := err.Error(), `invalid birth date for Ana: "not-a-date"`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !errors.Is(err, ErrInvalidDate) {
		t.Error("errors.Is should find ErrInvalidDate in the chain")
	}

	wrapped := BatchError{Strategy: "future", Cause: err}
	var invalidErr InvalidBirthDateError
	if !errors.As(wrapped, &invalidErr) {
		t.Fatal("errors.As should find InvalidBirthDateError through BatchError")
	}
	if invalidErr.Person != "Ana" {
		t.Errorf("expected Person %q, got %q", "Ana", invalidErr.Person)
	}
	if !strings.HasPrefix(wrapped.Error(), "future: ") {
		t.Errorf("BatchError should prefix the strategy, got %q", wrapped.Error())
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	cause := BatchError{Strategy: "await", Cause: context.DeadlineExceeded}
	err := TimeoutError{Operation: "await", Limit: 500 * time.Millisecond, Cause: cause}

	if got, want := err.Error(), `operation "await" timed out after 500ms`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("errors.Is should find the deadline through TimeoutError")
	}
	var batchErr BatchError
	if !errors.As(err, &batchErr) || batchErr.Strategy != "await" {
		t.Errorf("errors.As should reach the BatchError, got %v", batchErr)
	}
	if (TimeoutError{Operation: "future", Limit: time.Second}).Unwrap() != nil {
		t.Error("a TimeoutError without a cause should unwrap to nil")
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := ValidationError{Field: "people[1].name", Message: "name is required"}
	if got, want := err.Error(), `validation error for "people[1].name": name is required`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	wrapped := WrapError(err, "cannot load %s", "people.yaml")
	var validationErr ValidationError
	if !errors.As(wrapped, &validationErr) || validationErr.Field != "people[1].name" {
		t.Errorf("errors.As should find ValidationError through WrapError, got %v", wrapped)
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "cannot load %s", "people.yaml") != nil {
		t.Error("WrapError(nil, ...) should return nil")
	}

	err := WrapError(fs.ErrNotExist, "cannot load %s", "people.yaml")
	if got, want := err.Error(), "cannot load people.yaml: file does not exist"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("WrapError should keep the cause in the chain")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline", context.DeadlineExceeded, true},
		{"deadline inside a batch", BatchError{Strategy: "callback", Cause: context.DeadlineExceeded}, true},
		{"invalid birth date", InvalidBirthDateError{Person: "David", Cause: ErrInvalidDate}, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.want {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"deadline", BatchError{Strategy: "await", Cause: context.DeadlineExceeded}, ExitErrorTimeout},
		{"timeout error", TimeoutError{Operation: "batch", Limit: time.Second}, ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"invalid date", BatchError{Strategy: "callback", Cause: InvalidBirthDateError{Person: "X"}}, ExitErrorInvalidInput},
		{"invalid roster entry", WrapError(ValidationError{Field: "people[0].name", Message: "name is required"}, "cannot load roster"), ExitErrorInvalidInput},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleBatchError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		wantCode int
		contains string
	}{
		{"nil error", nil, ExitSuccess, ""},
		{"invalid birth date", InvalidBirthDateError{Person: "David", Value: "2015-13-40"}, ExitErrorInvalidInput, "Invalid birth date for David"},
		{"timeout", TimeoutError{Operation: "future", Limit: time.Second, Cause: context.DeadlineExceeded}, ExitErrorTimeout, "Timeout"},
		{"canceled", context.Canceled, ExitErrorCanceled, "Canceled"},
		{"generic", errors.New("disk full"), ExitErrorGeneric, "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleBatchError(tt.err, 250*time.Millisecond, &buf, nil)
			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d", tt.wantCode, code)
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output should contain %q, got %q", tt.contains, buf.String())
			}
		})
	}
}

func TestExitCodesAreDistinct(t *testing.T) {
	t.Parallel()
	codes := []int{ExitSuccess, ExitErrorGeneric, ExitErrorTimeout, ExitErrorMismatch,
		ExitErrorConfig, ExitErrorInvalidInput, ExitErrorCanceled}
	seen := make(map[int]bool, len(codes))
	for _, c := range codes {
		if seen[c] {
			t.Errorf("exit code %d is used twice", c)
		}
		seen[c] = true
	}
	if ExitSuccess != 0 || ExitErrorCanceled != 130 {
		t.Error("success must be 0 and cancellation 130 (128 + SIGINT)")
	}
}
