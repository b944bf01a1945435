package apperrors

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the escape sequences used when reporting errors.
// A nil provider disables colors.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type noColors struct{}

func (noColors) Red() string    { return "" }
func (noColors) Yellow() string { return "" }
func (noColors) Reset() string  { return "" }

// HandleBatchError writes a human-readable description of a failed batch to
// out and returns the exit code matching the error class.
//
// Parameters:
//   - err: The error that aborted the batch (nil yields ExitSuccess).
//   - duration: How long the batch ran before failing; zero hides the timing.
//   - out: The writer for the report.
//   - colors: The color provider, or nil for plain output.
//
// Returns:
//   - int: The exit code to report to the OS.
func HandleBatchError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColors{}
	}

	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s", duration.Round(time.Millisecond))
	}

	code := ExitCodeFor(err)
	var invalidErr InvalidBirthDateError
	switch {
	case code == ExitErrorTimeout:
		fmt.Fprintf(out, "%sStatus: Timeout%s. The batch did not finish in time%s.\n", colors.Yellow(), colors.Reset(), suffix)
	case code == ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled%s%s.\n", colors.Yellow(), colors.Reset(), suffix)
	case errors.As(err, &invalidErr):
		fmt.Fprintf(out, "%sStatus: Failure%s. Invalid birth date for %s (%q)%s.\n",
			colors.Red(), colors.Reset(), invalidErr.Person, invalidErr.Value, suffix)
	default:
		fmt.Fprintf(out, "%sStatus: Failure%s. %v%s.\n", colors.Red(), colors.Reset(), err, suffix)
	}
	return code
}
