package format

import "time"

// FormatExecutionDuration renders how long a strategy or a lookup took, with
// precision following magnitude ("250µs", "12.35ms", "2.004s"). Anything
// under a microsecond, zero included, is below timer granularity and prints
// as "< 1µs".
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return "< 1µs"
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(10 * time.Microsecond).String()
	default:
		return d.Round(time.Millisecond).String()
	}
}
