// Package apperrors holds the error values agecalc reports and maps each of
// them to a process exit code. Types that carry a cause unwrap to it, so
// errors.Is and errors.As see through a BatchError or a TimeoutError.
package apperrors
