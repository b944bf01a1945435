// Package parallel holds small helpers shared by concurrent fan-outs.
package parallel

import "sync"

// ErrorCollector records the first non-nil error reported by any goroutine.
// The zero value is ready to use.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError records err if it is non-nil and no error has been recorded yet.
// It reports whether err became the collected error.
func (c *ErrorCollector) SetError(err error) bool {
	if err == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false
	}
	c.err = err
	return true
}

// Err returns the first recorded error, or nil.
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
