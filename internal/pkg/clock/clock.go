// Package clock provides time utilities for the application
package clock

import "time"

// Clock provides time functionality
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t
func (c *Real) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Fixed always reports the same instant and a constant elapsed time
type Fixed struct {
	At      time.Time
	Elapsed time.Duration
}

// NewFixed returns a clock stopped at the given time
func NewFixed(at time.Time, elapsed time.Duration) *Fixed {
	return &Fixed{At: at, Elapsed: elapsed}
}

// Now returns the fixed instant
func (c *Fixed) Now() time.Time {
	return c.At
}

// Since returns the configured elapsed time
func (c *Fixed) Since(time.Time) time.Duration {
	return c.Elapsed
}
