package shared

import "time"

// Clock stamps news entries and turn runs, so tests can pin wall time.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the actual system time
type RealClock struct{}

// Now returns the current system time in UTC
func (r *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return &RealClock{}
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (f *FixedClock) Now() time.Time {
	return f.At
}

// NewFixedClock creates a FixedClock
func NewFixedClock(at time.Time) *FixedClock {
	return &FixedClock{At: at}
}
