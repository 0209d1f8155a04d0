package clock

import "time"

// Clocker is the time source used by business logic.
type Clocker interface {
	Now() time.Time
}

// SystemClock reads the real system time.
type SystemClock struct{}

// New returns the production clock.
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current system time.
func (*SystemClock) Now() time.Time {
	return time.Now()
}
