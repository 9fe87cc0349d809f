// Package clock lets pause bookkeeping and play records run on a fake time source in tests.
package clock

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/podplay/internal/common/clock Clock

import "time"

// Clock is a source of wall time
type Clock interface {
	Now() time.Time

	// Since is the time elapsed since t
	Since(t time.Time) time.Duration
}

// System reads the operating system clock
type System struct{}

// New returns the system clock
func New() *System {
	return &System{}
}

func (System) Now() time.Time {
	return time.Now()
}

func (System) Since(t time.Time) time.Duration {
	return time.Since(t)
}
