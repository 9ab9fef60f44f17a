package engine

import "time"

// Clock supplies order timestamps. The book truncates to the minute, so the
// pair (timestamp, sequence) is the arrival tie-break, not a schedule.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
func SystemClock() Clock { return systemClock{} }
