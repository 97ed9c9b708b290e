// Package clock abstracts the wall clock so event timings can be tested.
package clock

import (
	"time"
)

// Clock supplies the time Editor events are stamped with.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
