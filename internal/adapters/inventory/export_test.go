package inventory

import "time"

// NewOpenerWithClock creates an Opener with a fixed clock.
func NewOpenerWithClock(now func() time.Time) *Opener {
	return &Opener{now: now}
}
