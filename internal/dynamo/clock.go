package dynamo

import "time"

// Clock is the time source used when a tick derives its dt from wall
// time. It must be monotonic and non-decreasing.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock. time.Now carries a monotonic
// reading, so differences are rollback-free on a healthy host.
func SystemClock() Clock { return systemClock{} }

// ManualClock advances only when told to, for deterministic tests.
type ManualClock struct {
	t time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{t: start}
}

func (c *ManualClock) Now() time.Time { return c.t }

// Advance moves the clock by d. Negative d simulates a rollback.
func (c *ManualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
