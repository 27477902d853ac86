// Package clock provides an injectable time source so that "today" in the
// room status derivation is deterministic under test.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns a Clock backed by the wall clock, in UTC.
func System() Clock { return systemClock{} }

// Fixed is a Clock frozen at a single instant.
type Fixed struct {
	T time.Time
}

// Now returns the frozen instant.
func (f Fixed) Now() time.Time { return f.T }

// UTCDate truncates t to midnight UTC. All stay boundaries and the "today"
// used by the synchronizer are UTC dates.
func UTCDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
