package schedule

import (
	"fmt"
	"time"
)

// Zone is the timezone capability the planner needs. Implementations decide
// which timezone database backs them.
type Zone interface {
	// Now returns the current instant expressed in the zone.
	Now() time.Time
	// In expresses t in the zone.
	In(t time.Time) time.Time
	// Date maps a wall-clock date and time in the zone to an instant. ok is
	// false when that wall-clock time does not exist in the zone.
	Date(year int, month time.Month, day, hour, min, sec int) (t time.Time, ok bool)
}

// Resolver turns a target time of day into the duration left until it.
type Resolver struct {
	zone Zone
}

func NewResolver(zone Zone) Resolver {
	return Resolver{zone: zone}
}

// Resolve combines the calendar date of now, as seen in the resolver's zone,
// with target. It returns the time left and the end instant.
func (r Resolver) Resolve(now time.Time, target TargetTime) (time.Duration, time.Time, error) {
	if !validTimeOfDay(target) {
		return 0, time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTimeOfDay, target)
	}

	now = r.zone.In(now)
	year, month, day := now.Date()
	end, ok := r.zone.Date(year, month, day, target.Hour, target.Minute, target.Second)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("%w: %s does not exist on %04d-%02d-%02d",
			ErrInvalidTimeOfDay, target, year, month, day)
	}

	if !end.After(now) {
		return 0, time.Time{}, fmt.Errorf("%w: %s is not after %s",
			ErrTargetNotInFuture, end.Format(time.RFC3339), now.Format(time.RFC3339))
	}
	return end.Sub(now), end, nil
}

func validTimeOfDay(t TargetTime) bool {
	return t.Hour >= 0 && t.Hour < 24 &&
		t.Minute >= 0 && t.Minute < 60 &&
		t.Second >= 0 && t.Second < 60
}
