// Package clock provides schedule.Zone implementations backed by the Go time
// zone database.
package clock

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// DefaultZone is used when no zone is configured.
const DefaultZone = "Europe/London"

// Location reads the current time in a fixed time zone.
type Location struct {
	loc *time.Location
	now func() time.Time
}

// Load resolves an IANA zone name. An empty name means the host's local zone.
func Load(name string) (*Location, error) {
	if name == "" {
		return New(time.Local), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load zone %q: %w", name, err)
	}
	return New(loc), nil
}

func New(loc *time.Location) *Location {
	return &Location{loc: loc, now: time.Now}
}

// Fixed returns a Location whose Now always reports t.
func Fixed(loc *time.Location, t time.Time) *Location {
	return &Location{loc: loc, now: func() time.Time { return t }}
}

func (l *Location) Name() string {
	return l.loc.String()
}

func (l *Location) Location() *time.Location {
	return l.loc
}

func (l *Location) Now() time.Time {
	return l.now().In(l.loc)
}

func (l *Location) In(t time.Time) time.Time {
	return t.In(l.loc)
}

// Date builds the instant for a wall-clock time. Times skipped by a DST
// transition report ok=false; times repeated by one resolve to the earlier
// instant.
func (l *Location) Date(year int, month time.Month, day, hour, min, sec int) (time.Time, bool) {
	t := time.Date(year, month, day, hour, min, sec, 0, l.loc)
	if !sameWallClock(t, year, month, day, hour, min, sec) {
		return time.Time{}, false
	}
	for _, step := range []time.Duration{time.Hour, 30 * time.Minute} {
		if earlier := t.Add(-step); sameWallClock(earlier, year, month, day, hour, min, sec) {
			return earlier, true
		}
	}
	return t, true
}

func sameWallClock(t time.Time, year int, month time.Month, day, hour, min, sec int) bool {
	y, m, d := t.Date()
	return y == year && m == month && d == day &&
		t.Hour() == hour && t.Minute() == min && t.Second() == sec
}
