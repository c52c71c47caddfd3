package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TargetTime is a wall-clock time of day. Fields are not range checked here;
// the resolver rejects values that do not form a valid time.
type TargetTime struct {
	Hour   int
	Minute int
	Second int
}

func (t TargetTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// ParseTarget parses "HH:MM" or "HH:MM:SS".
func ParseTarget(s string) (TargetTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return TargetTime{}, fmt.Errorf("parse target %q: want HH:MM or HH:MM:SS", s)
	}
	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return TargetTime{}, fmt.Errorf("parse target %q: %w", s, err)
		}
		fields[i] = n
	}
	return TargetTime{Hour: fields[0], Minute: fields[1], Second: fields[2]}, nil
}

type ActivityKind int

const (
	Work ActivityKind = iota
	Rest
)

var kindNames = map[ActivityKind]string{
	Work: "Work",
	Rest: "Rest",
}

func (k ActivityKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActivityKind(%d)", int(k))
}

type Activity struct {
	Kind     ActivityKind
	Duration time.Duration
}

// Timetable is the ordered activity list of a schedule, in chronological order.
type Timetable struct {
	Entries []Activity
}

func (tt Timetable) Total() time.Duration {
	var total time.Duration
	for _, a := range tt.Entries {
		total += a.Duration
	}
	return total
}

// Row is one line of a rendered timetable.
type Row struct {
	Kind           ActivityKind
	Minutes        int64
	ElapsedMinutes int64 // running total before this activity
	Start          time.Time
}

// Rows pairs every activity with its offset from start.
func (tt Timetable) Rows(start time.Time) []Row {
	rows := make([]Row, 0, len(tt.Entries))
	var elapsed time.Duration
	for _, a := range tt.Entries {
		rows = append(rows, Row{
			Kind:           a.Kind,
			Minutes:        int64(a.Duration / time.Minute),
			ElapsedMinutes: int64(elapsed / time.Minute),
			Start:          start.Add(elapsed),
		})
		elapsed += a.Duration
	}
	return rows
}

// Schedule is the result of one planning request. Remaining is the length of
// the trailing partial interval and may be zero.
type Schedule struct {
	Timetable Timetable
	StartTime time.Time
	EndTime   time.Time
	Remaining time.Duration
}

// ActiveAt returns the index of the activity running at t, or -1 when t falls
// outside the schedule.
func (s *Schedule) ActiveAt(t time.Time) int {
	if t.Before(s.StartTime) {
		return -1
	}
	offset := t.Sub(s.StartTime)
	var elapsed time.Duration
	for i, a := range s.Timetable.Entries {
		elapsed += a.Duration
		if offset < elapsed {
			return i
		}
	}
	return -1
}
