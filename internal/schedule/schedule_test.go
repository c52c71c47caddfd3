package schedule

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/sadopc/timebox/internal/clock"
)

// utcZone is a Zone pinned to UTC with a fixed now.
type utcZone struct {
	now time.Time
}

func (z utcZone) Now() time.Time { return z.now }

func (z utcZone) In(t time.Time) time.Time { return t.UTC() }

func (z utcZone) Date(year int, month time.Month, day, hour, min, sec int) (time.Time, bool) {
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC), true
}

func at(hour, min int) time.Time {
	return time.Date(2022, 8, 10, hour, min, 0, 0, time.UTC)
}

func newTestPartitioner(t *testing.T) Partitioner {
	t.Helper()
	p, err := NewPartitioner(DefaultConfig())
	if err != nil {
		t.Fatalf("new partitioner: %v", err)
	}
	return p
}

func newTestPlanner(t *testing.T, zone Zone) *Planner {
	t.Helper()
	p, err := NewPlanner(zone, DefaultConfig())
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	return p
}

func describe(entries []Activity) string {
	s := ""
	for _, a := range entries {
		s += fmt.Sprintf("%s%d ", a.Kind, int(a.Duration/time.Minute))
	}
	return s
}

// ============================================================
// Target parsing
// ============================================================

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in   string
		want TargetTime
	}{
		{"16:00", TargetTime{Hour: 16}},
		{"9:05", TargetTime{Hour: 9, Minute: 5}},
		{"23:59:30", TargetTime{Hour: 23, Minute: 59, Second: 30}},
		{" 11:30 ", TargetTime{Hour: 11, Minute: 30}},
		{"25:00", TargetTime{Hour: 25}}, // range is checked by the resolver
	}
	for _, tt := range tests {
		got, err := ParseTarget(tt.in)
		if err != nil {
			t.Fatalf("ParseTarget(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseTarget(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseTargetMalformed(t *testing.T) {
	for _, in := range []string{"", "16", "16:00:00:00", "ab:cd", "16:xx"} {
		if _, err := ParseTarget(in); err == nil {
			t.Errorf("ParseTarget(%q) should fail", in)
		}
	}
}

func TestTargetString(t *testing.T) {
	if got := (TargetTime{Hour: 9, Minute: 5}).String(); got != "09:05:00" {
		t.Fatalf("String() = %q", got)
	}
}

func TestActivityKindString(t *testing.T) {
	if Work.String() != "Work" || Rest.String() != "Rest" {
		t.Fatalf("unexpected kind names: %s %s", Work, Rest)
	}
	if got := ActivityKind(7).String(); got != "ActivityKind(7)" {
		t.Fatalf("unknown kind = %q", got)
	}
}

// ============================================================
// Config
// ============================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.IntervalMinutes != 30 || cfg.RestMinutes != 5 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	bad := []Config{
		{IntervalMinutes: 30, RestMinutes: 0},
		{IntervalMinutes: 30, RestMinutes: -5},
		{IntervalMinutes: 5, RestMinutes: 5},
		{IntervalMinutes: 0, RestMinutes: 5},
	}
	for _, cfg := range bad {
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Validate(%+v) = %v, want ErrInvalidConfig", cfg, err)
		}
	}
	if _, err := NewPlanner(utcZone{}, Config{IntervalMinutes: 5, RestMinutes: 10}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("NewPlanner with bad config = %v", err)
	}
}

// ============================================================
// Resolver
// ============================================================

func TestResolve(t *testing.T) {
	r := NewResolver(utcZone{})
	now := at(9, 0)

	d, end, err := r.Resolve(now, TargetTime{Hour: 16})
	if err != nil {
		t.Fatal(err)
	}
	if d != 7*time.Hour {
		t.Fatalf("duration = %v, want 7h", d)
	}
	if !end.Equal(at(16, 0)) {
		t.Fatalf("end = %v", end)
	}
}

func TestResolveKeepsSeconds(t *testing.T) {
	r := NewResolver(utcZone{})
	now := at(9, 0).Add(15 * time.Second)

	d, _, err := r.Resolve(now, TargetTime{Hour: 10, Second: 30})
	if err != nil {
		t.Fatal(err)
	}
	if d != time.Hour+15*time.Second {
		t.Fatalf("duration = %v", d)
	}
}

func TestResolveInvalidTimeOfDay(t *testing.T) {
	r := NewResolver(utcZone{})
	targets := []TargetTime{
		{Hour: 24},
		{Hour: 12, Minute: 60},
		{Hour: 12, Second: 60},
		{Hour: -1},
		{Hour: 12, Minute: -1},
	}
	for _, target := range targets {
		_, _, err := r.Resolve(at(9, 0), target)
		if !errors.Is(err, ErrInvalidTimeOfDay) {
			t.Errorf("Resolve(%+v) = %v, want ErrInvalidTimeOfDay", target, err)
		}
	}
}

func TestResolvePastTarget(t *testing.T) {
	r := NewResolver(utcZone{})
	_, _, err := r.Resolve(at(17, 0), TargetTime{Hour: 16})
	if !errors.Is(err, ErrTargetNotInFuture) {
		t.Fatalf("err = %v, want ErrTargetNotInFuture", err)
	}
}

func TestResolveTargetEqualsNow(t *testing.T) {
	r := NewResolver(utcZone{})
	_, _, err := r.Resolve(at(16, 0), TargetTime{Hour: 16})
	if !errors.Is(err, ErrTargetNotInFuture) {
		t.Fatalf("err = %v, want ErrTargetNotInFuture", err)
	}
}

func TestResolveSkippedWallClock(t *testing.T) {
	london, err := clock.Load("Europe/London")
	if err != nil {
		t.Fatal(err)
	}
	r := NewResolver(london)
	now := time.Date(2022, 3, 27, 0, 10, 0, 0, london.Location())

	_, _, err = r.Resolve(now, TargetTime{Hour: 1, Minute: 30})
	if !errors.Is(err, ErrInvalidTimeOfDay) {
		t.Fatalf("err = %v, want ErrInvalidTimeOfDay", err)
	}
}

func TestResolveAcrossDSTChange(t *testing.T) {
	london, err := clock.Load("Europe/London")
	if err != nil {
		t.Fatal(err)
	}
	r := NewResolver(london)
	// 00:00 GMT to 04:00 BST is only three hours of elapsed time.
	now := time.Date(2022, 3, 27, 0, 0, 0, 0, london.Location())

	d, _, err := r.Resolve(now, TargetTime{Hour: 4})
	if err != nil {
		t.Fatal(err)
	}
	if d != 3*time.Hour {
		t.Fatalf("duration = %v, want 3h", d)
	}
}

func TestResolveNowFromOtherZone(t *testing.T) {
	london, err := clock.Load("Europe/London")
	if err != nil {
		t.Fatal(err)
	}
	tokyo, err := clock.Load("Asia/Tokyo")
	if err != nil {
		t.Fatal(err)
	}
	r := NewResolver(london)

	// 01:00 JST on the 10th is 17:00 BST on the 9th, after 16:00 in London.
	now := time.Date(2022, 8, 10, 1, 0, 0, 0, tokyo.Location())
	if _, _, err := r.Resolve(now, TargetTime{Hour: 16}); !errors.Is(err, ErrTargetNotInFuture) {
		t.Fatalf("err = %v, want ErrTargetNotInFuture", err)
	}

	// 15:00 JST on the 10th is 07:00 BST the same day.
	now = time.Date(2022, 8, 10, 15, 0, 0, 0, tokyo.Location())
	d, end, err := r.Resolve(now, TargetTime{Hour: 16})
	if err != nil {
		t.Fatal(err)
	}
	if d != 9*time.Hour {
		t.Fatalf("duration = %v, want 9h", d)
	}
	want := time.Date(2022, 8, 10, 16, 0, 0, 0, london.Location())
	if !end.Equal(want) || end.Location() != london.Location() {
		t.Fatalf("end = %v, want %v", end, want)
	}
}

// ============================================================
// Partitioner
// ============================================================

func TestPartitionExactMultiple(t *testing.T) {
	p := newTestPartitioner(t)
	got, err := p.Partition(60 * time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	want := []Activity{
		{Work, 25 * time.Minute},
		{Rest, 5 * time.Minute},
		{Work, 25 * time.Minute},
		{Rest, 5 * time.Minute},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Partition(60m) = %s", describe(got))
	}
}

func TestPartitionWithRemainder(t *testing.T) {
	p := newTestPartitioner(t)
	got, err := p.Partition(70 * time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if describe(got) != "Work25 Rest5 Work25 Rest5 Work10 " {
		t.Fatalf("Partition(70m) = %s", describe(got))
	}
	if r := p.Remainder(70 * time.Minute); r != 10*time.Minute {
		t.Fatalf("Remainder(70m) = %v", r)
	}
}

func TestPartitionRejectsOneInterval(t *testing.T) {
	p := newTestPartitioner(t)
	got, err := p.Partition(30 * time.Minute)
	if !errors.Is(err, ErrIntervalExceedsAvailable) {
		t.Fatalf("err = %v, want ErrIntervalExceedsAvailable", err)
	}
	if got != nil {
		t.Fatalf("expected no output, got %s", describe(got))
	}
}

func TestPartitionRejectsShortAndNegative(t *testing.T) {
	p := newTestPartitioner(t)
	for _, d := range []time.Duration{0, 10 * time.Minute, -time.Hour, 30*time.Minute + 59*time.Second} {
		if _, err := p.Partition(d); !errors.Is(err, ErrIntervalExceedsAvailable) {
			t.Errorf("Partition(%v) = %v, want ErrIntervalExceedsAvailable", d, err)
		}
	}
}

func TestPartitionJustOverOneInterval(t *testing.T) {
	p := newTestPartitioner(t)
	got, err := p.Partition(31 * time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if describe(got) != "Work25 Rest5 Work1 " {
		t.Fatalf("Partition(31m) = %s", describe(got))
	}
}

func TestPartitionDropsSeconds(t *testing.T) {
	p := newTestPartitioner(t)
	got, err := p.Partition(70*time.Minute + 45*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if describe(got) != "Work25 Rest5 Work25 Rest5 Work10 " {
		t.Fatalf("Partition(70m45s) = %s", describe(got))
	}
}

func TestPartitionCustomConfig(t *testing.T) {
	p, err := NewPartitioner(Config{IntervalMinutes: 60, RestMinutes: 10})
	if err != nil {
		t.Fatal(err)
	}
	got, err := p.Partition(150 * time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if describe(got) != "Work50 Rest10 Work50 Rest10 Work30 " {
		t.Fatalf("Partition(150m) = %s", describe(got))
	}
}

func TestPartitionZeroValue(t *testing.T) {
	var p Partitioner
	if _, err := p.Partition(60 * time.Minute); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if r := p.Remainder(60 * time.Minute); r != 0 {
		t.Fatalf("Remainder = %v, want 0", r)
	}
}

func TestPartitionIdempotent(t *testing.T) {
	p := newTestPartitioner(t)
	a, err := p.Partition(517 * time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := p.Partition(517 * time.Minute)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("repeated partition differs")
	}
}

func TestPartitionInvariants(t *testing.T) {
	p := newTestPartitioner(t)
	for mins := 31; mins <= 24*60; mins++ {
		available := time.Duration(mins) * time.Minute
		entries, err := p.Partition(available)
		if err != nil {
			t.Fatalf("Partition(%dm): %v", mins, err)
		}

		var sum time.Duration
		for i, a := range entries {
			if a.Duration <= 0 {
				t.Fatalf("%dm: entry %d has non-positive duration", mins, i)
			}
			sum += a.Duration
			wantKind := Work
			if i%2 == 1 {
				wantKind = Rest
			}
			if a.Kind != wantKind {
				t.Fatalf("%dm: entry %d is %s, want %s", mins, i, a.Kind, wantKind)
			}
		}
		if hasRemainder := mins%30 != 0; hasRemainder != (len(entries)%2 == 1) {
			t.Fatalf("%dm: %d entries, remainder=%v", mins, len(entries), hasRemainder)
		}
		if sum != available {
			t.Fatalf("%dm: sum = %v", mins, sum)
		}
	}
}

// ============================================================
// Planner
// ============================================================

func TestCreateSchedule(t *testing.T) {
	p := newTestPlanner(t, utcZone{})
	now := at(14, 50)

	s, err := p.Create(now, TargetTime{Hour: 16})
	if err != nil {
		t.Fatal(err)
	}
	if !s.StartTime.Equal(now) || !s.EndTime.Equal(at(16, 0)) {
		t.Fatalf("unexpected bounds: %v - %v", s.StartTime, s.EndTime)
	}
	if s.Remaining != 10*time.Minute {
		t.Fatalf("Remaining = %v", s.Remaining)
	}
	if s.Timetable.Total() != s.EndTime.Sub(s.StartTime) {
		t.Fatalf("total %v != span %v", s.Timetable.Total(), s.EndTime.Sub(s.StartTime))
	}
}

func TestCreateSchedulePastTarget(t *testing.T) {
	p := newTestPlanner(t, utcZone{})
	s, err := p.Create(at(17, 0), TargetTime{Hour: 16})
	if !errors.Is(err, ErrTargetNotInFuture) {
		t.Fatalf("err = %v, want ErrTargetNotInFuture", err)
	}
	if s != nil {
		t.Fatal("expected nil schedule on error")
	}
}

func TestCreateScheduleTooShort(t *testing.T) {
	p := newTestPlanner(t, utcZone{})
	_, err := p.Create(at(15, 30), TargetTime{Hour: 16})
	if !errors.Is(err, ErrIntervalExceedsAvailable) {
		t.Fatalf("err = %v, want ErrIntervalExceedsAvailable", err)
	}
}

func TestPlanUsesZoneNow(t *testing.T) {
	p := newTestPlanner(t, utcZone{now: at(15, 0)})
	s, err := p.Plan(TargetTime{Hour: 16, Minute: 10})
	if err != nil {
		t.Fatal(err)
	}
	if describe(s.Timetable.Entries) != "Work25 Rest5 Work25 Rest5 Work10 " {
		t.Fatalf("Plan = %s", describe(s.Timetable.Entries))
	}
}

func TestScheduleSumInvariant(t *testing.T) {
	p := newTestPlanner(t, utcZone{})
	for startMin := 0; startMin < 14*60; startMin += 7 {
		now := at(0, 0).Add(time.Duration(startMin) * time.Minute)
		s, err := p.Create(now, TargetTime{Hour: 16})
		if err != nil {
			t.Fatalf("start %v: %v", now, err)
		}
		if s.Timetable.Total() != s.EndTime.Sub(s.StartTime) {
			t.Fatalf("start %v: total %v != span %v", now, s.Timetable.Total(), s.EndTime.Sub(s.StartTime))
		}
	}
}

func TestScheduleLondonMorning(t *testing.T) {
	london, err := clock.Load("Europe/London")
	if err != nil {
		t.Fatal(err)
	}
	p := newTestPlanner(t, london)
	nineAM := time.Date(2022, 8, 10, 8, 0, 0, 0, time.UTC).In(london.Location())

	s, err := p.Create(nineAM, TargetTime{Hour: 11, Minute: 30})
	if err != nil {
		t.Fatal(err)
	}

	expected := []struct {
		kind  ActivityKind
		mins  int64
		start string
	}{
		{Work, 25, "9:00"},
		{Rest, 5, "9:25"},
		{Work, 25, "9:30"},
		{Rest, 5, "9:55"},
		{Work, 25, "10:00"},
		{Rest, 5, "10:25"},
		{Work, 25, "10:30"},
		{Rest, 5, "10:55"},
		{Work, 25, "11:00"},
		{Rest, 5, "11:25"},
	}
	rows := s.Timetable.Rows(s.StartTime)
	if len(rows) != len(expected) {
		t.Fatalf("expected %d rows, got %d", len(expected), len(rows))
	}
	for i, want := range expected {
		got := rows[i]
		start := fmt.Sprintf("%d:%02d", got.Start.Hour(), got.Start.Minute())
		if got.Kind != want.kind || got.Minutes != want.mins || start != want.start {
			t.Errorf("row %d = %s %d %s, want %s %d %s", i, got.Kind, got.Minutes, start, want.kind, want.mins, want.start)
		}
	}
	if s.Remaining != 0 {
		t.Fatalf("Remaining = %v, want 0", s.Remaining)
	}
}

// ============================================================
// Timetable helpers
// ============================================================

func TestRowsElapsed(t *testing.T) {
	p := newTestPartitioner(t)
	entries, _ := p.Partition(70 * time.Minute)
	rows := Timetable{Entries: entries}.Rows(at(9, 0))

	wantElapsed := []int64{0, 25, 30, 55, 60}
	for i, r := range rows {
		if r.ElapsedMinutes != wantElapsed[i] {
			t.Errorf("row %d elapsed = %d, want %d", i, r.ElapsedMinutes, wantElapsed[i])
		}
	}
	if !rows[4].Start.Equal(at(10, 0)) {
		t.Fatalf("last row start = %v", rows[4].Start)
	}
}

func TestActiveAt(t *testing.T) {
	p := newTestPlanner(t, utcZone{})
	s, err := p.Create(at(9, 0), TargetTime{Hour: 10, Minute: 10})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		t    time.Time
		want int
	}{
		{at(8, 59), -1},
		{at(9, 0), 0},
		{at(9, 24), 0},
		{at(9, 25), 1},
		{at(9, 30), 2},
		{at(10, 9), 4},
		{at(10, 10), -1},
	}
	for _, tt := range tests {
		if got := s.ActiveAt(tt.t); got != tt.want {
			t.Errorf("ActiveAt(%s) = %d, want %d", tt.t.Format("15:04"), got, tt.want)
		}
	}
}
