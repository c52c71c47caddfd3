package schedule

import (
	"fmt"
	"time"
)

// Partitioner splits available time into work/rest intervals.
type Partitioner struct {
	cfg Config
}

func NewPartitioner(cfg Config) (Partitioner, error) {
	if err := cfg.Validate(); err != nil {
		return Partitioner{}, err
	}
	return Partitioner{cfg: cfg}, nil
}

// Partition works in whole minutes; any seconds in available are dropped.
// Available time must exceed one interval. Each full interval yields a Work
// and a Rest activity, and a leftover becomes a final Work with no Rest.
func (p Partitioner) Partition(available time.Duration) ([]Activity, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	minutes := int64(available / time.Minute)
	interval := int64(p.cfg.IntervalMinutes)
	if minutes <= interval {
		return nil, fmt.Errorf("%w: %d min available, interval is %d min",
			ErrIntervalExceedsAvailable, minutes, interval)
	}

	iterations := minutes / interval
	remainder := minutes % interval

	entries := make([]Activity, 0, 2*iterations+1)
	for i := int64(0); i < iterations; i++ {
		entries = append(entries,
			Activity{Kind: Work, Duration: p.cfg.work()},
			Activity{Kind: Rest, Duration: p.cfg.rest()},
		)
	}
	if remainder > 0 {
		entries = append(entries, Activity{Kind: Work, Duration: time.Duration(remainder) * time.Minute})
	}
	return entries, nil
}

// Remainder is the leftover after removing whole intervals from available.
// It is zero for a Partitioner not built by NewPartitioner.
func (p Partitioner) Remainder(available time.Duration) time.Duration {
	if p.cfg.IntervalMinutes <= 0 {
		return 0
	}
	minutes := int64(available / time.Minute)
	return time.Duration(minutes%int64(p.cfg.IntervalMinutes)) * time.Minute
}
