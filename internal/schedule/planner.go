package schedule

import "time"

// Planner runs the resolve and partition steps for one zone.
type Planner struct {
	zone        Zone
	resolver    Resolver
	partitioner Partitioner
}

func NewPlanner(zone Zone, cfg Config) (*Planner, error) {
	partitioner, err := NewPartitioner(cfg)
	if err != nil {
		return nil, err
	}
	return &Planner{
		zone:        zone,
		resolver:    NewResolver(zone),
		partitioner: partitioner,
	}, nil
}

// Plan builds a schedule from the zone's current time to target.
func (p *Planner) Plan(target TargetTime) (*Schedule, error) {
	return p.Create(p.zone.Now(), target)
}

// Create builds a schedule from now to target. The result is never modified
// after it is returned.
func (p *Planner) Create(now time.Time, target TargetTime) (*Schedule, error) {
	available, end, err := p.resolver.Resolve(now, target)
	if err != nil {
		return nil, err
	}
	entries, err := p.partitioner.Partition(available)
	if err != nil {
		return nil, err
	}
	return &Schedule{
		Timetable: Timetable{Entries: entries},
		StartTime: now,
		EndTime:   end,
		Remaining: p.partitioner.Remainder(available),
	}, nil
}
