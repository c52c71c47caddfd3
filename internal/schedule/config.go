package schedule

import (
	"fmt"
	"time"
)

const (
	defaultIntervalMinutes = 30
	defaultRestMinutes     = 5
)

// Config fixes the interval shape. Every interval is IntervalMinutes long and
// ends with RestMinutes of rest.
type Config struct {
	IntervalMinutes int
	RestMinutes     int
}

func DefaultConfig() Config {
	return Config{
		IntervalMinutes: defaultIntervalMinutes,
		RestMinutes:     defaultRestMinutes,
	}
}

func (c Config) Validate() error {
	if c.RestMinutes <= 0 {
		return fmt.Errorf("%w: rest must be positive, got %d min", ErrInvalidConfig, c.RestMinutes)
	}
	if c.IntervalMinutes <= c.RestMinutes {
		return fmt.Errorf("%w: interval %d min must be longer than rest %d min",
			ErrInvalidConfig, c.IntervalMinutes, c.RestMinutes)
	}
	return nil
}

func (c Config) interval() time.Duration { return time.Duration(c.IntervalMinutes) * time.Minute }
func (c Config) rest() time.Duration     { return time.Duration(c.RestMinutes) * time.Minute }
func (c Config) work() time.Duration     { return c.interval() - c.rest() }
