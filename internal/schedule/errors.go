package schedule

import "errors"

var (
	ErrInvalidTimeOfDay         = errors.New("invalid time of day")
	ErrTargetNotInFuture        = errors.New("target is not in the future")
	ErrIntervalExceedsAvailable = errors.New("interval is not shorter than the available time")
	ErrInvalidConfig            = errors.New("invalid interval config")
)
