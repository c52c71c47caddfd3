package export

import (
	"fmt"
	"io"

	"github.com/sadopc/timebox/internal/schedule"
)

// ToText writes one line per activity: running total, kind and minutes.
// withClock prefixes each line with the activity's wall-clock start.
func ToText(w io.Writer, s *schedule.Schedule, withClock bool) error {
	for _, r := range s.Timetable.Rows(s.StartTime) {
		var err error
		if withClock {
			_, err = fmt.Fprintf(w, "%s ⏱%d %s=%d\n", r.Start.Format("15:04"), r.ElapsedMinutes, r.Kind, r.Minutes)
		} else {
			_, err = fmt.Fprintf(w, "⏱%d %s=%d\n", r.ElapsedMinutes, r.Kind, r.Minutes)
		}
		if err != nil {
			return fmt.Errorf("write text: %w", err)
		}
	}
	return nil
}
