package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/sadopc/timebox/internal/schedule"
)

func ToCSV(out io.Writer, s *schedule.Schedule) error {
	w := csv.NewWriter(out)

	// Header
	if err := w.Write([]string{"Elapsed (min)", "Start", "Kind", "Duration (min)", "Duration"}); err != nil {
		return err
	}

	for _, r := range s.Timetable.Rows(s.StartTime) {
		row := []string{
			fmt.Sprintf("%d", r.ElapsedMinutes),
			r.Start.Format(time.RFC3339),
			r.Kind.String(),
			fmt.Sprintf("%d", r.Minutes),
			formatMinutes(r.Minutes),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
