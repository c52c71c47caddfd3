package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sadopc/timebox/internal/schedule"
)

type jsonExport struct {
	StartTime        string         `json:"start_time"`
	EndTime          string         `json:"end_time"`
	RemainingMinutes int64          `json:"remaining_minutes"`
	Count            int            `json:"count"`
	Activities       []jsonActivity `json:"activities"`
}

type jsonActivity struct {
	Kind           string `json:"kind"`
	Start          string `json:"start"`
	ElapsedMinutes int64  `json:"elapsed_minutes"`
	DurationMin    int64  `json:"duration_minutes"`
	Duration       string `json:"duration"`
}

func ToJSON(w io.Writer, s *schedule.Schedule) error {
	export := jsonExport{
		StartTime:        s.StartTime.Format(time.RFC3339),
		EndTime:          s.EndTime.Format(time.RFC3339),
		RemainingMinutes: int64(s.Remaining / time.Minute),
		Count:            len(s.Timetable.Entries),
		Activities:       []jsonActivity{},
	}

	for _, r := range s.Timetable.Rows(s.StartTime) {
		export.Activities = append(export.Activities, jsonActivity{
			Kind:           r.Kind.String(),
			Start:          r.Start.Format(time.RFC3339),
			ElapsedMinutes: r.ElapsedMinutes,
			DurationMin:    r.Minutes,
			Duration:       formatMinutes(r.Minutes),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
