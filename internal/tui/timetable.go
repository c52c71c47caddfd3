package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/timebox/internal/schedule"
)

type timetablePhase int

const (
	phaseIdle timetablePhase = iota
	phasePending
	phaseWork
	phaseRest
	phaseDone
)

var phaseNames = map[timetablePhase]string{
	phaseIdle:    "NO SCHEDULE",
	phasePending: "NOT STARTED",
	phaseWork:    "WORK",
	phaseRest:    "REST",
	phaseDone:    "DONE",
}

// timetableModel renders a schedule against the current time.
type timetableModel struct {
	width  int
	height int

	schedule *schedule.Schedule
	rows     []schedule.Row
}

func newTimetableModel() timetableModel {
	return timetableModel{}
}

func (t *timetableModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t *timetableModel) setSchedule(s *schedule.Schedule) {
	t.schedule = s
	t.rows = s.Timetable.Rows(s.StartTime)
}

// phase reports where now falls, with the active row index (or -1).
func (t timetableModel) phase(now time.Time) (timetablePhase, int) {
	if t.schedule == nil {
		return phaseIdle, -1
	}
	if now.Before(t.schedule.StartTime) {
		return phasePending, -1
	}
	i := t.schedule.ActiveAt(now)
	if i < 0 {
		return phaseDone, -1
	}
	if t.rows[i].Kind == schedule.Rest {
		return phaseRest, i
	}
	return phaseWork, i
}

// remaining is the time left in the active row.
func (t timetableModel) remaining(now time.Time, i int) time.Duration {
	if i < 0 || i >= len(t.rows) {
		return 0
	}
	end := t.rows[i].Start.Add(time.Duration(t.rows[i].Minutes) * time.Minute)
	if i == len(t.rows)-1 {
		end = t.schedule.EndTime
	}
	return end.Sub(now)
}

func (t timetableModel) view(now time.Time) string {
	w := t.width - 4

	title := titleStyle.Render("Timetable")
	if t.schedule == nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", mutedStyle.Render("No schedule yet. Press t to set a target.")),
		)
	}

	phase, active := t.phase(now)

	var countdown, label string
	switch phase {
	case phasePending:
		countdown = timerStyle.Render(formatCountdown(t.schedule.StartTime.Sub(now)))
		label = mutedStyle.Render(phaseNames[phase])
	case phaseWork, phaseRest:
		style := kindStyle(t.rows[active].Kind).Bold(true)
		countdown = style.Render(formatCountdown(t.remaining(now, active)))
		label = style.Render(fmt.Sprintf("%s  %d/%d", phaseNames[phase], active+1, len(t.rows)))
	case phaseDone:
		countdown = restStyle.Bold(true).Render("Done!")
		label = restStyle.Bold(true).Render("TARGET REACHED")
	}

	header := lipgloss.JoinVertical(lipgloss.Center, title, "", countdown, label)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", t.renderRows(active, phase)),
	)
}

func (t timetableModel) renderRows(active int, phase timetablePhase) string {
	maxRows := t.height - 12
	if maxRows < 3 {
		maxRows = 3
	}
	from, to := visibleRange(len(t.rows), active, maxRows)

	var lines []string
	if from > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  ↑ %d more", from)))
	}
	for i := from; i < to; i++ {
		r := t.rows[i]
		line := fmt.Sprintf("%s  ⏱%-4d %-4s %3d min", r.Start.Format("15:04"), r.ElapsedMinutes, r.Kind, r.Minutes)
		switch {
		case i == active:
			lines = append(lines, currentRowStyle.Inherit(kindStyle(r.Kind)).Render("▶ "+line))
		case phase == phaseDone || (active >= 0 && i < active):
			lines = append(lines, mutedStyle.Render("  "+line))
		default:
			lines = append(lines, normalRowStyle.Render("  ")+kindStyle(r.Kind).Render(line))
		}
	}
	if to < len(t.rows) {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  ↓ %d more", len(t.rows)-to)))
	}
	return strings.Join(lines, "\n")
}

// visibleRange picks at most limit rows out of n, keeping active in view.
func visibleRange(n, active, limit int) (int, int) {
	if n <= limit {
		return 0, n
	}
	from := 0
	if active > 0 {
		from = active - limit/2
	}
	from = max(0, min(from, n-limit))
	return from, from + limit
}
