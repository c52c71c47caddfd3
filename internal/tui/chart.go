package tui

import (
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/timebox/internal/schedule"
)

// hourBucket holds the work and rest minutes falling inside one wall-clock hour.
type hourBucket struct {
	Hour time.Time
	Work float64
	Rest float64
}

// minutesByHour splits every activity at hour boundaries.
func minutesByHour(s *schedule.Schedule) []hourBucket {
	var buckets []hourBucket
	cur := s.StartTime
	for _, a := range s.Timetable.Entries {
		end := cur.Add(a.Duration)
		for cur.Before(end) {
			hour := time.Date(cur.Year(), cur.Month(), cur.Day(), cur.Hour(), 0, 0, 0, cur.Location())
			segEnd := hour.Add(time.Hour)
			if end.Before(segEnd) {
				segEnd = end
			}
			if len(buckets) == 0 || !buckets[len(buckets)-1].Hour.Equal(hour) {
				buckets = append(buckets, hourBucket{Hour: hour})
			}
			b := &buckets[len(buckets)-1]
			if a.Kind == schedule.Rest {
				b.Rest += segEnd.Sub(cur).Minutes()
			} else {
				b.Work += segEnd.Sub(cur).Minutes()
			}
			cur = segEnd
		}
	}
	return buckets
}

type chartModel struct {
	width  int
	height int

	buckets []hourBucket
	chart   barchart.Model
}

func newChartModel() chartModel {
	return chartModel{
		chart: barchart.New(60, 12),
	}
}

func (c *chartModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c *chartModel) build(s *schedule.Schedule) {
	chartWidth := c.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if c.height > 40 {
		chartHeight = 14
	}

	c.chart = barchart.New(chartWidth, chartHeight)
	c.buckets = minutesByHour(s)

	var bars []barchart.BarData
	for _, b := range c.buckets {
		bars = append(bars, barchart.BarData{
			Label: b.Hour.Format("15h"),
			Values: []barchart.BarValue{
				{Name: "Work", Value: b.Work, Style: lipgloss.NewStyle().Foreground(colorAccent)},
				{Name: "Rest", Value: b.Rest, Style: lipgloss.NewStyle().Foreground(colorSuccess)},
			},
		})
	}

	c.chart.PushAll(bars)
	c.chart.Draw()
}

func (c chartModel) view() string {
	w := c.width - 4
	title := titleStyle.Render("Minutes per hour")
	if len(c.buckets) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", mutedStyle.Render("  No data")),
		)
	}
	legend := "  " + workStyle.Render("● Work") + "  " + restStyle.Render("● Rest")
	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", c.chart.View(), "", legend),
	)
}
