package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/sadopc/timebox/internal/schedule"
)

// App is the root Bubble Tea model.
type App struct {
	zone    schedule.Zone
	planner *schedule.Planner
	log     zerolog.Logger

	width  int
	height int

	target   schedule.TargetTime
	schedule *schedule.Schedule
	now      time.Time

	showHelp  bool
	showChart bool

	timetable timetableModel
	chart     chartModel
	form      targetForm

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(zone schedule.Zone, planner *schedule.Planner, target schedule.TargetTime, log zerolog.Logger) App {
	h := help.New()
	h.ShowAll = false

	return App{
		zone:      zone,
		planner:   planner,
		log:       log,
		target:    target,
		now:       zone.Now(),
		timetable: newTimetableModel(),
		chart:     newChartModel(),
		form:      newTargetForm(),
		help:      h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		planCmd(a.planner, a.target),
		tickCmd(),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timetable.setSize(a.width, contentHeight)
		a.chart.setSize(a.width, contentHeight)
		if a.schedule != nil {
			a.chart.build(a.schedule)
		}
		return a, nil

	case tickMsg:
		a.now = a.zone.Now()
		return a, tickCmd()

	case scheduleMsg:
		a.schedule = msg.schedule
		a.target = msg.target
		a.timetable.setSchedule(msg.schedule)
		a.chart.build(msg.schedule)
		a.status = fmt.Sprintf("Planned %d activities until %s", len(msg.schedule.Timetable.Entries), msg.schedule.EndTime.Format("15:04"))
		a.statusErr = false
		a.log.Debug().
			Str("target", msg.target.String()).
			Time("end", msg.schedule.EndTime).
			Int("activities", len(msg.schedule.Timetable.Entries)).
			Dur("remaining", msg.schedule.Remaining).
			Msg("schedule planned")
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		if msg.isError {
			a.log.Warn().Msg(msg.text)
		}
		return a, nil

	case targetSubmittedMsg:
		return a, planCmd(a.planner, msg.target)
	}

	// The form captures all remaining input while open.
	if a.form.active {
		var cmd tea.Cmd
		a.form, cmd = a.form.update(msg)
		return a, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Chart):
			a.showChart = !a.showChart
			return a, nil
		case key.Matches(msg, keys.Target):
			var cmd tea.Cmd
			a.form, cmd = a.form.show(a.target)
			return a, cmd
		case key.Matches(msg, keys.Replan):
			return a, planCmd(a.planner, a.target)
		}
	}
	return a, nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch {
	case a.form.active && a.form.form != nil:
		content = a.form.view(a.width)
	case a.showChart:
		content = lipgloss.JoinVertical(lipgloss.Left, a.chart.view(), a.timetable.view(a.now))
	default:
		content = a.timetable.view(a.now)
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("timebox")

	info := subtitleStyle.Render("target " + formatTarget(a.target))
	if a.schedule != nil {
		info = subtitleStyle.Render(fmt.Sprintf("%s → %s", a.schedule.StartTime.Format("15:04"), a.schedule.EndTime.Format("15:04 MST")))
	}
	clock := highlightStyle.Render(a.now.Format("15:04:05"))

	right := lipgloss.JoinHorizontal(lipgloss.Bottom, info, "  ", clock)
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, right),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Time left until the target
	left := ""
	if a.schedule != nil && a.now.Before(a.schedule.EndTime) {
		left = highlightStyle.Render(" ● " + formatDuration(a.schedule.EndTime.Sub(a.now)) + " left")
	}

	helpText := footerStyle.Render(helpView)
	right := left + status

	gap := a.width - lipgloss.Width(helpText) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, helpText, spacer, right)
}
