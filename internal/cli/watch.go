package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/timebox/internal/tui"
)

func watch(e *env) error {
	app := tui.NewApp(e.zone, e.planner, e.target, e.log)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
