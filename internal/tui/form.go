package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/timebox/internal/schedule"
)

type targetForm struct {
	active bool
	form   *huh.Form

	// Form value as a pointer (survives value copies)
	value *string
}

func newTargetForm() targetForm {
	v := ""
	return targetForm{value: &v}
}

func (f targetForm) show(current schedule.TargetTime) (targetForm, tea.Cmd) {
	*f.value = formatTarget(current)

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Finish at (HH:MM or HH:MM:SS)").
				Value(f.value).
				Validate(validateTarget),
		).Title("Target"),
	).WithShowHelp(true).WithShowErrors(true)

	f.active = true
	return f, f.form.Init()
}

func validateTarget(s string) error {
	_, err := schedule.ParseTarget(s)
	return err
}

func (f targetForm) update(msg tea.Msg) (targetForm, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			f.active = false
			f.form = nil
			return f, nil
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	switch f.form.State {
	case huh.StateCompleted:
		f.active = false
		return f, f.submit()
	case huh.StateAborted:
		f.active = false
		f.form = nil
		return f, nil
	}

	return f, cmd
}

func (f targetForm) submit() tea.Cmd {
	target, err := schedule.ParseTarget(*f.value)
	if err != nil {
		return func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	return func() tea.Msg {
		return targetSubmittedMsg{target: target}
	}
}

func (f targetForm) view(width int) string {
	title := titleStyle.Render("Change target")
	return activePanelStyle.Width(width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", f.form.View()),
	)
}
