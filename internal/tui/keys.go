package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Target key.Binding
	Replan key.Binding
	Chart  key.Binding
	Help   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Target: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "set target"),
	),
	Replan: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "replan from now"),
	),
	Chart: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "chart"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Target, k.Chart, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Target, k.Replan},
		{k.Chart, k.Help},
		{k.Back, k.Quit},
	}
}
