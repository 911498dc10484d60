package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Deal     key.Binding
	AllIn    key.Binding
	Fold     key.Binding
	Restart  key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Deal:     key.NewBinding(key.WithKeys("d", "n"), key.WithHelp("d", "deal")),
		AllIn:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all in")),
		Fold:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fold")),
		Restart:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		ScrollUp: key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		ScrollDn: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Deal, k.AllIn, k.Fold, k.Restart, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Deal, k.AllIn, k.Fold, k.Restart},
		{k.ScrollUp, k.ScrollDn, k.Help, k.Quit},
	}
}
