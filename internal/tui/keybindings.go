package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings of the config view. It implements
// help.KeyMap so the footer can render it.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Lower key.Binding
	Raise key.Binding
	Set   key.Binding
	Reset key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
// Key names follow the Bubble Tea format ("ctrl+c", "left", etc.).
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous logger"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next logger"),
		),
		Lower: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "more verbose"),
		),
		Raise: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "less verbose"),
		),
		Set: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4"),
			key.WithHelp("0-4", "debug…none"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset to warn"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Lower, k.Raise, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Lower, k.Raise, k.Set, k.Reset},
		{k.Help, k.Quit},
	}
}
