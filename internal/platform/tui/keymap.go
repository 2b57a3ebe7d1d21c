package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dr-plumber/internal/core"
)

// KeyMap binds terminal keys to the game's logical keys.
type KeyMap struct {
	Left        key.Binding
	Right       key.Binding
	Down        key.Binding
	RotateLeft  key.Binding
	RotateRight key.Binding
	Confirm     key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "drop"),
		),
		RotateLeft: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "rotate ⟲"),
		),
		RotateRight: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "rotate ⟳"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ShortHelp returns bindings for the one-line help footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Down, k.RotateLeft, k.RotateRight, k.Quit}
}

// FullHelp returns bindings grouped for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Down},
		{k.RotateLeft, k.RotateRight},
		{k.Confirm, k.Quit},
	}
}

// Logical returns the logical key for msg, if any.
func (k KeyMap) Logical(msg tea.KeyMsg) (core.Key, bool) {
	switch {
	case key.Matches(msg, k.Left):
		return core.KeyLeft, true
	case key.Matches(msg, k.Right):
		return core.KeyRight, true
	case key.Matches(msg, k.Down):
		return core.KeyDown, true
	case key.Matches(msg, k.RotateLeft):
		return core.KeyRotateLeft, true
	case key.Matches(msg, k.RotateRight):
		return core.KeyRotateRight, true
	case key.Matches(msg, k.Confirm):
		return core.KeyConfirm, true
	}
	return 0, false
}

// IsQuit reports whether msg is one of the exit keys.
func (k KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return key.Matches(msg, k.Quit)
}
