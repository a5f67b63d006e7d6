package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all form key bindings with built-in help text.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Escape    key.Binding

	// Navigation
	NextField key.Binding
	PrevField key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding

	// Actions
	Submit   key.Binding
	StepUp   key.Binding
	StepDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "beenden"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "sofort beenden"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "hilfe"),
		),
		Escape: key.NewBinding(
			key.WithKeys("escape", "esc"),
			key.WithHelp("esc", "schließen"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "nächstes feld"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "vorheriges feld"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "hoch"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "runter"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "rhythmus zurück"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "rhythmus vor"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "bestätigen"),
		),

		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "berechnen"),
		),
		StepUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "wert erhöhen"),
		),
		StepDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "wert verringern"),
		),
	}
}

// ShortHelp implements help.KeyMap for the footer line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Right, k.Submit, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Up, k.Down},
		{k.Left, k.Right, k.StepUp, k.StepDown},
		{k.Enter, k.Submit, k.Help, k.Escape, k.Quit, k.ForceQuit},
	}
}
