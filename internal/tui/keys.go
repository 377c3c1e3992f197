package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the admin screen.
type KeyMap struct {
	// List navigation.
	Up   key.Binding
	Down key.Binding

	// Catalogue actions (list focus).
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Filter  key.Binding

	// Dialog.
	NextField  key.Binding
	PrevField  key.Binding
	CycleValue key.Binding // Advance a choice field (rarity).
	Submit     key.Binding
	Cancel     key.Binding

	// Confirmation prompt.
	Yes key.Binding
	No  key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-tab", "previous field"),
	),
	CycleValue: key.NewBinding(
		key.WithKeys(" ", "right"),
		key.WithHelp("space", "next rarity"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "confirm"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n", "keep"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// listHelp is the key summary shown in the status bar when nothing else is.
func (keys KeyMap) listHelp() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.Add, keys.Edit, keys.Delete, keys.Refresh, keys.Filter, keys.Quit}
}

func (keys KeyMap) formHelp() []key.Binding {
	return []key.Binding{keys.NextField, keys.CycleValue, keys.Submit, keys.Cancel}
}
