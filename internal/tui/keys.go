package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists every binding the view reacts to. It doubles as the help
// model's source.
type KeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Cycle     key.Binding
	Submit    key.Binding
	Paste     key.Binding
	OpenDir   key.Binding
	ClearLog  key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
	Quit      key.Binding
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.Paste, k.ClearLog, k.OpenDir, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.NextField, k.PrevField, k.Cycle},
		{k.Paste, k.OpenDir, k.ClearLog},
		{k.ScrollUp, k.ScrollDn, k.Quit},
	}
}

// DefaultKeys is the standard binding set.
var DefaultKeys = KeyMap{
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev field"),
	),
	Cycle: key.NewBinding(
		key.WithKeys("left", "right"),
		key.WithHelp("←/→", "change option"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "resolve/download"),
	),
	Paste: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "paste URL"),
	),
	OpenDir: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "open folder"),
	),
	ClearLog: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear log"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("up", "pgup"),
		key.WithHelp("↑/pgup", "scroll log"),
	),
	ScrollDn: key.NewBinding(
		key.WithKeys("down", "pgdown"),
		key.WithHelp("↓/pgdn", "scroll log"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
