package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the dashboard key bindings.
type keyMap struct {
	Quit         key.Binding
	Horizontal   key.Binding
	Vertical     key.Binding
	ToggleLayout key.Binding
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Top          key.Binding
	Bottom       key.Binding
	Next         key.Binding
	Previous     key.Binding
	Jump         key.Binding
	Help         key.Binding

	// Jump prompt
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Horizontal: key.NewBinding(
			key.WithKeys("h", "H"),
			key.WithHelp("h", "stack panels"),
		),
		Vertical: key.NewBinding(
			key.WithKeys("v", "V"),
			key.WithHelp("v", "side by side"),
		),
		ToggleLayout: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "toggle layout"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "line up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "line down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "oldest line"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "newest line"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "tab"),
			key.WithHelp("→/tab", "next file"),
		),
		Previous: key.NewBinding(
			key.WithKeys("left", "shift+tab"),
			key.WithHelp("←/s-tab", "previous file"),
		),
		Jump: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "jump to file"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "focus match"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Next, k.Down, k.ToggleLayout, k.Jump, k.Help}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.Jump},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom},
		{k.Horizontal, k.Vertical, k.ToggleLayout},
		{k.Help, k.Quit},
	}
}

// promptKeys is the help shown while the jump prompt is open.
type promptKeys struct {
	keys keyMap
}

func (p promptKeys) ShortHelp() []key.Binding {
	return []key.Binding{p.keys.Confirm, p.keys.Cancel}
}

func (p promptKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{p.ShortHelp()}
}
