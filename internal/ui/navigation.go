package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/logtail-dash/internal/content"
	"github.com/atomicstack/logtail-dash/internal/dash"
	"github.com/atomicstack/logtail-dash/internal/focus"
	"github.com/atomicstack/logtail-dash/internal/logging/events"
)

const defaultPageSize = 10

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.prompting {
		return m.handlePromptKey(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Horizontal):
		m.setLayout(dash.Horizontal)
	case key.Matches(keyMsg, m.keys.Vertical):
		m.setLayout(dash.Vertical)
	case key.Matches(keyMsg, m.keys.ToggleLayout):
		m.dash.ToggleMode()
		events.Layout.Change(m.dash.Mode.String())
	case key.Matches(keyMsg, m.keys.Down):
		m.moveSelection(func(b *content.Buffer) bool { return b.MoveSelection(true) })
	case key.Matches(keyMsg, m.keys.Up):
		m.moveSelection(func(b *content.Buffer) bool { return b.MoveSelection(false) })
	case key.Matches(keyMsg, m.keys.PageDown):
		m.moveSelection(func(b *content.Buffer) bool { return b.PageSelection(m.pageSize()) })
	case key.Matches(keyMsg, m.keys.PageUp):
		m.moveSelection(func(b *content.Buffer) bool { return b.PageSelection(-m.pageSize()) })
	case key.Matches(keyMsg, m.keys.Top):
		m.moveSelection((*content.Buffer).SelectFirst)
	case key.Matches(keyMsg, m.keys.Bottom):
		m.moveSelection((*content.Buffer).SelectLast)
	case key.Matches(keyMsg, m.keys.Next):
		m.changeFocus(m.nav.Next, "next")
	case key.Matches(keyMsg, m.keys.Previous):
		m.changeFocus(m.nav.Previous, "previous")
	case key.Matches(keyMsg, m.keys.Jump):
		return m.openPrompt()
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) setLayout(mode dash.Mode) {
	if m.dash.SetMode(mode) {
		events.Layout.Change(mode.String())
	}
}

// changeFocus applies a navigator transition and traces it.
func (m *Model) changeFocus(step func(), reason string) {
	from, _ := m.nav.Focused()
	step()
	to, _ := m.nav.Focused()
	if from != to {
		events.Focus.Change(from, to, reason)
	}
}

func (m *Model) focusIndex(i int, reason string) {
	if i < 0 || i >= m.monitors.Len() {
		return
	}
	target := m.monitors.At(i).Key
	m.changeFocus(func() { m.nav.SetFocus(target) }, reason)
}

// activeBuffer is the buffer that scroll keys act on: the debug buffer when
// the debug window is enabled and focused, otherwise the focused monitor.
func (m *Model) activeBuffer() (string, *content.Buffer) {
	if m.dash.DebugFocus && m.dash.DebugEnabled {
		return focus.DebugKey, m.dash.Debug
	}
	mon, ok := m.monitors.Focused()
	if !ok {
		return "", nil
	}
	return mon.Key, mon.Content
}

func (m *Model) moveSelection(move func(*content.Buffer) bool) {
	source, buf := m.activeBuffer()
	if buf == nil {
		return
	}
	if move(buf) {
		idx, _ := buf.Selected()
		events.Selection.Move(source, idx)
	}
}

// pageSize is the number of visible lines in the focused panel.
func (m *Model) pageSize() int {
	mon, ok := m.monitors.Focused()
	if !ok {
		return defaultPageSize
	}
	regions := m.panelRegions()
	if mon.Index >= len(regions) {
		return defaultPageSize
	}
	if rows := panelRows(regions[mon.Index]); rows > 1 {
		return rows - 1
	}
	return 1
}
