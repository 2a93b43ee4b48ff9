package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/logtail-dash/internal/logging"
	"github.com/atomicstack/logtail-dash/internal/logging/events"
	"github.com/atomicstack/logtail-dash/internal/watch"
)

// waitForLine receives exactly one event, so input and ticks queued behind a
// busy file still reach Update between lines.
func waitForLine(ch <-chan watch.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return watchDoneMsg{}
		}
		if evt.Err != nil {
			return watchErrMsg{err: evt.Err}
		}
		return lineMsg{line: evt.Line}
	}
}

type lineMsg struct {
	line watch.Line
}

type watchErrMsg struct {
	err error
}

type watchDoneMsg struct{}

func (m *Model) handleLineMsg(msg tea.Msg) tea.Cmd {
	line, ok := msg.(lineMsg)
	if !ok {
		return nil
	}
	res := m.dispatcher.Handle(watch.Event{Line: line.line})
	if res.Unknown {
		events.Line.Unregistered(res.Source)
		m.dash.Debugf("line for unregistered source %s", res.Source)
	}
	return m.nextLine()
}

func (m *Model) handleWatchErrMsg(msg tea.Msg) tea.Cmd {
	failure, ok := msg.(watchErrMsg)
	if !ok {
		return nil
	}
	events.Watch.Error(failure.err)
	logging.Error(failure.err)
	m.err = failure.err
	m.quitting = true
	return tea.Quit
}

func (m *Model) handleWatchDoneMsg(msg tea.Msg) tea.Cmd {
	events.Watch.Done()
	m.dash.Debugf("watcher stopped")
	m.events = nil
	return nil
}
