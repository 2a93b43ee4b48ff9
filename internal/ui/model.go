package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/logtail-dash/internal/dash"
	"github.com/atomicstack/logtail-dash/internal/data/dispatcher"
	"github.com/atomicstack/logtail-dash/internal/focus"
	"github.com/atomicstack/logtail-dash/internal/monitor"
	"github.com/atomicstack/logtail-dash/internal/theme"
	"github.com/atomicstack/logtail-dash/internal/watch"
)

const (
	defaultTickRate = 200 * time.Millisecond
	infoDuration    = 3 * time.Second
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

type tickMsg time.Time

// Options configures a Model. A nil Events channel disables line waiting.
type Options struct {
	Registry *monitor.Registry
	State    *dash.State
	Events   <-chan watch.Event
	TickRate time.Duration
}

// focusTarget routes navigator changes to monitor flags and the debug flag.
type focusTarget struct {
	monitors *monitor.Registry
	state    *dash.State
}

func (f focusTarget) SetFocused(key string, focused bool) { f.monitors.SetFocused(key, focused) }
func (f focusTarget) SetDebugFocus(focused bool)          { f.state.SetDebugFocus(focused) }

// Model implements the Bubble Tea model for the log dashboard.
type Model struct {
	monitors   *monitor.Registry
	dash       *dash.State
	nav        *focus.Navigator
	dispatcher *dispatcher.Dispatcher

	events   <-chan watch.Event
	tickRate time.Duration

	// nextLine and nextTick produce the self re-arming commands; the test
	// harness replaces them.
	nextLine func() tea.Cmd
	nextTick func() tea.Cmd

	width  int
	height int

	keys      keyMap
	help      help.Model
	prompt    textinput.Model
	prompting bool

	infoMsg    string
	infoExpire time.Time
	err        error
	quitting   bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds a dashboard over the registry's monitors. Nothing is
// focused until the user navigates.
func NewModel(opts Options) *Model {
	state := opts.State
	if state == nil {
		state = dash.NewState(dash.Horizontal, false)
	}
	registry := opts.Registry
	if registry == nil {
		registry, _ = monitor.NewRegistry(nil, 1)
	}
	tickRate := opts.TickRate
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}

	prompt := textinput.New()
	prompt.Prompt = "jump> "
	prompt.Placeholder = "file name"
	prompt.PromptStyle = *styles.Prompt
	prompt.PlaceholderStyle = *styles.PromptPlaceholder
	prompt.CharLimit = 256
	prompt.Cursor.SetMode(cursor.CursorStatic)

	m := &Model{
		monitors:   registry,
		dash:       state,
		nav:        focus.New(registry.Keys(), focusTarget{monitors: registry, state: state}),
		dispatcher: dispatcher.New(registry),
		events:     opts.Events,
		tickRate:   tickRate,
		keys:       defaultKeyMap(),
		help:       help.New(),
		prompt:     prompt,
	}
	m.nextLine = func() tea.Cmd {
		if m.events == nil {
			return nil
		}
		return waitForLine(m.events)
	}
	m.nextTick = func() tea.Cmd {
		return tea.Tick(m.tickRate, func(t time.Time) tea.Msg { return tickMsg(t) })
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if cmd := m.nextLine(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.nextTick(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	} else if m.prompting {
		// cursor blink and other textinput internals
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Err returns the fatal error that stopped the model, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
		reflect.TypeOf(lineMsg{}):           m.handleLineMsg,
		reflect.TypeOf(watchErrMsg{}):       m.handleWatchErrMsg,
		reflect.TypeOf(watchDoneMsg{}):      m.handleWatchDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleTickMsg(msg tea.Msg) tea.Cmd {
	m.currentInfo()
	return m.nextTick()
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoDuration)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
