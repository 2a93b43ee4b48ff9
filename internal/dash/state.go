package dash

import (
	"fmt"
	"strings"

	"github.com/atomicstack/logtail-dash/internal/content"
)

// Mode is the dashboard layout orientation.
type Mode int

const (
	// Horizontal stacks panels top to bottom.
	Horizontal Mode = iota
	// Vertical places panels side by side.
	Vertical
)

func (m Mode) String() string {
	if m == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseMode converts a layout name to a Mode. The empty string is Horizontal.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown layout %q", s)
}

const debugCapacity = 100

// State holds dashboard-wide view state.
type State struct {
	Mode         Mode
	Debug        *content.Buffer
	DebugFocus   bool
	DebugEnabled bool
}

// NewState returns a State in the given mode with an empty debug buffer.
func NewState(mode Mode, debugEnabled bool) *State {
	return &State{
		Mode:         mode,
		Debug:        content.New(debugCapacity),
		DebugEnabled: debugEnabled,
	}
}

// SetMode switches the layout and reports whether it changed.
func (s *State) SetMode(mode Mode) bool {
	if s.Mode == mode {
		return false
	}
	s.Mode = mode
	return true
}

// ToggleMode flips between Horizontal and Vertical.
func (s *State) ToggleMode() {
	if s.Mode == Horizontal {
		s.Mode = Vertical
	} else {
		s.Mode = Horizontal
	}
}

// SetDebugFocus records whether the debug window has focus.
func (s *State) SetDebugFocus(focused bool) {
	s.DebugFocus = focused
}

// Debugf appends a formatted line to the debug buffer.
func (s *State) Debugf(format string, args ...any) {
	s.Debug.Append(fmt.Sprintf(format, args...))
}
