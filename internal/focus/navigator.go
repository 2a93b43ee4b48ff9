package focus

// DebugKey is the reserved key that routes focus to the debug window instead
// of a source.
const DebugKey = "Debug Window"

// Target receives focus changes from a Navigator.
type Target interface {
	SetFocused(key string, focused bool)
	SetDebugFocus(focused bool)
}

// Navigator tracks which source, if any, has focus over a fixed ordered list
// of keys. Next and Previous wrap at the ends of the list.
type Navigator struct {
	keys    []string
	pos     map[string]int
	current string
	target  Target
}

// New returns an unfocused navigator over keys. target may be nil.
func New(keys []string, target Target) *Navigator {
	dup := make([]string, len(keys))
	copy(dup, keys)
	pos := make(map[string]int, len(dup))
	for i, key := range dup {
		pos[key] = i
	}
	return &Navigator{keys: dup, pos: pos, target: target}
}

// Focused returns the focused key.
func (n *Navigator) Focused() (string, bool) {
	if n.current == "" {
		return "", false
	}
	return n.current, true
}

// SetFocus moves focus to key. DebugKey focuses the debug window; a key the
// navigator does not know leaves it unfocused.
func (n *Navigator) SetFocus(key string) {
	n.clear()
	if key == DebugKey {
		n.current = DebugKey
		if n.target != nil {
			n.target.SetDebugFocus(true)
		}
		return
	}
	if _, ok := n.pos[key]; !ok {
		return
	}
	n.current = key
	if n.target != nil {
		n.target.SetFocused(key, true)
	}
}

// Next focuses the key after the current one, wrapping from the last to the
// first. From no focus (or debug focus) it focuses the first key.
func (n *Navigator) Next() {
	if len(n.keys) == 0 {
		return
	}
	i, ok := n.pos[n.current]
	if !ok {
		n.SetFocus(n.keys[0])
		return
	}
	n.SetFocus(n.keys[(i+1)%len(n.keys)])
}

// Previous focuses the key before the current one, wrapping from the first to
// the last. From no focus (or debug focus) it focuses the last key.
func (n *Navigator) Previous() {
	if len(n.keys) == 0 {
		return
	}
	i, ok := n.pos[n.current]
	if !ok {
		n.SetFocus(n.keys[len(n.keys)-1])
		return
	}
	n.SetFocus(n.keys[(i-1+len(n.keys))%len(n.keys)])
}

func (n *Navigator) clear() {
	if n.current == "" {
		return
	}
	if n.target != nil {
		if n.current == DebugKey {
			n.target.SetDebugFocus(false)
		} else {
			n.target.SetFocused(n.current, false)
		}
	}
	n.current = ""
}
