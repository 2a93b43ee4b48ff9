package monitor

import (
	"fmt"

	"github.com/atomicstack/logtail-dash/internal/content"
)

// Monitor pairs a watched source with its content buffer and focus flag.
type Monitor struct {
	Key      string // canonical path
	Name     string // path as supplied by the user
	Index    int
	HasFocus bool
	Content  *content.Buffer
}

// Source describes a file to monitor.
type Source struct {
	Key  string
	Name string
}

// Registry is the fixed, creation-ordered set of monitors.
type Registry struct {
	monitors []*Monitor
	index    map[string]int
}

// NewRegistry builds one Monitor per source, in the order given. Each Monitor
// takes its position as its Index. Duplicate keys are rejected.
func NewRegistry(sources []Source, maxLines int) (*Registry, error) {
	r := &Registry{
		monitors: make([]*Monitor, 0, len(sources)),
		index:    make(map[string]int, len(sources)),
	}
	for i, src := range sources {
		if _, dup := r.index[src.Key]; dup {
			return nil, fmt.Errorf("duplicate source %s", src.Key)
		}
		name := src.Name
		if name == "" {
			name = src.Key
		}
		r.monitors = append(r.monitors, &Monitor{
			Key:     src.Key,
			Name:    name,
			Index:   i,
			Content: content.New(maxLines),
		})
		r.index[src.Key] = i
	}
	return r, nil
}

// Get returns the monitor for key.
func (r *Registry) Get(key string) (*Monitor, bool) {
	i := r.IndexOf(key)
	if i < 0 {
		return nil, false
	}
	return r.monitors[i], true
}

// At returns the monitor at position i.
func (r *Registry) At(i int) *Monitor {
	return r.monitors[i]
}

// IndexOf returns the position of key, or -1.
func (r *Registry) IndexOf(key string) int {
	if r == nil {
		return -1
	}
	if i, ok := r.index[key]; ok {
		return i
	}
	return -1
}

// Len returns the number of monitors.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.monitors)
}

// Monitors returns the monitors in creation order. The slice is a copy; the
// monitors are shared.
func (r *Registry) Monitors() []*Monitor {
	dup := make([]*Monitor, len(r.monitors))
	copy(dup, r.monitors)
	return dup
}

// Keys returns the source keys in creation order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.monitors))
	for i, m := range r.monitors {
		keys[i] = m.Key
	}
	return keys
}

// SetFocused sets the focus flag of the monitor for key.
func (r *Registry) SetFocused(key string, focused bool) {
	if m, ok := r.Get(key); ok {
		m.HasFocus = focused
	}
}

// Focused returns the monitor that currently has focus.
func (r *Registry) Focused() (*Monitor, bool) {
	for _, m := range r.monitors {
		if m.HasFocus {
			return m, true
		}
	}
	return nil, false
}
