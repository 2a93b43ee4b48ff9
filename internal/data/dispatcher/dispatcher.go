package dispatcher

import (
	"github.com/atomicstack/logtail-dash/internal/monitor"
	"github.com/atomicstack/logtail-dash/internal/watch"
)

type Result struct {
	Appended bool
	Unknown  bool
	Source   string
	Index    int
	Err      error
}

type Dispatcher struct {
	monitors *monitor.Registry
}

func New(r *monitor.Registry) *Dispatcher {
	return &Dispatcher{monitors: r}
}

// Handle routes a watcher event to the monitor for its source. Lines for a
// source that was never registered are dropped and reported as Unknown.
func (d *Dispatcher) Handle(evt watch.Event) Result {
	if evt.Err != nil {
		return Result{Err: evt.Err, Index: -1}
	}
	line := evt.Line
	m, ok := d.monitors.Get(line.Source)
	if !ok {
		return Result{Source: line.Source, Unknown: true, Index: -1}
	}
	m.Content.Append(line.Text)
	return Result{Appended: true, Source: line.Source, Index: m.Index}
}
