package events

import "github.com/atomicstack/logtail-dash/internal/logging"

type SourceTracer struct{}

type WatchTracer struct{}

type LineTracer struct{}

var (
	Source = SourceTracer{}
	Watch  = WatchTracer{}
	Line   = LineTracer{}
)

func (SourceTracer) Registered(key, name string, index int) {
	logging.Trace("source.registered", map[string]interface{}{"key": key, "name": name, "index": index})
}

func (SourceTracer) Loaded(key string, lines, kept int) {
	logging.Trace("source.loaded", map[string]interface{}{"key": key, "lines": lines, "kept": kept})
}

func (WatchTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("watch.error", map[string]interface{}{"error": err.Error()})
}

func (WatchTracer) Done() {
	logging.Trace("watch.done", nil)
}

func (LineTracer) Unregistered(source string) {
	logging.Trace("line.unregistered", map[string]interface{}{"source": source})
}

func (SourceTracer) Summary(rows []string) {
	logging.Trace("source.summary", map[string]interface{}{"sources": rows})
}
