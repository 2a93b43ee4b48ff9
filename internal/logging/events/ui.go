package events

import "github.com/atomicstack/logtail-dash/internal/logging"

type FocusTracer struct{}

type LayoutTracer struct{}

type SelectionTracer struct{}

type PromptTracer struct{}

var (
	Focus     = FocusTracer{}
	Layout    = LayoutTracer{}
	Selection = SelectionTracer{}
	Prompt    = PromptTracer{}
)

func (FocusTracer) Change(from, to, reason string) {
	logging.Trace("focus.change", map[string]interface{}{"from": from, "to": to, "reason": reason})
}

func (LayoutTracer) Change(mode string) {
	logging.Trace("layout.change", map[string]interface{}{"mode": mode})
}

func (SelectionTracer) Move(source string, index int) {
	logging.Trace("selection.move", map[string]interface{}{"source": source, "index": index})
}

func (PromptTracer) Open() {
	logging.Trace("prompt.open", nil)
}

func (PromptTracer) Jump(query, target string) {
	logging.Trace("prompt.jump", map[string]interface{}{"query": query, "target": target})
}

func (PromptTracer) Cancel(query string) {
	logging.Trace("prompt.cancel", map[string]interface{}{"query": query})
}
