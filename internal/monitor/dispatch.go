package monitor

import (
	"github.com/iksnae/osa-monitor/internal"
)

// handleMessage decodes one payload from the stream of generation gen.
// Malformed payloads are dropped and counted; unknown kinds are ignored.
func (m *Monitor) handleMessage(gen int, data []byte) {
	if m.stopped || gen != m.generation {
		return
	}
	ev, err := internal.DecodeEvent(data)
	if err != nil {
		m.dropped++
		m.log.Warn("dropping malformed payload", "error", err, "bytes", len(data), "dropped", m.dropped)
		return
	}
	if ev == nil {
		m.log.Debug("ignoring unknown event", "bytes", len(data))
		return
	}
	m.dispatch(ev)
}

func (m *Monitor) dispatch(ev internal.Event) {
	switch e := ev.(type) {
	case internal.LogEvent:
		m.appendLogEntry(internal.NewLogEntry(e.Category, e.Message, e.Metadata, m.now()))
	case internal.MetricsEvent:
		m.metrics.Merge(e.Metrics)
		m.display.ShowMetrics(m.metrics)
	case internal.ThoughtEvent:
		id := e.Thought.IDString()
		if id == "" {
			id = internal.NewEntryID(m.now())
		}
		m.thoughts.Push(internal.NewThoughtNode(id, e.Thought.Type, e.Thought.Content, m.now()))
		m.graphDirty = true
	case internal.StatusEvent:
		status := make(map[string]interface{}, len(e.Status))
		for k, v := range e.Status {
			status[k] = v
		}
		m.system = status
		m.showStatus()
	}
}

// appendLogEntry stores entry and renders it when it passes the filter
func (m *Monitor) appendLogEntry(entry internal.LogEntry) {
	m.logs.Push(entry)
	if r, ok := m.view.Append(entry); ok {
		m.display.ShowLog(r)
	}
}

// appendLog records a monitor-generated entry
func (m *Monitor) appendLog(category, message string) {
	m.appendLogEntry(internal.NewLogEntry(category, message, nil, m.now()))
}
