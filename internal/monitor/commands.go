package monitor

import (
	"fmt"
	"strings"

	"github.com/iksnae/osa-monitor/internal"
	"github.com/iksnae/osa-monitor/internal/render"
)

// HelpText lists the interactive commands
const HelpText = `Commands:
  clear              clear all logs (asks for confirmation)
  save [name]        save the current session
  export [format]    export logs (json, jsonl, yaml, md)
  filter <category>  show one category, or "all"
  sessions           list recent saved sessions
  load <id>          load a saved session
  graph              show the thought graph
  metrics            show the metrics
  status             show the connection status
  help               show this help
  quit               exit`

// Save stores a snapshot of the current logs and metrics. An empty name
// gets a timestamp-based default.
func (m *Monitor) Save(name string) {
	m.Do(func() { m.saveSession(name) })
}

// Autosave runs one autosave cycle
func (m *Monitor) Autosave() {
	m.Do(m.autosave)
}

// Load replaces the live state with a saved session
func (m *Monitor) Load(id string) {
	m.Do(func() { m.loadSession(id) })
}

// Export writes the live state to a file. An empty format uses the
// configured default.
func (m *Monitor) Export(format string) {
	m.Do(func() { m.exportLogs(format) })
}

// SetFilter changes the category filter
func (m *Monitor) SetFilter(category string) {
	m.Do(func() { m.setFilter(category) })
}

// Clear empties the logs once confirm approves. It reports whether the
// clear was queued; a nil confirm never approves.
func (m *Monitor) Clear(confirm Confirmer) bool {
	if confirm == nil || !confirm("Clear all logs?") {
		return false
	}
	return m.Do(m.clearLogs)
}

// Execute runs one interactive command line. It returns true when the user
// asked to quit.
func (m *Monitor) Execute(line string, confirm Confirmer) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true
	case "clear":
		if !m.Clear(confirm) {
			m.Do(func() { m.notice(render.NoticeInfo, "Clear cancelled") })
		}
	case "save":
		m.Save(strings.Join(args, " "))
	case "export":
		format := ""
		if len(args) > 0 {
			format = args[0]
		}
		m.Export(format)
	case "filter":
		category := internal.CategoryAll
		if len(args) > 0 {
			category = args[0]
		}
		m.SetFilter(category)
	case "sessions":
		m.Do(m.showSessions)
	case "load":
		if len(args) == 0 {
			m.Do(func() { m.notice(render.NoticeWarning, "Usage: load <session-id>") })
			break
		}
		m.Load(args[0])
	case "graph":
		m.Do(m.showGraph)
	case "metrics":
		m.Do(func() { m.display.ShowMetrics(m.metrics) })
	case "status":
		m.Do(m.showStatus)
	case "help", "?":
		m.Do(func() { m.notice(render.NoticeInfo, HelpText) })
	default:
		m.Do(func() { m.notice(render.NoticeWarning, fmt.Sprintf("Unknown command: %s (type help)", cmd)) })
	}
	return false
}
