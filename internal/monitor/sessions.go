package monitor

import (
	"fmt"
	"strings"

	"github.com/iksnae/osa-monitor/internal"
	"github.com/iksnae/osa-monitor/internal/export"
	"github.com/iksnae/osa-monitor/internal/render"
)

func (m *Monitor) loadSessions() {
	sessions, err := m.store.LoadSessions()
	if err != nil {
		m.log.Error("failed to load sessions", "error", err)
		m.notice(render.NoticeWarning, fmt.Sprintf("Could not load saved sessions: %v", err))
		sessions = []internal.Session{}
	}
	m.sessions = sessions
}

// persist writes the session list. Failures are reported, never fatal.
func (m *Monitor) persist(sessions []internal.Session) bool {
	m.sessions = sessions
	if err := m.store.SaveSessions(sessions); err != nil {
		m.log.Error("failed to save sessions", "error", err)
		m.notice(render.NoticeError, fmt.Sprintf("Failed to save session: %v", err))
		return false
	}
	return true
}

func (m *Monitor) showSessions() {
	m.display.ShowSessions(internal.RecentSessions(m.sessions, RecentSessionCount))
}

// saveSession snapshots the current logs and metrics under name
func (m *Monitor) saveSession(name string) {
	s := internal.NewSession(name, m.logs.Items(), m.metrics, m.now())
	sessions := append(m.sessions, s)
	if m.cfg.Monitor.CapExplicitSaves {
		sessions = internal.CapSessions(sessions, m.cfg.Monitor.SessionCap)
	}
	if m.persist(sessions) {
		m.notice(render.NoticeSuccess, fmt.Sprintf("Session saved: %s", s.Name))
	}
	m.showSessions()
}

// autosave saves a capped snapshot, skipping when there is nothing to save
func (m *Monitor) autosave() {
	if m.logs.Len() == 0 {
		return
	}
	now := m.now()
	s := internal.NewSession(internal.AutosaveName(now), m.logs.Items(), m.metrics, now)
	sessions := internal.CapSessions(append(m.sessions, s), m.cfg.Monitor.SessionCap)
	if m.persist(sessions) {
		m.log.Info("autosaved session", "id", s.ID, "logs", len(s.Logs))
	}
	m.showSessions()
}

// loadSession replaces the live logs and metrics with a saved snapshot
func (m *Monitor) loadSession(id string) {
	s, ok := internal.FindSession(m.sessions, id)
	if !ok {
		m.notice(render.NoticeWarning, fmt.Sprintf("Session not found: %s", id))
		return
	}
	m.logs.Reset(internal.CloneLogs(s.Logs))
	m.metrics = s.Metrics
	m.display.ResetLogs(m.view.Rebuild(m.logs.Items()))
	m.display.ShowMetrics(m.metrics)
	m.notice(render.NoticeSuccess, fmt.Sprintf("Loaded session: %s", s.Name))
}

// exportLogs writes the current state to a timestamped file
func (m *Monitor) exportLogs(format string) {
	if format == "" {
		format = m.cfg.Export.Format
	}
	exp, err := export.NewExporter(format)
	if err != nil {
		m.notice(render.NoticeError, err.Error())
		return
	}

	now := m.now()
	doc := &internal.ExportDocument{
		Timestamp:    now.UTC().Format(internal.TimestampLayout),
		Logs:         m.logs.Items(),
		Metrics:      m.metrics,
		ThoughtNodes: m.thoughts.Items(),
	}
	path, err := export.WriteFile(exp, doc, m.cfg.Export.Dir, m.cfg.Export.Prefix, now)
	if err != nil {
		m.log.Error("export failed", "error", err)
		m.notice(render.NoticeError, fmt.Sprintf("Export failed: %v", err))
		return
	}
	m.notice(render.NoticeSuccess, fmt.Sprintf("Exported %d logs to %s", len(doc.Logs), path))
}

// clearLogs empties the log buffer and view, leaving a marker entry
func (m *Monitor) clearLogs() {
	m.logs.Reset(nil)
	m.view.Clear()
	m.display.ResetLogs(nil)
	m.appendLog(internal.CategorySystem, "Logs cleared")
}

// setFilter changes the category filter and redraws the view
func (m *Monitor) setFilter(category string) {
	category = strings.ToLower(category)
	if !internal.ValidFilter(category) {
		m.notice(render.NoticeWarning, fmt.Sprintf("Unknown category: %s", category))
		return
	}
	m.view.SetFilter(category)
	m.display.ResetLogs(m.view.Rebuild(m.logs.Items()))
}
