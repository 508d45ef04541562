package internal

import (
	"fmt"
	"strconv"
	"time"
)

// TimestampLayout is the ISO-8601 layout used for persisted timestamps
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Session is a saved snapshot of the monitor's logs and metrics
type Session struct {
	ID        string          `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	Timestamp string          `json:"timestamp" yaml:"timestamp"`
	Logs      []LogEntry      `json:"logs" yaml:"logs"`
	Metrics   MetricsSnapshot `json:"metrics" yaml:"metrics"`
}

// NewSession snapshots logs and metrics. An empty name gets a
// timestamp-based default.
func NewSession(name string, logs []LogEntry, metrics MetricsSnapshot, now time.Time) Session {
	if name == "" {
		name = DefaultSessionName(now)
	}
	return Session{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Name:      name,
		Timestamp: now.UTC().Format(TimestampLayout),
		Logs:      CloneLogs(logs),
		Metrics:   metrics,
	}
}

// DefaultSessionName is used when the user saves without a name
func DefaultSessionName(now time.Time) string {
	return fmt.Sprintf("Session %s", now.Local().Format("2006-01-02 15:04:05"))
}

// AutosaveName labels sessions written by the autosave timer
func AutosaveName(now time.Time) string {
	return fmt.Sprintf("Autosave %s", now.Local().Format("15:04:05"))
}

// CreatedAt parses the session timestamp
func (s Session) CreatedAt() (time.Time, error) {
	return time.Parse(TimestampLayout, s.Timestamp)
}

// ExportDocument converts a session into the export file layout
func (s Session) ExportDocument() *ExportDocument {
	return &ExportDocument{
		Timestamp:    s.Timestamp,
		Logs:         s.Logs,
		Metrics:      s.Metrics,
		ThoughtNodes: []ThoughtNode{},
	}
}

// CapSessions keeps the newest max sessions, evicting the oldest first
func CapSessions(sessions []Session, max int) []Session {
	if max <= 0 || len(sessions) <= max {
		return sessions
	}
	return append([]Session(nil), sessions[len(sessions)-max:]...)
}

// RecentSessions returns up to n sessions, newest first
func RecentSessions(sessions []Session, n int) []Session {
	if n > len(sessions) {
		n = len(sessions)
	}
	out := make([]Session, 0, n)
	for i := len(sessions) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, sessions[i])
	}
	return out
}

// FindSession looks a session up by ID
func FindSession(sessions []Session, id string) (Session, bool) {
	for _, s := range sessions {
		if s.ID == id {
			return s, true
		}
	}
	return Session{}, false
}

// ExportDocument is the file layout written by export
type ExportDocument struct {
	Timestamp    string          `json:"timestamp" yaml:"timestamp"`
	Logs         []LogEntry      `json:"logs" yaml:"logs"`
	Metrics      MetricsSnapshot `json:"metrics" yaml:"metrics"`
	ThoughtNodes []ThoughtNode   `json:"thoughtNodes" yaml:"thoughtNodes"`
}
