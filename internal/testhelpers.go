package internal

import (
	"fmt"
	"time"
)

// CreateTestSession creates a test session with sample data
func CreateTestSession(id string) Session {
	now := time.Now()
	return Session{
		ID:        id,
		Name:      "Test Session " + id,
		Timestamp: now.UTC().Format(TimestampLayout),
		Logs: []LogEntry{
			NewLogEntry(CategorySystem, "Connected to OSA", nil, now),
			NewLogEntry(CategoryThinking, "Analyzing user goal: Build a viral app", map[string]interface{}{"depth": 0.0, "confidence": 0.5}, now),
			NewLogEntry(CategoryError, "Database connection timeout", nil, now),
		},
		Metrics: MetricsSnapshot{Thoughts: 12, Chains: 3, Contexts: 4, Blockers: 1, Patterns: 2, Efficiency: 55},
	}
}

// CreateTestSessionWithLogs creates a test session with custom logs
func CreateTestSessionWithLogs(id string, logs []LogEntry) Session {
	return Session{
		ID:        id,
		Name:      "Test Session " + id,
		Timestamp: time.Now().UTC().Format(TimestampLayout),
		Logs:      logs,
	}
}

// CreateTestLogs creates n log entries cycling through the known categories
func CreateTestLogs(n int) []LogEntry {
	now := time.Now()
	logs := make([]LogEntry, n)
	for i := range logs {
		category := Categories[i%len(Categories)]
		logs[i] = NewLogEntry(category, fmt.Sprintf("entry %d", i+1), nil, now)
	}
	return logs
}

// CreateTestExportDocument creates an export document with one thought node
func CreateTestExportDocument() *ExportDocument {
	s := CreateTestSession("export")
	doc := s.ExportDocument()
	doc.ThoughtNodes = []ThoughtNode{NewThoughtNode("1", "blocker", "Database connection timeout", time.Now())}
	return doc
}
