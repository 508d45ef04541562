package internal

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Log categories emitted by the OSA event stream
const (
	CategoryThinking     = "thinking"
	CategoryLearning     = "learning"
	CategoryExecuting    = "executing"
	CategoryDelegation   = "delegation"
	CategoryError        = "error"
	CategorySystem       = "system"
	CategoryArchitecture = "architecture"
	CategoryPattern      = "pattern"
	CategoryBlocker      = "blocker"
	CategoryAlternative  = "alternative"

	// CategoryAll is the filter value that matches every category
	CategoryAll = "all"
)

// Categories lists the known log categories in display order
var Categories = []string{
	CategoryThinking,
	CategoryLearning,
	CategoryExecuting,
	CategoryDelegation,
	CategoryError,
	CategorySystem,
	CategoryArchitecture,
	CategoryPattern,
	CategoryBlocker,
	CategoryAlternative,
}

// ValidFilter reports whether category is a known category or CategoryAll
func ValidFilter(category string) bool {
	if category == CategoryAll {
		return true
	}
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// LogEntry represents a single captured log line
type LogEntry struct {
	ID        string                 `json:"id" yaml:"id"`
	Category  string                 `json:"category" yaml:"category"`
	Message   string                 `json:"message" yaml:"message"`
	Timestamp time.Time              `json:"timestamp" yaml:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// NewLogEntry stamps a log entry with the capture time and a fresh ID
func NewLogEntry(category, message string, metadata map[string]interface{}, now time.Time) LogEntry {
	return LogEntry{
		ID:        NewEntryID(now),
		Category:  category,
		Message:   message,
		Timestamp: now,
		Metadata:  metadata,
	}
}

// NewEntryID builds a time-plus-random identifier. Entries captured in the
// same millisecond only differ by the random suffix.
func NewEntryID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

// MetricsSnapshot holds the current dashboard counters
type MetricsSnapshot struct {
	Thoughts   int     `json:"thoughts" yaml:"thoughts"`
	Chains     int     `json:"chains" yaml:"chains"`
	Contexts   int     `json:"contexts" yaml:"contexts"`
	Blockers   int     `json:"blockers" yaml:"blockers"`
	Patterns   int     `json:"patterns" yaml:"patterns"`
	Efficiency float64 `json:"efficiency" yaml:"efficiency"` // 0-100
}

// MetricsUpdate is a partial metrics payload; nil fields are left untouched
type MetricsUpdate struct {
	Thoughts   *float64 `json:"thoughts,omitempty"`
	Chains     *float64 `json:"chains,omitempty"`
	Contexts   *float64 `json:"contexts,omitempty"`
	Blockers   *float64 `json:"blockers,omitempty"`
	Patterns   *float64 `json:"patterns,omitempty"`
	Efficiency *float64 `json:"efficiency,omitempty"`
}

// Merge shallow-merges the fields present in u into m
func (m *MetricsSnapshot) Merge(u MetricsUpdate) {
	if u.Thoughts != nil {
		m.Thoughts = roundCount(*u.Thoughts)
	}
	if u.Chains != nil {
		m.Chains = roundCount(*u.Chains)
	}
	if u.Contexts != nil {
		m.Contexts = roundCount(*u.Contexts)
	}
	if u.Blockers != nil {
		m.Blockers = roundCount(*u.Blockers)
	}
	if u.Patterns != nil {
		m.Patterns = roundCount(*u.Patterns)
	}
	if u.Efficiency != nil {
		m.Efficiency = ClampEfficiency(*u.Efficiency)
	}
}

// Update returns a full update carrying every field of m
func (m MetricsSnapshot) Update() MetricsUpdate {
	f := func(v float64) *float64 { return &v }
	return MetricsUpdate{
		Thoughts:   f(float64(m.Thoughts)),
		Chains:     f(float64(m.Chains)),
		Contexts:   f(float64(m.Contexts)),
		Blockers:   f(float64(m.Blockers)),
		Patterns:   f(float64(m.Patterns)),
		Efficiency: f(m.Efficiency),
	}
}

// ClampEfficiency bounds an efficiency value to 0-100
func ClampEfficiency(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func roundCount(v float64) int {
	return int(math.Round(v))
}

// ThoughtNode represents a node in the thought graph
type ThoughtNode struct {
	ID        string    `json:"id" yaml:"id"`
	Type      string    `json:"type" yaml:"type"`
	Label     string    `json:"label" yaml:"label"`
	Content   string    `json:"content" yaml:"content"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewThoughtNode builds a node whose label is derived from its type
func NewThoughtNode(id, thoughtType, content string, now time.Time) ThoughtNode {
	return ThoughtNode{
		ID:        id,
		Type:      thoughtType,
		Label:     ThoughtLabel(thoughtType),
		Content:   content,
		Timestamp: now,
	}
}

// ThoughtLabel returns the first four characters of a type tag, upper-cased
func ThoughtLabel(thoughtType string) string {
	r := []rune(thoughtType)
	if len(r) > 4 {
		r = r[:4]
	}
	return strings.ToUpper(string(r))
}

func cloneMetadata(md map[string]interface{}) map[string]interface{} {
	if md == nil {
		return nil
	}
	out := make(map[string]interface{}, len(md))
	for k, v := range md {
		out[k] = v
	}
	return out
}

// CloneLogs returns a point-in-time copy of entries
func CloneLogs(entries []LogEntry) []LogEntry {
	out := make([]LogEntry, len(entries))
	for i, e := range entries {
		e.Metadata = cloneMetadata(e.Metadata)
		out[i] = e
	}
	return out
}
