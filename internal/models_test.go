package internal

import (
	"strings"
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

func TestMetricsSnapshot_MergeIsShallow(t *testing.T) {
	m := MetricsSnapshot{Thoughts: 1, Chains: 1, Contexts: 3, Blockers: 4, Patterns: 5, Efficiency: 60}

	m.Merge(MetricsUpdate{Thoughts: floatPtr(5)})
	m.Merge(MetricsUpdate{Chains: floatPtr(2)})

	want := MetricsSnapshot{Thoughts: 5, Chains: 2, Contexts: 3, Blockers: 4, Patterns: 5, Efficiency: 60}
	if m != want {
		t.Errorf("Merge() = %+v, want %+v", m, want)
	}
}

func TestMetricsSnapshot_MergeClampsEfficiency(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 150, want: 100},
		{in: -3, want: 0},
		{in: 42.5, want: 42.5},
	}
	for _, tt := range tests {
		var m MetricsSnapshot
		m.Merge(MetricsUpdate{Efficiency: floatPtr(tt.in)})
		if m.Efficiency != tt.want {
			t.Errorf("Merge(efficiency=%v) = %v, want %v", tt.in, m.Efficiency, tt.want)
		}
	}
}

func TestMetricsSnapshot_Update(t *testing.T) {
	src := MetricsSnapshot{Thoughts: 9, Patterns: 2, Efficiency: 12.5}
	var dst MetricsSnapshot
	dst.Merge(src.Update())
	if dst != src {
		t.Errorf("Merge(Update()) = %+v, want %+v", dst, src)
	}
}

func TestThoughtLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "blocker", want: "BLOC"},
		{in: "pattern", want: "PATT"},
		{in: "ai", want: "AI"},
		{in: "", want: ""},
		{in: "dédoublement", want: "DÉDO"},
	}
	for _, tt := range tests {
		if got := ThoughtLabel(tt.in); got != tt.want {
			t.Errorf("ThoughtLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewLogEntry(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	e := NewLogEntry(CategoryThinking, "hello", map[string]interface{}{"depth": 1}, now)

	if !strings.HasPrefix(e.ID, "1700000000123-") {
		t.Errorf("ID = %q, want epoch-ms prefix", e.ID)
	}
	if !e.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", e.Timestamp, now)
	}
	if e.Category != CategoryThinking || e.Message != "hello" {
		t.Errorf("entry = %+v", e)
	}
}

func TestCloneLogs(t *testing.T) {
	orig := []LogEntry{{ID: "1", Metadata: map[string]interface{}{"k": "v"}}}
	clone := CloneLogs(orig)
	clone[0].Metadata["k"] = "changed"
	clone[0].ID = "2"

	if orig[0].Metadata["k"] != "v" || orig[0].ID != "1" {
		t.Error("CloneLogs() should not share entries or metadata with the source")
	}
}

func TestValidFilter(t *testing.T) {
	tests := []struct {
		category string
		want     bool
	}{
		{CategoryAll, true},
		{CategoryThinking, true},
		{CategoryAlternative, true},
		{"THINKING", false},
		{"gossip", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidFilter(tt.category); got != tt.want {
			t.Errorf("ValidFilter(%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}
