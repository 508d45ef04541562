package render

import (
	"fmt"
	"testing"
	"time"

	"github.com/iksnae/osa-monitor/internal"
)

func makeEntries(n int, category func(i int) string) []internal.LogEntry {
	base := time.Date(2025, 10, 9, 8, 0, 0, 0, time.UTC)
	out := make([]internal.LogEntry, n)
	for i := range out {
		out[i] = internal.LogEntry{
			ID:        fmt.Sprint(i + 1),
			Category:  category(i),
			Message:   fmt.Sprintf("entry %d", i+1),
			Timestamp: base.Add(time.Duration(i) * time.Millisecond),
		}
	}
	return out
}

func TestRenderEntry(t *testing.T) {
	entry := internal.LogEntry{
		ID:        "1",
		Category:  "thinking",
		Message:   "Confidence level: 87% success",
		Timestamp: time.Date(2025, 10, 9, 14, 3, 7, 45_000_000, time.UTC),
	}

	r := RenderEntry(entry)
	if r.Category != "THINKING" {
		t.Errorf("Category = %q, want THINKING", r.Category)
	}
	if r.Time != "14:03:07.045" {
		t.Errorf("Time = %q, want 14:03:07.045", r.Time)
	}
	if got := r.Text(); got != "14:03:07.045 [THINKING] Confidence level: 87% ✅ success" {
		t.Errorf("Text() = %q", got)
	}
	if entry.Message != "Confidence level: 87% success" {
		t.Error("stored message was mutated")
	}
}

func TestLogView_AppendWindow(t *testing.T) {
	v := NewLogView(100, "")
	for _, e := range makeEntries(150, func(int) string { return "system" }) {
		if _, ok := v.Append(e); !ok {
			t.Fatalf("Append(%s) filtered out", e.ID)
		}
	}

	if v.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", v.Len())
	}
	entries := v.Entries()
	if entries[0].ID != "51" || entries[99].ID != "150" {
		t.Errorf("window = %s..%s, want 51..150", entries[0].ID, entries[99].ID)
	}
}

func TestLogView_Filter(t *testing.T) {
	v := NewLogView(100, "all")
	if v.Filter() != internal.CategoryAll {
		t.Fatalf("Filter() = %q", v.Filter())
	}

	v.SetFilter("ERROR")
	if v.Filter() != "error" {
		t.Errorf("SetFilter(ERROR) -> %q, want error", v.Filter())
	}

	if _, ok := v.Append(internal.LogEntry{Category: "thinking"}); ok {
		t.Error("thinking entry should be filtered out")
	}
	if _, ok := v.Append(internal.LogEntry{Category: "error"}); !ok {
		t.Error("error entry should be rendered")
	}

	v.SetFilter("")
	if v.Filter() != internal.CategoryAll {
		t.Errorf("SetFilter(\"\") -> %q, want all", v.Filter())
	}
}

func TestLogView_Rebuild(t *testing.T) {
	tests := []struct {
		name     string
		entries  []internal.LogEntry
		filter   string
		wantLen  int
		wantLast string
	}{
		{
			name:     "few matches",
			entries:  makeEntries(1000, func(i int) string { return map[bool]string{true: "error", false: "system"}[i%40 == 0] }),
			filter:   "error",
			wantLen:  25,
			wantLast: "961",
		},
		{
			name:     "more matches than window",
			entries:  makeEntries(1000, func(int) string { return "thinking" }),
			filter:   "thinking",
			wantLen:  100,
			wantLast: "1000",
		},
		{
			name:    "no matches",
			entries: makeEntries(10, func(int) string { return "system" }),
			filter:  "blocker",
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewLogView(100, tt.filter)
			got := v.Rebuild(tt.entries)
			if len(got) != tt.wantLen || v.Len() != tt.wantLen {
				t.Fatalf("Rebuild() len = %d (Len %d), want %d", len(got), v.Len(), tt.wantLen)
			}
			if tt.wantLen > 0 && got[len(got)-1].ID != tt.wantLast {
				t.Errorf("last = %s, want %s", got[len(got)-1].ID, tt.wantLast)
			}
			for i := 1; i < len(got); i++ {
				if got[i].Time < got[i-1].Time {
					t.Fatalf("entries out of order at %d", i)
				}
			}
		})
	}
}

func TestLogView_Clear(t *testing.T) {
	v := NewLogView(10, "")
	v.Append(internal.LogEntry{Category: "system"})
	v.Clear()
	if v.Len() != 0 {
		t.Errorf("Len() after Clear = %d", v.Len())
	}
}
