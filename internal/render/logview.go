package render

import (
	"strings"
	"time"

	"github.com/iksnae/osa-monitor/internal"
)

// TimeFormat is the display format for entry timestamps
const TimeFormat = "15:04:05.000"

// RenderedEntry is a log entry prepared for display
type RenderedEntry struct {
	ID       string
	Time     string
	Category string // upper-cased
	Spans    []Span
}

// Text returns the entry as one unstyled line
func (r RenderedEntry) Text() string {
	return r.Time + " [" + r.Category + "] " + PlainText(r.Spans)
}

// RenderEntry formats a stored entry without changing it
func RenderEntry(entry internal.LogEntry) RenderedEntry {
	return RenderedEntry{
		ID:       entry.ID,
		Time:     FormatTime(entry.Timestamp),
		Category: strings.ToUpper(entry.Category),
		Spans:    Enrich(entry.Message),
	}
}

// FormatTime renders a timestamp in 24h form with milliseconds
func FormatTime(t time.Time) string {
	return t.Format(TimeFormat)
}

// LogView tracks the active category filter and the window of rendered
// entries. Filtering never touches the underlying log buffer.
type LogView struct {
	filter string
	window *internal.Ring[RenderedEntry]
}

// NewLogView creates a view keeping at most window rendered entries
func NewLogView(window int, filter string) *LogView {
	if filter == "" {
		filter = internal.CategoryAll
	}
	return &LogView{
		filter: filter,
		window: internal.NewRing[RenderedEntry](window),
	}
}

// Filter returns the active category filter
func (v *LogView) Filter() string {
	return v.filter
}

// SetFilter changes the active filter. Callers rebuild afterwards.
func (v *LogView) SetFilter(filter string) {
	if filter == "" {
		filter = internal.CategoryAll
	}
	v.filter = strings.ToLower(filter)
}

// Matches reports whether entry passes the active filter
func (v *LogView) Matches(entry internal.LogEntry) bool {
	return v.filter == internal.CategoryAll || strings.EqualFold(entry.Category, v.filter)
}

// Append renders entry into the window when it passes the filter. The oldest
// rendered entry is pruned once the window is full.
func (v *LogView) Append(entry internal.LogEntry) (RenderedEntry, bool) {
	if !v.Matches(entry) {
		return RenderedEntry{}, false
	}
	r := RenderEntry(entry)
	v.window.Push(r)
	return r, true
}

// Rebuild re-renders the window from scratch and returns its contents
func (v *LogView) Rebuild(entries []internal.LogEntry) []RenderedEntry {
	matched := make([]RenderedEntry, 0, v.window.Cap())
	for i := len(entries) - 1; i >= 0 && len(matched) < v.window.Cap(); i-- {
		if v.Matches(entries[i]) {
			matched = append(matched, RenderEntry(entries[i]))
		}
	}
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	v.window.Reset(matched)
	return v.window.Items()
}

// Entries returns the rendered window, oldest first
func (v *LogView) Entries() []RenderedEntry {
	return v.window.Items()
}

// Len returns the number of rendered entries
func (v *LogView) Len() int {
	return v.window.Len()
}

// Clear empties the rendered window
func (v *LogView) Clear() {
	v.window.Reset(nil)
}
