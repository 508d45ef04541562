package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/osa-monitor/internal"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// NoticeLevel grades user-facing notices
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

var noticeIcons = map[NoticeLevel]string{
	NoticeInfo:    "ℹ",
	NoticeSuccess: "✓",
	NoticeWarning: "⚠",
	NoticeError:   "✗",
}

// Notice is a transient message for the user
type Notice struct {
	Level NoticeLevel
	Text  string
}

// Status summarises the connection for the status indicator
type Status struct {
	Connected bool
	Demo      bool
	Endpoint  string
	Breaker   string
	Dropped   int
	System    map[string]interface{}
}

const defaultWidth = 100

// Terminal writes the dashboard to a terminal or any writer
type Terminal struct {
	mu    sync.Mutex
	out   io.Writer
	width int
	style palette
}

// NewTerminal creates a display writing to out. Width comes from the
// terminal when out is one.
func NewTerminal(out io.Writer) *Terminal {
	width := defaultWidth
	if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	return &Terminal{
		out:   out,
		width: width,
		style: newPalette(lipgloss.NewRenderer(out)),
	}
}

// Width returns the wrap width in columns
func (t *Terminal) Width() int {
	return t.width
}

func (t *Terminal) println(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, s)
}

func (t *Terminal) formatEntry(e RenderedEntry) string {
	var b strings.Builder
	b.WriteString(t.style.time.Render(e.Time))
	b.WriteString(" ")
	b.WriteString(t.style.categoryStyle(e.Category).Render("[" + e.Category + "]"))
	b.WriteString(" ")
	for _, s := range e.Spans {
		switch s.Kind {
		case SpanKeyword:
			b.WriteString(t.style.keyword.Render(s.Text))
		case SpanGlyph:
			b.WriteString(t.style.glyph.Render(s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// ShowLog prints one rendered entry
func (t *Terminal) ShowLog(e RenderedEntry) {
	t.println(t.formatEntry(e))
}

// ResetLogs redraws the whole log view
func (t *Terminal) ResetLogs(entries []RenderedEntry) {
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, t.style.muted.Render(fmt.Sprintf("── log view: %d entries ──", len(entries))))
	for _, e := range entries {
		lines = append(lines, t.formatEntry(e))
	}
	t.println(strings.Join(lines, "\n"))
}

// ShowMetrics prints the metric widgets on one line
func (t *Terminal) ShowMetrics(m internal.MetricsSnapshot) {
	fields := MetricFields(m)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = t.style.label.Render(f.Label) + " " + t.style.value.Render(f.Value)
	}
	t.println(strings.Join(parts, t.style.muted.Render(" │ ")))
}

// ShowGraph draws the thought grid, one row of boxes per grid row
func (t *Terminal) ShowGraph(g GraphLayout) {
	if len(g.Nodes) == 0 {
		t.println(t.style.muted.Render("(no thoughts yet)"))
		return
	}

	var rows []string
	for _, row := range g.Rows() {
		boxes := make([]string, 0, len(row)*2)
		for i, n := range row {
			if i > 0 {
				boxes = append(boxes, t.style.muted.Render(" → "))
			}
			boxes = append(boxes, t.style.node.Render(n.Node.Label+"\n"+truncate(n.Node.Content, 20)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center, boxes...))
	}
	t.println(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// ShowStatus prints the connection indicator and any system status fields
func (t *Terminal) ShowStatus(s Status) {
	var line string
	switch {
	case s.Connected:
		line = t.style.connected.Render("● Connected") + " " + s.Endpoint
	case s.Demo:
		line = t.style.offline.Render("○ Disconnected") + " " + t.style.muted.Render("(demo data)")
	default:
		line = t.style.offline.Render("○ Disconnected") + " " + s.Endpoint
	}
	if s.Breaker != "" {
		line += t.style.muted.Render(" breaker=" + s.Breaker)
	}
	if s.Dropped > 0 {
		line += t.style.muted.Render(fmt.Sprintf(" dropped=%d", s.Dropped))
	}

	keys := make([]string, 0, len(s.System))
	for k := range s.System {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		line += fmt.Sprintf("\n  %s %v", t.style.label.Render(k+":"), s.System[k])
	}
	t.println(line)
}

// ShowNotice prints a transient notice
func (t *Terminal) ShowNotice(n Notice) {
	style, ok := t.style.notice[n.Level]
	if !ok {
		style = t.style.notice[NoticeInfo]
	}
	t.println(style.Render(noticeIcons[n.Level]) + " " + n.Text)
}

// ShowSessions lists saved sessions as given
func (t *Terminal) ShowSessions(sessions []internal.Session) {
	if len(sessions) == 0 {
		t.println(t.style.muted.Render("No saved sessions"))
		return
	}
	lines := make([]string, len(sessions))
	for i, s := range sessions {
		lines[i] = fmt.Sprintf("%s %s %s",
			t.style.value.Render(s.Name),
			t.style.muted.Render(fmt.Sprintf("%s · %d logs", s.Timestamp, len(s.Logs))),
			t.style.label.Render("["+s.ID+"]"))
	}
	t.println(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
