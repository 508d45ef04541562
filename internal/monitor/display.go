package monitor

import (
	"github.com/iksnae/osa-monitor/internal"
	"github.com/iksnae/osa-monitor/internal/render"
)

// Display is the surface the monitor renders into. Calls are made from the
// monitor's event loop only.
type Display interface {
	ShowLog(entry render.RenderedEntry)
	ResetLogs(entries []render.RenderedEntry)
	ShowMetrics(m internal.MetricsSnapshot)
	ShowGraph(g render.GraphLayout)
	ShowStatus(s render.Status)
	ShowNotice(n render.Notice)
	ShowSessions(sessions []internal.Session)
}

// MetricsSimulator advances metrics between real updates
type MetricsSimulator interface {
	Apply(m internal.MetricsSnapshot) internal.MetricsSnapshot
}

// Confirmer asks the user to approve a destructive action
type Confirmer func(prompt string) bool
