package monitor

import (
	"github.com/iksnae/osa-monitor/internal/render"
)

// startTimers arms the metrics, graph and autosave timers
func (m *Monitor) startTimers() {
	mc := m.cfg.Monitor
	m.periodic = append(m.periodic,
		m.sched.Every(mc.MetricsInterval, func() { m.Do(m.metricsTick) }),
		m.sched.Every(mc.GraphInterval, func() { m.Do(m.graphTick) }),
		m.sched.Every(mc.AutosaveInterval, func() { m.Do(m.autosave) }),
	)
}

// metricsTick applies simulated drift, but only while connected
func (m *Monitor) metricsTick() {
	if !m.connected || m.sim == nil {
		return
	}
	m.metrics = m.sim.Apply(m.metrics)
	m.display.ShowMetrics(m.metrics)
}

// graphTick rebuilds the graph from the thought buffer when it has changed
func (m *Monitor) graphTick() {
	if !m.graphDirty {
		return
	}
	m.graphDirty = false
	m.showGraph()
}

func (m *Monitor) showGraph() {
	m.display.ShowGraph(render.Layout(m.thoughts.Items(), m.cfg.Monitor.GraphWindow))
}
