package simulate

import (
	"math/rand/v2"

	"github.com/iksnae/osa-monitor/internal"
)

// MetricsJitter nudges counters upward the way a busy agent would
type MetricsJitter struct {
	rnd *rand.Rand
}

// NewMetricsJitter creates a jitter source
func NewMetricsJitter(seed uint64) *MetricsJitter {
	return &MetricsJitter{rnd: rand.New(rand.NewPCG(seed, seed+1))}
}

// Apply returns m after one tick: thoughts +0..2, chains +0..1, contexts
// reset to 1..10, efficiency +0..2 capped at 100.
func (j *MetricsJitter) Apply(m internal.MetricsSnapshot) internal.MetricsSnapshot {
	m.Thoughts += j.rnd.IntN(3)
	m.Chains += j.rnd.IntN(2)
	m.Contexts = j.rnd.IntN(10) + 1
	m.Efficiency = internal.ClampEfficiency(m.Efficiency + j.rnd.Float64()*2)
	return m
}
