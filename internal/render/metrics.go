package render

import (
	"fmt"
	"math"

	"github.com/iksnae/osa-monitor/internal"
)

// FormatMetricValue abbreviates large counts: 1.2M, 3.4K, otherwise a whole number
func FormatMetricValue(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return fmt.Sprintf("%d", int64(math.Round(v)))
	}
}

// MetricField is one labelled dashboard value
type MetricField struct {
	Label string
	Value string
}

// MetricFields lists the dashboard widgets in display order
func MetricFields(m internal.MetricsSnapshot) []MetricField {
	return []MetricField{
		{Label: "Thoughts", Value: FormatMetricValue(float64(m.Thoughts))},
		{Label: "Chains", Value: FormatMetricValue(float64(m.Chains))},
		{Label: "Contexts", Value: FormatMetricValue(float64(m.Contexts))},
		{Label: "Blockers", Value: FormatMetricValue(float64(m.Blockers))},
		{Label: "Patterns", Value: FormatMetricValue(float64(m.Patterns))},
		{Label: "Efficiency", Value: FormatMetricValue(m.Efficiency) + "%"},
	}
}
