// Package simulate synthesises OSA activity for demo mode and the demo server.
package simulate

import (
	"fmt"
	"math/rand/v2"

	"github.com/iksnae/osa-monitor/internal"
)

var (
	goals     = []string{"Build a viral app", "Refactor the billing service", "Ship the onboarding flow", "Cut API latency in half"}
	tasks     = []string{"scaffold project", "write migration", "run test suite", "profile hot path", "draft release notes"}
	patterns  = []string{"retry-with-backoff", "cache-aside", "fan-out/fan-in", "feature flag rollout"}
	agents    = []string{"claude-1", "claude-2", "claude-3"}
	blockers  = []string{"Database connection timeout", "Missing API credentials", "Flaky integration test", "Rate limit exceeded"}
	decisions = []string{"split the service by bounded context", "keep a single write path", "move reads to a replica"}

	// ThoughtTypes are the thought kinds the generator emits
	ThoughtTypes = []string{"reasoning", "analysis", "decision", "pattern", "blocker", "insight"}
)

// Generator produces plausible OSA events. It is not safe for concurrent use.
type Generator struct {
	rnd      *rand.Rand
	thoughts int
}

// NewGenerator creates a generator. Equal seeds give equal sequences.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *Generator) pick(list []string) string {
	return list[g.rnd.IntN(len(list))]
}

// Log returns the next synthetic log line
func (g *Generator) Log() internal.LogEvent {
	switch g.rnd.IntN(9) {
	case 0, 1:
		md := map[string]interface{}{
			"depth":      g.rnd.IntN(4),
			"confidence": float64(g.rnd.IntN(50)+50) / 100,
		}
		if g.rnd.IntN(2) == 0 {
			md["chain_depth"] = g.rnd.IntN(5) + 1
		}
		return internal.LogEvent{
			Category: internal.CategoryThinking,
			Message:  fmt.Sprintf("Analyzing user goal: %s (confidence level: %.0f%%)", g.pick(goals), md["confidence"].(float64)*100),
			Metadata: md,
		}
	case 2:
		p := g.pick(patterns)
		return internal.LogEvent{
			Category: internal.CategoryLearning,
			Message:  fmt.Sprintf("Learned pattern %s, applied with success", p),
			Metadata: map[string]interface{}{"pattern": p, "efficiency_gain": float64(g.rnd.IntN(5) + 1)},
		}
	case 3:
		return internal.LogEvent{
			Category: internal.CategoryExecuting,
			Message:  fmt.Sprintf("Executing task: %s", g.pick(tasks)),
			Metadata: map[string]interface{}{"task": g.pick(tasks), "instance_id": g.pick(agents)},
		}
	case 4:
		item, agent := g.pick(tasks), g.pick(agents)
		return internal.LogEvent{
			Category: internal.CategoryDelegation,
			Message:  fmt.Sprintf("Delegating %s to %s", item, agent),
			Metadata: map[string]interface{}{"work_item": item, "assigned_to": agent},
		}
	case 5:
		return internal.LogEvent{
			Category: internal.CategoryBlocker,
			Message:  fmt.Sprintf("Blocker detected: %s", g.pick(blockers)),
			Metadata: map[string]interface{}{"alternatives_generated": g.rnd.IntN(4) + 1},
		}
	case 6:
		return internal.LogEvent{
			Category: internal.CategoryPattern,
			Message:  fmt.Sprintf("Pattern recognized: %s", g.pick(patterns)),
		}
	case 7:
		return internal.LogEvent{
			Category: internal.CategoryArchitecture,
			Message:  fmt.Sprintf("Architecture decision: %s", g.pick(decisions)),
		}
	default:
		if g.rnd.IntN(3) == 0 {
			return internal.LogEvent{
				Category: internal.CategoryError,
				Message:  fmt.Sprintf("Task failed with error: %s", g.pick(blockers)),
				Metadata: map[string]interface{}{"error_type": "runtime"},
			}
		}
		return internal.LogEvent{
			Category: internal.CategoryAlternative,
			Message:  fmt.Sprintf("Generated alternative: %s", g.pick(decisions)),
		}
	}
}

// Thought returns the next synthetic thought node. Ids count up from 1.
func (g *Generator) Thought() internal.ThoughtEvent {
	g.thoughts++
	typ := g.pick(ThoughtTypes)
	return internal.ThoughtEvent{Thought: internal.ThoughtPayload{
		ID:      internal.ThoughtID(g.thoughts),
		Type:    typ,
		Content: fmt.Sprintf("%s about %s", typ, g.pick(goals)),
	}}
}
