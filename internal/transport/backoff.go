package transport

import (
	"math"
	"math/rand/v2"
	"time"
)

// Backoff computes reconnect delays. A Multiplier of 1 gives a fixed delay.
type Backoff struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	Jitter     float64 // fraction of the delay, 0 disables

	// Rand returns values in [0,1); nil uses math/rand
	Rand func() float64
}

// Next returns the delay before reconnect attempt number attempt (0-based)
func (b Backoff) Next(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	mult := b.Multiplier
	if mult < 1 {
		mult = 1
	}

	d := float64(b.Initial) * math.Pow(mult, float64(attempt))
	if b.Max > 0 && d > float64(b.Max) {
		d = float64(b.Max)
	}

	if b.Jitter > 0 {
		rnd := b.Rand
		if rnd == nil {
			rnd = rand.Float64
		}
		d += d * b.Jitter * (rnd()*2 - 1)
	}
	if d < 0 {
		d = 0
	}
	return time.Duration(d)
}
