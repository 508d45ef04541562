package transport

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerSettings configures the dial circuit breaker
type BreakerSettings struct {
	Failures      uint32        // consecutive failures that open the breaker
	Cooldown      time.Duration // time spent open before a trial dial
	OnStateChange func(from, to string)
}

// BreakerDialer refuses to dial while too many recent dials have failed
type BreakerDialer struct {
	next Dialer
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerDialer wraps next in a circuit breaker. With zero Failures the
// breaker is disabled and next is returned unchanged.
func NewBreakerDialer(next Dialer, name string, s BreakerSettings) Dialer {
	if s.Failures == 0 {
		return next
	}
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     s.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.Failures
		},
	}
	if s.OnStateChange != nil {
		settings.OnStateChange = func(_ string, from, to gobreaker.State) {
			s.OnStateChange(from.String(), to.String())
		}
	}
	return &BreakerDialer{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

// Dial dials through the breaker
func (d *BreakerDialer) Dial(ctx context.Context, endpoint string) (Conn, error) {
	res, err := d.cb.Execute(func() (interface{}, error) {
		return d.next.Dial(ctx, endpoint)
	})
	if err != nil {
		return nil, err
	}
	return res.(Conn), nil
}

// State returns the breaker state: closed, half-open or open
func (d *BreakerDialer) State() string {
	return d.cb.State().String()
}

// IsBreakerOpen reports whether err was returned without dialing
func IsBreakerOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
