package transport

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConn struct{}

func (stubConn) ReadMessage() ([]byte, error) { return nil, errors.New("unused") }
func (stubConn) Close() error                 { return nil }

type stubDialer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (d *stubDialer) Dial(ctx context.Context, endpoint string) (Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	return stubConn{}, nil
}

func TestNewBreakerDialer_Disabled(t *testing.T) {
	next := &stubDialer{}
	d := NewBreakerDialer(next, "osa", BreakerSettings{})
	assert.Same(t, next, d)
}

func TestBreakerDialer_OpensAfterFailures(t *testing.T) {
	next := &stubDialer{err: errors.New("refused")}
	var transitions []string
	d := NewBreakerDialer(next, "osa", BreakerSettings{
		Failures: 2,
		Cooldown: time.Hour,
		OnStateChange: func(from, to string) {
			transitions = append(transitions, from+"->"+to)
		},
	})
	bd, ok := d.(*BreakerDialer)
	require.True(t, ok)

	for i := 0; i < 2; i++ {
		_, err := d.Dial(context.Background(), "ws://x")
		require.Error(t, err)
		assert.False(t, IsBreakerOpen(err))
	}
	assert.Equal(t, "open", bd.State())
	assert.Equal(t, []string{"closed->open"}, transitions)

	_, err := d.Dial(context.Background(), "ws://x")
	assert.True(t, IsBreakerOpen(err))
	assert.Equal(t, 2, next.calls, "an open breaker must not dial")
}

func TestBreakerDialer_Success(t *testing.T) {
	next := &stubDialer{}
	d := NewBreakerDialer(next, "osa", BreakerSettings{Failures: 3, Cooldown: time.Second})

	conn, err := d.Dial(context.Background(), "ws://x")
	require.NoError(t, err)
	assert.NotNil(t, conn)
	assert.Equal(t, "closed", d.(*BreakerDialer).State())
}

func TestBreakerDialer_HalfOpenAfterCooldown(t *testing.T) {
	next := &stubDialer{err: errors.New("refused")}
	d := NewBreakerDialer(next, "osa", BreakerSettings{Failures: 1, Cooldown: 20 * time.Millisecond})

	_, _ = d.Dial(context.Background(), "ws://x")
	require.Equal(t, "open", d.(*BreakerDialer).State())

	time.Sleep(40 * time.Millisecond)
	next.mu.Lock()
	next.err = nil
	next.mu.Unlock()

	_, err := d.Dial(context.Background(), "ws://x")
	require.NoError(t, err)
	assert.Equal(t, "closed", d.(*BreakerDialer).State())
}
