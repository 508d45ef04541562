package monitor

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/iksnae/osa-monitor/internal"
	"github.com/iksnae/osa-monitor/internal/render"
	"github.com/iksnae/osa-monitor/internal/simulate"
	"github.com/iksnae/osa-monitor/internal/transport"
	"github.com/iksnae/osa-monitor/testutil"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	every   bool
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{delay: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) Every(d time.Duration, f func()) Timer {
	t := &fakeTimer{delay: d, fn: f, every: true}
	s.timers = append(s.timers, t)
	return t
}

// pending returns active one-shot timers
func (s *fakeScheduler) pending() []*fakeTimer {
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.every && !t.stopped {
			out = append(out, t)
		}
	}
	return out
}

// periodic returns active periodic timers with the given interval
func (s *fakeScheduler) periodic(d time.Duration) []*fakeTimer {
	var out []*fakeTimer
	for _, t := range s.timers {
		if t.every && !t.stopped && t.delay == d {
			out = append(out, t)
		}
	}
	return out
}

func (s *fakeScheduler) fire(t *fakeTimer) {
	if t.stopped {
		return
	}
	if !t.every {
		t.stopped = true
	}
	t.fn()
}

type recordingDisplay struct {
	logs     []render.RenderedEntry
	resets   [][]render.RenderedEntry
	metrics  []internal.MetricsSnapshot
	graphs   []render.GraphLayout
	statuses []render.Status
	notices  []render.Notice
	sessions [][]internal.Session
}

func (d *recordingDisplay) ShowLog(e render.RenderedEntry) { d.logs = append(d.logs, e) }
func (d *recordingDisplay) ResetLogs(es []render.RenderedEntry) { d.resets = append(d.resets, es) }
func (d *recordingDisplay) ShowMetrics(m internal.MetricsSnapshot) { d.metrics = append(d.metrics, m) }
func (d *recordingDisplay) ShowGraph(g render.GraphLayout) { d.graphs = append(d.graphs, g) }
func (d *recordingDisplay) ShowStatus(s render.Status) { d.statuses = append(d.statuses, s) }
func (d *recordingDisplay) ShowNotice(n render.Notice) { d.notices = append(d.notices, n) }
func (d *recordingDisplay) ShowSessions(s []internal.Session) { d.sessions = append(d.sessions, s) }

func (d *recordingDisplay) lastNotice() render.Notice {
	if len(d.notices) == 0 {
		return render.Notice{}
	}
	return d.notices[len(d.notices)-1]
}

func (d *recordingDisplay) lastStatus() render.Status {
	if len(d.statuses) == 0 {
		return render.Status{}
	}
	return d.statuses[len(d.statuses)-1]
}

type memStore struct {
	sessions []internal.Session
	saves    int
	loadErr  error
	saveErr  error
}

func (s *memStore) LoadSessions() ([]internal.Session, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]internal.Session{}, s.sessions...), nil
}

func (s *memStore) SaveSessions(sessions []internal.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.sessions = append([]internal.Session{}, sessions...)
	return nil
}

func (s *memStore) Close() error { return nil }

type fakeConn struct {
	messages [][]byte
	end      error
	closed   bool
}

func (c *fakeConn) ReadMessage() ([]byte, error) {
	if len(c.messages) == 0 {
		if c.end == nil {
			return nil, io.EOF
		}
		return nil, c.end
	}
	msg := c.messages[0]
	c.messages = c.messages[1:]
	return msg, nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

type dialResult struct {
	conn transport.Conn
	err  error
}

type fakeDialer struct {
	results []dialResult
	calls   int
}

func (d *fakeDialer) Dial(ctx context.Context, endpoint string) (transport.Conn, error) {
	d.calls++
	if len(d.results) == 0 {
		return nil, errors.New("connection refused")
	}
	r := d.results[0]
	d.results = d.results[1:]
	return r.conn, r.err
}

type fakeClock struct {
	t time.Time
}

// Now advances a millisecond per call so session ids never collide
func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Millisecond)
	return c.t
}

type stubSimulator struct{}

func (stubSimulator) Apply(m internal.MetricsSnapshot) internal.MetricsSnapshot {
	m.Thoughts++
	return m
}

type harness struct {
	m       *Monitor
	sched   *fakeScheduler
	display *recordingDisplay
	store   *memStore
	dialer  *fakeDialer
	spawned []func()
}

func newHarness(t *testing.T, configure func(*internal.Config)) *harness {
	t.Helper()
	cfg := internal.DefaultConfig()
	cfg.Export.Dir = testutil.CreateTempDir(t)
	if configure != nil {
		configure(&cfg)
	}

	h := &harness{
		sched:   &fakeScheduler{},
		display: &recordingDisplay{},
		store:   &memStore{},
		dialer:  &fakeDialer{},
	}
	m, err := New(Options{
		Config:    cfg,
		Store:     h.store,
		Display:   h.display,
		Dialer:    h.dialer,
		Scheduler: h.sched,
		Simulator: stubSimulator{},
		Demo:      simulate.NewGenerator(1),
		Clock:     (&fakeClock{t: time.Date(2025, 10, 9, 8, 0, 0, 0, time.UTC)}).Now,
	})
	require.NoError(t, err)
	m.spawn = func(f func()) { h.spawned = append(h.spawned, f) }
	h.m = m
	return h
}

// drain runs every queued task on the calling goroutine
func (h *harness) drain() {
	for {
		select {
		case fn := <-h.m.tasks:
			fn()
		default:
			return
		}
	}
}

// runSpawned runs background work started so far, then drains the queue
func (h *harness) runSpawned() {
	fns := h.spawned
	h.spawned = nil
	for _, f := range fns {
		f()
	}
	h.drain()
}

func (h *harness) start() {
	h.m.start()
	h.drain()
}

// connect starts the monitor against conn and completes the dial
func (h *harness) connect(conn *fakeConn) {
	h.dialer.results = append(h.dialer.results, dialResult{conn: conn})
	h.start()
	h.runSpawned()
}

func (h *harness) send(data string) {
	h.m.handleMessage(h.m.generation, []byte(data))
}

func (h *harness) messages() []string {
	var out []string
	for _, e := range h.m.logs.Items() {
		out = append(out, e.Message)
	}
	return out
}
