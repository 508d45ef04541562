// Package monitor implements the OSA activity monitor: it owns the
// connection to the event stream, the log, metrics and thought buffers and
// the saved session list, and drives a Display.
package monitor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/iksnae/osa-monitor/internal"
	"github.com/iksnae/osa-monitor/internal/render"
	"github.com/iksnae/osa-monitor/internal/simulate"
	"github.com/iksnae/osa-monitor/internal/transport"
)

// RecentSessionCount is how many saved sessions the session list shows
const RecentSessionCount = 5

// Options configures a Monitor. Config, Store and Display are required.
type Options struct {
	Config    internal.Config
	Store     internal.SessionStore
	Display   Display
	Dialer    transport.Dialer    // defaults to a WebSocket dialer behind a circuit breaker
	Scheduler Scheduler           // defaults to RealScheduler
	Simulator MetricsSimulator    // defaults to simulate.MetricsJitter when enabled in Config
	Demo      *simulate.Generator // defaults to a time-seeded generator
	Clock     func() time.Time    // defaults to time.Now
}

// Monitor is the OSA activity monitor. All state is owned by the goroutine
// running Run; other goroutines reach it through Do.
type Monitor struct {
	cfg     internal.Config
	store   internal.SessionStore
	display Display
	dialer  transport.Dialer
	sched   Scheduler
	sim     MetricsSimulator
	demo    *simulate.Generator
	now     func() time.Time
	log     *slog.Logger
	backoff transport.Backoff

	// spawn starts background work; tests replace it to run work inline
	spawn func(func())

	tasks chan func()
	done  chan struct{}
	ctx   context.Context

	logs       *internal.Ring[internal.LogEntry]
	view       *render.LogView
	metrics    internal.MetricsSnapshot
	thoughts   *internal.Ring[internal.ThoughtNode]
	graphDirty bool
	sessions   []internal.Session
	system     map[string]interface{}
	dropped    int

	connected       bool
	dialing         bool
	invalidEndpoint bool
	demoMode        bool
	conn            transport.Conn
	generation      int
	attempt         int
	reconnect       Timer
	demoTimer       Timer
	periodic        []Timer
	stopped         bool
}

// New creates a monitor. It does not connect until Run.
func New(opts Options) (*Monitor, error) {
	if opts.Display == nil {
		return nil, errors.New("monitor: display is required")
	}
	if opts.Store == nil {
		return nil, errors.New("monitor: session store is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	cfg := opts.Config
	m := &Monitor{
		cfg:     cfg,
		store:   opts.Store,
		display: opts.Display,
		dialer:  opts.Dialer,
		sched:   opts.Scheduler,
		sim:     opts.Simulator,
		demo:    opts.Demo,
		now:     opts.Clock,
		log:     internal.Logger().With("component", "monitor"),
		backoff: transport.Backoff{
			Initial:    cfg.Reconnect.Delay,
			Max:        cfg.Reconnect.MaxDelay,
			Multiplier: cfg.Reconnect.Multiplier,
			Jitter:     cfg.Reconnect.Jitter,
		},
		spawn:    func(f func()) { go f() },
		tasks:    make(chan func(), 256),
		done:     make(chan struct{}),
		ctx:      context.Background(),
		logs:     internal.NewRing[internal.LogEntry](cfg.Monitor.LogCapacity),
		view:     render.NewLogView(cfg.Monitor.RenderWindow, cfg.Monitor.Filter),
		thoughts: internal.NewRing[internal.ThoughtNode](cfg.Monitor.ThoughtCapacity),
		sessions: []internal.Session{},
	}

	if m.now == nil {
		m.now = time.Now
	}
	if m.sched == nil {
		m.sched = RealScheduler{}
	}
	seed := uint64(m.now().UnixNano())
	if m.sim == nil && cfg.Monitor.SimulateMetrics {
		m.sim = simulate.NewMetricsJitter(seed)
	}
	if m.demo == nil {
		m.demo = simulate.NewGenerator(seed)
	}
	if m.dialer == nil {
		logger := m.log
		m.dialer = transport.NewBreakerDialer(
			transport.NewWebSocketDialer(cfg.Reconnect.HandshakeTimeout),
			"osa-stream",
			transport.BreakerSettings{
				Failures: cfg.Reconnect.BreakerFailures,
				Cooldown: cfg.Reconnect.BreakerCooldown,
				OnStateChange: func(from, to string) {
					logger.Info("circuit breaker state changed", "from", from, "to", to)
				},
			},
		)
	}
	return m, nil
}

// Do queues fn to run on the event loop. It returns false once the monitor
// has stopped.
func (m *Monitor) Do(fn func()) bool {
	select {
	case <-m.done:
		return false
	default:
	}
	select {
	case m.tasks <- fn:
		return true
	case <-m.done:
		return false
	}
}

// Run starts the monitor and processes events until ctx is cancelled
func (m *Monitor) Run(ctx context.Context) error {
	m.ctx = ctx
	m.start()

	for {
		select {
		case fn := <-m.tasks:
			fn()
		case <-ctx.Done():
			m.stop()
			return nil
		}
	}
}

// Done is closed once the monitor has stopped
func (m *Monitor) Done() <-chan struct{} {
	return m.done
}

func (m *Monitor) start() {
	m.loadSessions()
	m.showStatus()
	m.startTimers()
	m.connect()
}

// stop cancels every timer and closes the connection
func (m *Monitor) stop() {
	if m.stopped {
		return
	}
	m.stopped = true

	for _, t := range m.periodic {
		t.Stop()
	}
	m.periodic = nil
	if m.reconnect != nil {
		m.reconnect.Stop()
		m.reconnect = nil
	}
	if m.demoTimer != nil {
		m.demoTimer.Stop()
		m.demoTimer = nil
	}
	m.closeConn()
	m.connected = false
	close(m.done)
	m.log.Info("monitor stopped")
}

func (m *Monitor) notice(level render.NoticeLevel, text string) {
	m.display.ShowNotice(render.Notice{Level: level, Text: text})
}

func (m *Monitor) showStatus() {
	s := render.Status{
		Connected: m.connected,
		Demo:      m.demoMode && !m.connected,
		Endpoint:  m.cfg.Endpoint,
		Dropped:   m.dropped,
		System:    m.system,
	}
	if b, ok := m.dialer.(interface{ State() string }); ok {
		s.Breaker = b.State()
	}
	m.display.ShowStatus(s)
}
