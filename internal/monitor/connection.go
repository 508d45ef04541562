package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/iksnae/osa-monitor/internal"
	"github.com/iksnae/osa-monitor/internal/render"
	"github.com/iksnae/osa-monitor/internal/transport"
)

// connect starts a dial unless one is already running or the monitor is
// connected. An endpoint that cannot be parsed switches straight to demo
// mode and is never retried.
func (m *Monitor) connect() {
	if m.stopped || m.dialing || m.connected || m.invalidEndpoint {
		return
	}
	if _, err := transport.ValidateEndpoint(m.cfg.Endpoint); err != nil {
		m.invalidEndpoint = true
		m.log.Error("invalid endpoint", "endpoint", m.cfg.Endpoint, "error", err)
		m.appendLog(internal.CategoryError, fmt.Sprintf("Cannot connect to %s: %v", m.cfg.Endpoint, err))
		m.startDemo()
		m.showStatus()
		return
	}

	m.dialing = true
	m.generation++
	gen := m.generation
	endpoint := m.cfg.Endpoint
	ctx, cancel := context.WithTimeout(m.ctx, m.cfg.Reconnect.HandshakeTimeout)
	m.log.Debug("dialing", "endpoint", endpoint, "attempt", m.attempt)

	m.spawn(func() {
		defer cancel()
		conn, err := m.dialer.Dial(ctx, endpoint)
		if !m.Do(func() { m.dialed(gen, conn, err) }) && conn != nil {
			_ = conn.Close()
		}
	})
}

// dialed handles the outcome of a dial started by connect
func (m *Monitor) dialed(gen int, conn transport.Conn, err error) {
	m.dialing = false
	if m.stopped || gen != m.generation {
		if conn != nil {
			_ = conn.Close()
		}
		return
	}

	if err != nil {
		m.log.Warn("dial failed", "endpoint", m.cfg.Endpoint, "error", err)
		if m.cfg.Monitor.DemoFallback {
			m.startDemo()
		}
		if transport.IsBreakerOpen(err) {
			m.notice(render.NoticeWarning, fmt.Sprintf("Too many failed connection attempts, retrying in %s", m.cfg.Reconnect.BreakerCooldown))
			m.showStatus()
			m.scheduleReconnect(m.cfg.Reconnect.BreakerCooldown)
			return
		}
		m.appendLog(internal.CategoryError, fmt.Sprintf("Connection error: %v", err))
		m.showStatus()
		m.scheduleReconnect(m.backoff.Next(m.attempt))
		return
	}

	m.conn = conn
	m.connected = true
	m.attempt = 0
	m.log.Info("connected", "endpoint", m.cfg.Endpoint)
	m.appendLog(internal.CategorySystem, "Connected to OSA")
	m.showStatus()

	m.spawn(func() { m.readLoop(gen, conn) })
}

// readLoop forwards every payload to the event loop and reports how the
// stream ended.
func (m *Monitor) readLoop(gen int, conn transport.Conn) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			m.Do(func() { m.connectionLost(gen, err) })
			return
		}
		if !m.Do(func() { m.handleMessage(gen, data) }) {
			return
		}
	}
}

// connectionLost is the single handler for errors and closes. Both mark the
// monitor disconnected and request a reconnect; repeated signals for the same
// loss still leave only one reconnect pending.
func (m *Monitor) connectionLost(gen int, err error) {
	if m.stopped || gen != m.generation {
		return
	}
	m.connected = false
	m.closeConn()

	if transport.IsClosed(err) {
		m.log.Info("connection closed", "endpoint", m.cfg.Endpoint)
		m.appendLog(internal.CategorySystem, "Disconnected from OSA")
	} else {
		m.log.Warn("connection error", "endpoint", m.cfg.Endpoint, "error", err)
		m.appendLog(internal.CategoryError, fmt.Sprintf("Connection error: %v", err))
	}
	m.showStatus()
	m.scheduleReconnect(m.backoff.Next(m.attempt))
}

// scheduleReconnect arms the reconnect timer unless one is already pending
func (m *Monitor) scheduleReconnect(delay time.Duration) {
	if m.stopped || m.reconnect != nil || m.invalidEndpoint {
		return
	}
	m.attempt++
	m.log.Debug("reconnect scheduled", "delay", delay, "attempt", m.attempt)
	m.reconnect = m.sched.AfterFunc(delay, func() {
		m.Do(func() {
			m.reconnect = nil
			m.connect()
		})
	})
}

func (m *Monitor) closeConn() {
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
}

// startDemo begins synthesising activity. Demo events are only emitted
// while disconnected.
func (m *Monitor) startDemo() {
	if m.demoMode || m.stopped {
		return
	}
	m.demoMode = true
	m.log.Info("demo mode enabled")
	m.notice(render.NoticeInfo, "No OSA connection, showing demo activity")
	m.demoTimer = m.sched.Every(m.cfg.Monitor.DemoInterval, func() {
		m.Do(m.demoTick)
	})
}

func (m *Monitor) demoTick() {
	if m.connected || m.stopped {
		return
	}
	m.dispatch(m.demo.Log())
	m.dispatch(m.demo.Thought())
}
