// Package server runs a demo OSA event stream that the monitor can watch.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/iksnae/osa-monitor/internal"
)

// ReplayLogs is how many recent logs a newly connected client receives
const ReplayLogs = 50

const writeTimeout = 5 * time.Second

// Broadcaster keeps recent activity and fans every event out to all
// connected WebSocket clients.
type Broadcaster struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]struct{}
	history   *internal.Ring[internal.LogEvent]
	metrics   internal.MetricsSnapshot
	sessionID string
	upgrader  websocket.Upgrader
	log       *slog.Logger
}

// NewBroadcaster creates a broadcaster remembering up to history logs
func NewBroadcaster(history int) *Broadcaster {
	return &Broadcaster{
		clients:   make(map[*websocket.Conn]struct{}),
		history:   internal.NewRing[internal.LogEvent](history),
		sessionID: uuid.NewString(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: internal.Logger().With("component", "broadcaster"),
	}
}

// SessionID identifies this server run
func (b *Broadcaster) SessionID() string {
	return b.sessionID
}

// ServeHTTP upgrades the request and streams events until the client leaves
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	if err := b.register(conn); err != nil {
		b.log.Warn("initial state send failed", "remote", r.RemoteAddr, "error", err)
		_ = conn.Close()
		return
	}
	b.log.Info("client connected", "remote", r.RemoteAddr)

	// Clients never send anything meaningful; read only to notice the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	b.drop(conn)
	b.log.Info("client disconnected", "remote", r.RemoteAddr)
}

// register sends status, metrics and recent logs, then adds conn to the
// broadcast set. Holding the lock keeps broadcasts from interleaving.
func (b *Broadcaster) register(conn *websocket.Conn) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	status := internal.StatusEvent{Status: map[string]interface{}{
		"connected":  true,
		"session_id": b.sessionID,
		"total_logs": b.history.Len(),
	}}
	if err := send(conn, status); err != nil {
		return err
	}
	if err := send(conn, internal.MetricsEvent{Metrics: b.metrics.Update()}); err != nil {
		return err
	}
	for _, ev := range b.history.Last(ReplayLogs) {
		if err := send(conn, ev); err != nil {
			return err
		}
	}

	b.clients[conn] = struct{}{}
	return nil
}

func (b *Broadcaster) drop(conn *websocket.Conn) {
	b.mu.Lock()
	delete(b.clients, conn)
	b.mu.Unlock()
	_ = conn.Close()
}

func send(conn *websocket.Conn, ev internal.Event) error {
	data, err := internal.EncodeEvent(ev)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// broadcastLocked writes ev to every client, dropping the ones that fail
func (b *Broadcaster) broadcastLocked(ev internal.Event) {
	for conn := range b.clients {
		if err := send(conn, ev); err != nil {
			b.log.Debug("dropping client", "error", err)
			delete(b.clients, conn)
			_ = conn.Close()
		}
	}
}

// Log records an entry, updates the aggregated metrics and broadcasts both
func (b *Broadcaster) Log(category, message string, metadata map[string]interface{}) {
	ev := internal.LogEvent{
		Category:  category,
		Message:   message,
		Timestamp: time.Now().Format(internal.TimestampLayout),
		Metadata:  metadata,
	}
	if ev.Metadata == nil {
		ev.Metadata = map[string]interface{}{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.history.Push(ev)
	ApplyLog(&b.metrics, category, metadata)
	b.broadcastLocked(ev)
	b.broadcastLocked(internal.MetricsEvent{Metrics: b.metrics.Update()})
}

// Thought broadcasts a thought node without recording it
func (b *Broadcaster) Thought(ev internal.ThoughtEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.broadcastLocked(ev)
}

// Metrics returns the aggregated metrics
func (b *Broadcaster) Metrics() internal.MetricsSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.metrics
}

// Clients returns the number of connected clients
func (b *Broadcaster) Clients() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Status summarises the server state
func (b *Broadcaster) Status() map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return map[string]interface{}{
		"session_id":        b.sessionID,
		"total_logs":        b.history.Len(),
		"connected_clients": len(b.clients),
		"metrics":           b.metrics,
	}
}

// Close disconnects every client
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for conn := range b.clients {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = conn.Close()
		delete(b.clients, conn)
	}
}

// ListenAndServe serves the broadcaster on addr until ctx is done
func (b *Broadcaster) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           b,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		b.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// ApplyLog folds one log entry into the aggregated metrics
func ApplyLog(m *internal.MetricsSnapshot, category string, metadata map[string]interface{}) {
	switch category {
	case internal.CategoryThinking:
		m.Thoughts++
		if _, ok := metadata["chain_depth"]; ok {
			m.Chains++
		}
	case internal.CategoryBlocker:
		m.Blockers++
	case internal.CategoryPattern:
		m.Patterns++
	case internal.CategoryLearning:
		if gain, ok := number(metadata["efficiency_gain"]); ok {
			m.Efficiency = internal.ClampEfficiency(m.Efficiency + gain)
		}
	}
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
