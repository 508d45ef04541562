// Package transport connects the monitor to the OSA event stream.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iksnae/osa-monitor/internal"
)

// Conn is an open event stream. ReadMessage blocks until the next payload.
type Conn interface {
	ReadMessage() ([]byte, error)
	Close() error
}

// Dialer opens event stream connections
type Dialer interface {
	Dial(ctx context.Context, endpoint string) (Conn, error)
}

// ValidateEndpoint checks that endpoint is a usable ws:// or wss:// URL
func ValidateEndpoint(endpoint string) (*url.URL, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, &internal.TransportError{Endpoint: endpoint, Op: "parse", Err: err}
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, &internal.TransportError{Endpoint: endpoint, Op: "parse", Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return nil, &internal.TransportError{Endpoint: endpoint, Op: "parse", Err: errors.New("missing host")}
	}
	return u, nil
}

// WebSocketDialer dials the event stream over a WebSocket
type WebSocketDialer struct {
	HandshakeTimeout time.Duration
	Header           http.Header
}

// NewWebSocketDialer creates a dialer with the given handshake timeout
func NewWebSocketDialer(handshakeTimeout time.Duration) *WebSocketDialer {
	return &WebSocketDialer{HandshakeTimeout: handshakeTimeout}
}

// Dial opens a WebSocket connection to endpoint
func (d *WebSocketDialer) Dial(ctx context.Context, endpoint string) (Conn, error) {
	if _, err := ValidateEndpoint(endpoint); err != nil {
		return nil, err
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: d.HandshakeTimeout,
		Proxy:            http.ProxyFromEnvironment,
	}
	conn, resp, err := dialer.DialContext(ctx, endpoint, d.Header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, &internal.TransportError{Endpoint: endpoint, Op: "dial", Err: err}
	}
	return &wsConn{conn: conn}, nil
}

type wsConn struct {
	conn *websocket.Conn
}

func (c *wsConn) ReadMessage() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	return data, err
}

// Close sends a normal closure frame before dropping the connection
func (c *wsConn) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}

// IsClosed reports whether err means the peer closed the stream, as opposed
// to a transport failure.
func IsClosed(err error) bool {
	if err == nil {
		return false
	}
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return closeErr.Code == websocket.CloseNormalClosure || closeErr.Code == websocket.CloseGoingAway
	}
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}
