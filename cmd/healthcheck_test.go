package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iksnae/osa-monitor/internal/transport"
	"github.com/iksnae/osa-monitor/testutil"
)

func newEchoServer(t *testing.T) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestCheckEndpoint(t *testing.T) {
	dialer := transport.NewWebSocketDialer(time.Second)

	if err := checkEndpoint(context.Background(), dialer, newEchoServer(t), time.Second); err != nil {
		t.Errorf("checkEndpoint(reachable) error = %v", err)
	}
	if err := checkEndpoint(context.Background(), dialer, "ws://127.0.0.1:1", time.Second); err == nil {
		t.Error("checkEndpoint(closed port) should fail")
	}
	if err := checkEndpoint(context.Background(), dialer, "localhost:8765", time.Second); err == nil {
		t.Error("checkEndpoint(no scheme) should fail")
	}
}

func TestHealthcheckCommand(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		args     []string
		wantErr  bool
		want     string
	}{
		{
			name:     "reachable endpoint",
			endpoint: "",
			want:     "Endpoint reachable",
		},
		{
			name:     "unreachable endpoint warns",
			endpoint: "ws://127.0.0.1:1",
			want:     "Endpoint unreachable",
		},
		{
			name:     "unreachable endpoint required",
			endpoint: "ws://127.0.0.1:1",
			args:     []string{"--require-endpoint"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.CreateTempDir(t)
			endpoint := tt.endpoint
			if endpoint == "" {
				endpoint = newEchoServer(t)
			}
			path := writeConfig(t, dir, "endpoint: "+endpoint+"\nlog_file: false\n")

			args := append([]string{"--data-dir", dir, "--config", path, "healthcheck"}, tt.args...)
			out, err := runRoot(t, args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("healthcheck error = %v, wantErr %v\n%s", err, tt.wantErr, out)
			}
			if tt.want != "" && !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
			if !tt.wantErr && !strings.Contains(out, "Health check passed") {
				t.Errorf("output missing summary:\n%s", out)
			}
		})
	}
}

func TestHealthcheckCommand_BrokenStorage(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	path := writeConfig(t, dir, "storage: file\nlog_file: false\n")
	if err := writeFile(dir+"/sessions.json", "{not json"); err != nil {
		t.Fatal(err)
	}

	_, err := runRoot(t, "--data-dir", dir, "--config", path, "healthcheck")
	if err == nil {
		t.Error("healthcheck should fail when sessions cannot be decoded")
	}
}
