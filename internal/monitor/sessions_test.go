package monitor

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/osa-monitor/internal"
	"github.com/iksnae/osa-monitor/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor_AutosaveCap(t *testing.T) {
	h := newHarness(t, nil)
	h.connect(&fakeConn{})

	var first string
	for i := 0; i < 21; i++ {
		h.m.autosave()
		if i == 0 {
			first = h.store.sessions[0].ID
		}
	}

	require.Len(t, h.store.sessions, 20)
	_, found := internal.FindSession(h.store.sessions, first)
	assert.False(t, found, "the oldest autosave is dropped")
	assert.True(t, strings.HasPrefix(h.store.sessions[0].Name, "Autosave "))
}

func TestMonitor_AutosaveSkipsEmptyLogs(t *testing.T) {
	h := newHarness(t, nil)

	h.m.autosave()

	assert.Equal(t, 0, h.store.saves)
	assert.Empty(t, h.store.sessions)
}

func TestMonitor_AutosaveTimer(t *testing.T) {
	h := newHarness(t, nil)
	h.connect(&fakeConn{})

	timers := h.sched.periodic(h.m.cfg.Monitor.AutosaveInterval)
	require.Len(t, timers, 1)
	h.sched.fire(timers[0])
	h.drain()

	assert.Equal(t, 1, h.store.saves)
}

func TestMonitor_ExplicitSaves(t *testing.T) {
	tests := []struct {
		name string
		cap  bool
		want int
	}{
		{name: "uncapped by default", cap: false, want: 25},
		{name: "capped when configured", cap: true, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, func(c *internal.Config) { c.Monitor.CapExplicitSaves = tt.cap })
			h.connect(&fakeConn{})

			for i := 0; i < 25; i++ {
				h.m.saveSession("")
			}
			assert.Len(t, h.store.sessions, tt.want)
			assert.Equal(t, render.NoticeSuccess, h.display.lastNotice().Level)
		})
	}
}

func TestMonitor_SaveSnapshotsState(t *testing.T) {
	h := newHarness(t, nil)
	h.connect(&fakeConn{})
	h.send(`{"type":"metrics","metrics":{"thoughts":7,"efficiency":91.5}}`)

	h.m.saveSession("Morning run")

	require.Len(t, h.store.sessions, 1)
	s := h.store.sessions[0]
	assert.Equal(t, "Morning run", s.Name)
	assert.Equal(t, 7, s.Metrics.Thoughts)
	assert.Equal(t, 91.5, s.Metrics.Efficiency)
	require.Len(t, s.Logs, 1)
	assert.Equal(t, "Session saved: Morning run", h.display.lastNotice().Text)

	h.send(`{"type":"log","category":"system","message":"later"}`)
	assert.Len(t, h.store.sessions[0].Logs, 1, "saved snapshot is independent of live logs")
}

func TestMonitor_RecentSessionsNewestFirst(t *testing.T) {
	h := newHarness(t, nil)
	h.connect(&fakeConn{})
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		h.m.saveSession(name)
	}

	h.m.showSessions()

	shown := h.display.sessions[len(h.display.sessions)-1]
	require.Len(t, shown, RecentSessionCount)
	var names []string
	for _, s := range shown {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"g", "f", "e", "d", "c"}, names)
}

func TestMonitor_LoadSession(t *testing.T) {
	h := newHarness(t, nil)
	saved := internal.CreateTestSession("1700000000000")
	h.store.sessions = []internal.Session{saved}
	h.connect(&fakeConn{})
	h.send(`{"type":"log","category":"system","message":"live"}`)

	h.m.loadSession(saved.ID)

	require.Equal(t, len(saved.Logs), h.m.logs.Len())
	assert.Equal(t, saved.Logs[0].Message, h.m.logs.At(0).Message)
	assert.Equal(t, saved.Metrics, h.m.metrics)
	require.NotEmpty(t, h.display.resets)
	assert.Len(t, h.display.resets[len(h.display.resets)-1], len(saved.Logs))
	assert.Equal(t, "Loaded session: "+saved.Name, h.display.lastNotice().Text)

	h.send(`{"type":"log","category":"system","message":"after load"}`)
	assert.Len(t, h.store.sessions[0].Logs, len(saved.Logs), "loading does not alias the stored session")
}

func TestMonitor_LoadUnknownSession(t *testing.T) {
	h := newHarness(t, nil)
	h.connect(&fakeConn{})
	before := h.m.logs.Len()

	h.m.loadSession("nope")

	assert.Equal(t, before, h.m.logs.Len())
	assert.Equal(t, render.Notice{Level: render.NoticeWarning, Text: "Session not found: nope"}, h.display.lastNotice())
}

func TestMonitor_StorageFailures(t *testing.T) {
	h := newHarness(t, nil)
	h.store.loadErr = errors.New("disk gone")
	h.store.saveErr = errors.New("quota exceeded")

	h.connect(&fakeConn{})
	require.NotEmpty(t, h.display.notices)
	assert.Equal(t, render.NoticeWarning, h.display.notices[0].Level)
	assert.Empty(t, h.m.sessions)

	h.m.saveSession("x")
	assert.Equal(t, render.NoticeError, h.display.lastNotice().Level)
	assert.Contains(t, h.display.lastNotice().Text, "Failed to save session")
	assert.True(t, h.m.connected, "storage failures never stop the monitor")
}

func TestMonitor_Export(t *testing.T) {
	h := newHarness(t, nil)
	h.connect(&fakeConn{})
	h.send(`{"type":"thought","thought":{"id":"t1","type":"blocker","content":"stuck"}}`)

	h.m.exportLogs("")

	notice := h.display.lastNotice()
	require.Equal(t, render.NoticeSuccess, notice.Level, notice.Text)

	matches, err := filepath.Glob(filepath.Join(h.m.cfg.Export.Dir, "osa-logs-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	var doc internal.ExportDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Logs, 1)
	require.Len(t, doc.ThoughtNodes, 1)
	assert.Equal(t, "t1", doc.ThoughtNodes[0].ID)
	assert.Equal(t, "Exported 1 logs to "+matches[0], notice.Text)
}

func TestMonitor_ExportUnknownFormat(t *testing.T) {
	h := newHarness(t, nil)

	h.m.exportLogs("xml")

	assert.Equal(t, render.NoticeError, h.display.lastNotice().Level)
	assert.Contains(t, h.display.lastNotice().Text, "unsupported format")
}

func TestMonitor_ClearLogs(t *testing.T) {
	h := newHarness(t, nil)
	h.connect(&fakeConn{})
	h.send(`{"type":"log","category":"thinking","message":"one"}`)

	h.m.clearLogs()

	assert.Equal(t, []string{"Logs cleared"}, h.messages())
	assert.Equal(t, 1, h.m.view.Len())
	assert.Nil(t, h.display.resets[len(h.display.resets)-1])
}
