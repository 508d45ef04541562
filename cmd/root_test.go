package cmd

import (
	"strings"
	"testing"

	"github.com/iksnae/osa-monitor/testutil"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    string
	}{
		{
			name: "version flag",
			args: []string{"--version"},
			want: "dev",
		},
		{
			name: "help flag",
			args: []string{"--help"},
			want: "osa-monitor watch",
		},
		{
			name:    "unknown command",
			args:    []string{"nonexistent-command"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runRoot(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.want != "" && !strings.Contains(out, tt.want) {
				t.Errorf("output %q does not contain %q", out, tt.want)
			}
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := []string{"watch", "sessions", "show", "export", "serve", "healthcheck"}
	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("%s command not registered", name)
		}
	}
}

func TestRootCommand_LoadsConfig(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	path := writeConfig(t, dir, "endpoint: ws://osa.test:9000\nlog_file: false\n")

	if _, err := runRoot(t, "--data-dir", dir, "--config", path, "sessions"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if cfg.Endpoint != "ws://osa.test:9000" {
		t.Errorf("Endpoint = %q, want value from config", cfg.Endpoint)
	}
	if paths.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", paths.DataDir, dir)
	}
}

func TestRootCommand_BadConfig(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	path := writeConfig(t, dir, "storage: redis\n")

	_, err := runRoot(t, "--data-dir", dir, "--config", path, "sessions")
	if err == nil || !strings.Contains(err.Error(), "failed to load config") {
		t.Errorf("Execute() error = %v, want config error", err)
	}
}
