package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DataPaths holds the locations the monitor reads and writes
type DataPaths struct {
	DataDir      string // base directory for monitor state
	ConfigPath   string // config.yaml
	Database     string // SQLite session store
	SessionsFile string // JSON session store (file backend)
	LogFile      string // structured log file
}

// DetectDataPaths resolves the monitor data directory. A non-empty override
// wins; otherwise the platform default is used.
func DetectDataPaths(override string) (DataPaths, error) {
	dir := override
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DataPaths{}, fmt.Errorf("failed to get home directory: %w", err)
		}
		switch runtime.GOOS {
		case "darwin":
			dir = filepath.Join(home, "Library/Application Support/osa-monitor")
		case "linux":
			if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
				dir = filepath.Join(xdg, "osa-monitor")
			} else {
				dir = filepath.Join(home, ".config/osa-monitor")
			}
		default:
			dir = filepath.Join(home, ".osa-monitor")
		}
	}

	return DataPaths{
		DataDir:      dir,
		ConfigPath:   filepath.Join(dir, "config.yaml"),
		Database:     filepath.Join(dir, "monitor.db"),
		SessionsFile: filepath.Join(dir, "sessions.json"),
		LogFile:      filepath.Join(dir, "logs", "monitor.log"),
	}, nil
}

// EnsureDataDir creates the data directory if needed
func (p DataPaths) EnsureDataDir() error {
	return os.MkdirAll(p.DataDir, 0755)
}

// ConfigExists reports whether a config file is present
func (p DataPaths) ConfigExists() bool {
	info, err := os.Stat(p.ConfigPath)
	return err == nil && !info.IsDir()
}
