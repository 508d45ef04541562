package internal

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

// DefaultEndpoint is the address the OSA logger serves its event stream on
const DefaultEndpoint = "ws://localhost:8765"

// Config holds monitor settings loaded from config.yaml
type Config struct {
	Endpoint  string          `yaml:"endpoint"`
	Storage   string          `yaml:"storage"`
	LogFile   bool            `yaml:"log_file"`
	Reconnect ReconnectConfig `yaml:"reconnect"`
	Monitor   MonitorConfig   `yaml:"monitor"`
	Export    ExportConfig    `yaml:"export"`
	Server    ServerConfig    `yaml:"server"`
}

// ReconnectConfig controls the reconnect backoff and circuit breaker
type ReconnectConfig struct {
	Delay            time.Duration `yaml:"delay"`
	MaxDelay         time.Duration `yaml:"max_delay"`
	Multiplier       float64       `yaml:"multiplier"`
	Jitter           float64       `yaml:"jitter"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	BreakerFailures  uint32        `yaml:"breaker_failures"` // 0 disables the breaker
	BreakerCooldown  time.Duration `yaml:"breaker_cooldown"`
}

// MonitorConfig holds buffer sizes and timer intervals
type MonitorConfig struct {
	LogCapacity      int           `yaml:"log_capacity"`
	RenderWindow     int           `yaml:"render_window"`
	ThoughtCapacity  int           `yaml:"thought_capacity"`
	GraphWindow      int           `yaml:"graph_window"`
	MetricsInterval  time.Duration `yaml:"metrics_interval"`
	GraphInterval    time.Duration `yaml:"graph_interval"`
	AutosaveInterval time.Duration `yaml:"autosave_interval"`
	DemoInterval     time.Duration `yaml:"demo_interval"`
	SessionCap       int           `yaml:"session_cap"`
	CapExplicitSaves bool          `yaml:"cap_explicit_saves"`
	SimulateMetrics  bool          `yaml:"simulate_metrics"`
	DemoFallback     bool          `yaml:"demo_fallback"`
	Filter           string        `yaml:"filter"`
}

// ExportConfig controls export file naming
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"`
}

// ServerConfig controls the demo event server
type ServerConfig struct {
	Addr     string        `yaml:"addr"`
	Interval time.Duration `yaml:"interval"`
	History  int           `yaml:"history"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Storage:  StorageSQLite,
		LogFile:  true,
		Reconnect: ReconnectConfig{
			Delay:            3 * time.Second,
			MaxDelay:         3 * time.Second,
			Multiplier:       1,
			HandshakeTimeout: 5 * time.Second,
			BreakerCooldown:  30 * time.Second,
		},
		Monitor: MonitorConfig{
			LogCapacity:      1000,
			RenderWindow:     100,
			ThoughtCapacity:  50,
			GraphWindow:      8,
			MetricsInterval:  time.Second,
			GraphInterval:    2 * time.Second,
			AutosaveInterval: 5 * time.Minute,
			DemoInterval:     2 * time.Second,
			SessionCap:       20,
			SimulateMetrics:  true,
			DemoFallback:     true,
			Filter:           CategoryAll,
		},
		Export: ExportConfig{
			Dir:    "./exports",
			Prefix: "osa-logs",
			Format: "json",
		},
		Server: ServerConfig{
			Addr:     "localhost:8765",
			Interval: time.Second,
			History:  10000,
		},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, &StorageError{Path: path, Op: "read", Err: err}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ParseError{Source: "config", Key: path, Err: err}
	}

	return cfg, cfg.Validate()
}

// Save writes the config as YAML
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the monitor cannot run with
func (c Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageFile:
	default:
		return fmt.Errorf("unsupported storage backend: %s (supported: sqlite, file)", c.Storage)
	}
	m := c.Monitor
	if m.LogCapacity <= 0 || m.RenderWindow <= 0 || m.ThoughtCapacity <= 0 || m.GraphWindow <= 0 {
		return errors.New("monitor capacities must be positive")
	}
	if m.MetricsInterval <= 0 || m.GraphInterval <= 0 || m.AutosaveInterval <= 0 || m.DemoInterval <= 0 {
		return errors.New("monitor intervals must be positive")
	}
	if c.Reconnect.Delay <= 0 {
		return errors.New("reconnect delay must be positive")
	}
	if c.Reconnect.Multiplier < 1 {
		return errors.New("reconnect multiplier must be at least 1")
	}
	return nil
}
