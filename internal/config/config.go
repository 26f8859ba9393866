// Package config handles TOML configuration loading with sensible defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where the daemon looks for its configuration.
const DefaultPath = "/etc/errmon/config.toml"

// Default per-socket report roots for a two-socket Altra board. The
// SMpro of socket 0 sits on I2C bus 2, socket 1 on bus 5.
var defaultSocketRoots = []string{
	"/sys/bus/platform/devices/smpro-misc.2.auto",
	"/sys/bus/platform/devices/smpro-misc.5.auto",
}

// Config is the top-level configuration for errmon.
type Config struct {
	Errmon  ErrmonConfig  `toml:"errmon"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
}

// ErrmonConfig controls the RAS report poller.
type ErrmonConfig struct {
	// SocketRoots holds one report directory per socket, in socket
	// order. An empty string disables that socket.
	SocketRoots []string `toml:"socket_roots"`

	PollInterval Duration `toml:"poll_interval"`
	FaultMarker  string   `toml:"fault_marker"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// MetricsConfig controls the optional Prometheus endpoint. An empty
// listen address disables it.
type MetricsConfig struct {
	Listen string `toml:"listen"`
}

// Duration wraps time.Duration for TOML string parsing (e.g. "1.2s").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Errmon: ErrmonConfig{
			SocketRoots:  append([]string(nil), defaultSocketRoots...),
			PollInterval: Duration{1200 * time.Millisecond},
			FaultMarker:  "/tmp/fault_RAS_UE",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the given path. The file must exist and
// parse; unset fields fall back to defaults with a warning, so a config
// drifting out of sync with the daemon shows up in the log.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if len(c.Errmon.SocketRoots) == 0 {
		slog.Warn("socket_roots unset, using defaults", "roots", def.Errmon.SocketRoots)
		c.Errmon.SocketRoots = def.Errmon.SocketRoots
	}
	if c.Errmon.PollInterval.Duration <= 0 {
		slog.Warn("poll_interval unset, using default", "interval", def.Errmon.PollInterval)
		c.Errmon.PollInterval = def.Errmon.PollInterval
	}
	if c.Errmon.FaultMarker == "" {
		c.Errmon.FaultMarker = def.Errmon.FaultMarker
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}
