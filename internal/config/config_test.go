package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if len(cfg.Errmon.SocketRoots) != 2 {
		t.Fatalf("default socket roots count = %d, want 2", len(cfg.Errmon.SocketRoots))
	}
	if cfg.Errmon.SocketRoots[0] != "/sys/bus/platform/devices/smpro-misc.2.auto" {
		t.Errorf("socket 0 root = %q", cfg.Errmon.SocketRoots[0])
	}
	if cfg.Errmon.PollInterval.Duration != 1200*time.Millisecond {
		t.Errorf("default poll interval = %v, want 1.2s", cfg.Errmon.PollInterval.Duration)
	}
	if cfg.Errmon.FaultMarker != "/tmp/fault_RAS_UE" {
		t.Errorf("default fault marker = %q", cfg.Errmon.FaultMarker)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("default log level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Metrics.Listen != "" {
		t.Errorf("metrics listen = %q, want disabled by default", cfg.Metrics.Listen)
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.toml"); err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}

func TestLoadValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[errmon]
socket_roots = ["/tmp/s0", ""]
poll_interval = "2s"
fault_marker = "/run/fault_RAS_UE"

[log]
level = "debug"

[metrics]
listen = ":9105"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if len(cfg.Errmon.SocketRoots) != 2 {
		t.Fatalf("socket_roots count = %d, want 2", len(cfg.Errmon.SocketRoots))
	}
	if cfg.Errmon.SocketRoots[0] != "/tmp/s0" || cfg.Errmon.SocketRoots[1] != "" {
		t.Errorf("socket_roots = %v", cfg.Errmon.SocketRoots)
	}
	if cfg.Errmon.PollInterval.Duration != 2*time.Second {
		t.Errorf("poll_interval = %v, want 2s", cfg.Errmon.PollInterval.Duration)
	}
	if cfg.Errmon.FaultMarker != "/run/fault_RAS_UE" {
		t.Errorf("fault_marker = %q", cfg.Errmon.FaultMarker)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Metrics.Listen != ":9105" {
		t.Errorf("metrics.listen = %q, want %q", cfg.Metrics.Listen, ":9105")
	}
}

func TestLoadAppliesDefaultsForUnsetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	// Only the log level is set; everything else defaults.
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"warn\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	def := Default()
	if len(cfg.Errmon.SocketRoots) != len(def.Errmon.SocketRoots) {
		t.Errorf("socket_roots = %v, want defaults", cfg.Errmon.SocketRoots)
	}
	if cfg.Errmon.PollInterval.Duration != def.Errmon.PollInterval.Duration {
		t.Errorf("poll_interval = %v, want default %v",
			cfg.Errmon.PollInterval.Duration, def.Errmon.PollInterval.Duration)
	}
	if cfg.Errmon.FaultMarker != def.Errmon.FaultMarker {
		t.Errorf("fault_marker = %q, want default", cfg.Errmon.FaultMarker)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "warn")
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte("not valid [[[ toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid TOML, got nil")
	}
}

func TestDurationRoundTrip(t *testing.T) {
	d := Duration{1200 * time.Millisecond}
	text, err := d.MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	var back Duration
	if err := back.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if back.Duration != d.Duration {
		t.Errorf("round trip = %v, want %v", back.Duration, d.Duration)
	}
}
