// Package faultflag manages the uncorrectable-error marker file polled by
// the external fault LED monitor.
package faultflag

import (
	"log/slog"
	"os"
)

// DefaultPath is where the fault monitor expects the marker.
const DefaultPath = "/tmp/fault_RAS_UE"

// Marker is an existence flag on the filesystem. Set is idempotent; the
// marker stays up until the host powers off, however many errors follow.
type Marker struct {
	path string
}

// New returns a Marker at path, falling back to DefaultPath when empty.
func New(path string) *Marker {
	if path == "" {
		path = DefaultPath
	}
	return &Marker{path: path}
}

// Set creates the marker file. Failures are logged and swallowed; a
// missing marker must never stop error reporting.
func (m *Marker) Set() {
	f, err := os.OpenFile(m.path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		slog.Error("cannot create RAS UE fault marker", "path", m.path, "error", err)
		return
	}
	f.Close()
}

// Clear removes the marker if present.
func (m *Marker) Clear() {
	if !m.Present() {
		return
	}
	if err := os.Remove(m.path); err != nil {
		slog.Error("cannot remove RAS UE fault marker", "path", m.path, "error", err)
	}
}

// Present reports whether the marker file exists.
func (m *Marker) Present() bool {
	_, err := os.Stat(m.path)
	return err == nil
}
