// Package hwmon locates the per-socket SMpro error report directories
// exported by the smpro-misc platform driver and reads the line-oriented
// report files underneath them.
package hwmon

import (
	"bufio"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

// probeFile is the report that must exist for a socket root to count as
// discovered. The driver creates all report files together, so checking
// one is enough.
const probeFile = "error_core_ce"

// Tree holds the discovered per-socket report roots. A socket whose root
// failed discovery has an empty string and is silently skipped by Path.
type Tree struct {
	roots []string
}

// Discover probes each candidate root directory and returns a Tree of the
// ones that exist and carry report files. It returns an error only when no
// socket root could be found at all.
func Discover(roots []string) (*Tree, error) {
	t := &Tree{roots: make([]string, len(roots))}
	found := false
	for socket, root := range roots {
		if root == "" {
			continue
		}
		fi, err := os.Stat(root)
		if err != nil || !fi.IsDir() {
			slog.Warn("socket report root not present", "socket", socket, "path", root)
			continue
		}
		if _, err := os.Stat(filepath.Join(root, probeFile)); err != nil {
			slog.Warn("socket report root has no report files", "socket", socket, "path", root)
			continue
		}
		t.roots[socket] = root
		found = true
		slog.Info("socket report root discovered", "socket", socket, "path", root)
	}
	if !found {
		return nil, errors.New("no SMpro errmon root path found on any socket")
	}
	return t, nil
}

// Path resolves a report label for a socket to an absolute file path.
// It returns "" when the socket's root was not discovered.
func (t *Tree) Path(socket int, label string) string {
	if socket < 0 || socket >= len(t.roots) || t.roots[socket] == "" {
		return ""
	}
	return filepath.Join(t.roots[socket], label)
}

// ReadLines reads every line of the report file at path. A missing or
// unreadable file is "no data", not an error: the driver removes report
// files while the host is down. Each poll reopens the file; reports are
// one-shot reads, the driver clears them once consumed.
func ReadLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		slog.Debug("report read stopped early", "path", path, "error", err)
	}
	return lines
}
