package hwmon

import (
	"os"
	"path/filepath"
	"testing"
)

func makeRoot(t *testing.T, withProbe bool) string {
	t.Helper()
	dir := t.TempDir()
	if withProbe {
		if err := os.WriteFile(filepath.Join(dir, probeFile), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestDiscover(t *testing.T) {
	s0 := makeRoot(t, true)
	s1 := makeRoot(t, false) // exists but no report files

	tree, err := Discover([]string{s0, s1})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if got := tree.Path(0, "error_core_ue"); got != filepath.Join(s0, "error_core_ue") {
		t.Errorf("Path(0) = %q", got)
	}
	if got := tree.Path(1, "error_core_ue"); got != "" {
		t.Errorf("Path(1) = %q, want empty for undiscovered socket", got)
	}
	if got := tree.Path(7, "error_core_ue"); got != "" {
		t.Errorf("Path(7) = %q, want empty for out-of-range socket", got)
	}
}

func TestDiscoverAllMissing(t *testing.T) {
	if _, err := Discover([]string{filepath.Join(t.TempDir(), "nope"), ""}); err == nil {
		t.Fatal("expected error when no socket root exists")
	}
}

func TestReadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "event_vrd_hot")
	if err := os.WriteFile(path, []byte("01 0010\n02 0003\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	lines := ReadLines(path)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "01 0010" {
		t.Errorf("line 0 = %q", lines[0])
	}

	if got := ReadLines(filepath.Join(dir, "missing")); got != nil {
		t.Errorf("missing file: got %v, want nil", got)
	}
}
