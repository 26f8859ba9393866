package poller

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/faultflag"
)

type chanSweeper struct {
	swept chan struct{}
}

func newChanSweeper() *chanSweeper {
	return &chanSweeper{swept: make(chan struct{}, 64)}
}

func (s *chanSweeper) Sweep() {
	s.swept <- struct{}{}
}

func (s *chanSweeper) wait(t *testing.T, why string) {
	t.Helper()
	select {
	case <-s.swept:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for sweep: %s", why)
	}
}

func (s *chanSweeper) expectNone(t *testing.T, d time.Duration, why string) {
	t.Helper()
	select {
	case <-s.swept:
		t.Fatalf("unexpected sweep: %s", why)
	case <-time.After(d):
	}
}

func testMarker(t *testing.T) *faultflag.Marker {
	t.Helper()
	return faultflag.New(filepath.Join(t.TempDir(), "fault_RAS_UE"))
}

func TestRunSweepsWhileHostRunning(t *testing.T) {
	sweeper := newChanSweeper()
	p := New(sweeper, testMarker(t), 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	states := make(chan bool)
	done := make(chan struct{})
	go func() {
		p.Run(ctx, states)
		close(done)
	}()

	states <- true
	sweeper.wait(t, "immediate sweep on power-on")
	sweeper.wait(t, "first periodic sweep")
	sweeper.wait(t, "second periodic sweep")

	cancel()
	<-done
}

func TestRunStopsOnHostOff(t *testing.T) {
	sweeper := newChanSweeper()
	fault := testMarker(t)
	fault.Set()
	p := New(sweeper, fault, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	states := make(chan bool)
	go p.Run(ctx, states)

	states <- true
	sweeper.wait(t, "immediate sweep on power-on")

	states <- false
	// Drain sweeps already queued before the off transition landed.
	for {
		select {
		case <-sweeper.swept:
			continue
		case <-time.After(50 * time.Millisecond):
		}
		break
	}
	sweeper.expectNone(t, 100*time.Millisecond, "sweep after power-off")

	if fault.Present() {
		t.Error("fault marker not cleared at power-off")
	}
}

func TestRunIgnoresRedundantRunningTransitions(t *testing.T) {
	sweeper := newChanSweeper()
	p := New(sweeper, testMarker(t), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	states := make(chan bool)
	go p.Run(ctx, states)

	states <- true
	sweeper.wait(t, "immediate sweep on power-on")

	// A repeated running notification must not trigger another immediate
	// sweep or reset the timer.
	states <- true
	sweeper.expectNone(t, 100*time.Millisecond, "sweep on redundant running transition")
}

func TestRunReturnsWhenStatesCloses(t *testing.T) {
	p := New(newChanSweeper(), testMarker(t), time.Hour)

	states := make(chan bool)
	done := make(chan struct{})
	go func() {
		p.Run(context.Background(), states)
		close(done)
	}()

	close(states)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after states channel closed")
	}
}

func TestNewDefaultsInterval(t *testing.T) {
	p := New(newChanSweeper(), testMarker(t), 0)
	if p.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", p.interval, DefaultInterval)
	}
}

func TestPowerOffClearsStaleMarkerFromPriorBoot(t *testing.T) {
	sweeper := newChanSweeper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fault_RAS_UE")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	fault := faultflag.New(path)
	p := New(sweeper, fault, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	states := make(chan bool, 1)
	done := make(chan struct{})
	go func() {
		p.Run(ctx, states)
		close(done)
	}()

	// Off notification without ever running still clears the marker.
	states <- false
	cancel()
	<-done

	if fault.Present() {
		t.Error("stale fault marker survived power-off notification")
	}
}
