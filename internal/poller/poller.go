// Package poller drives report sweeps while the host is powered on.
package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/faultflag"
	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/metric"
)

// DefaultInterval is the sweep period while the host runs. The firmware
// refreshes report files on a similar cadence; polling much faster only
// rereads unchanged files.
const DefaultInterval = 1200 * time.Millisecond

// Sweeper performs one full pass over all report sources.
type Sweeper interface {
	Sweep()
}

// Poller runs sweeps on a fixed interval gated by host power state.
// All sweeps happen on the Run goroutine, so a Sweeper needs no locking.
type Poller struct {
	sweep    Sweeper
	fault    *faultflag.Marker
	interval time.Duration
}

// New builds a Poller. A zero interval selects DefaultInterval.
func New(sweep Sweeper, fault *faultflag.Marker, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{sweep: sweep, fault: fault, interval: interval}
}

// Run consumes host power transitions until ctx is done or states
// closes. A transition to running triggers an immediate sweep and starts
// the periodic timer; a transition to off stops the timer and clears the
// fault marker. Redundant transitions are ignored.
func (p *Poller) Run(ctx context.Context, states <-chan bool) {
	var ticker *time.Ticker
	var tick <-chan time.Time
	stop := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tick = nil
		}
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return

		case running, ok := <-states:
			if !ok {
				return
			}
			if running {
				if ticker == nil {
					slog.Info("host running, polling started", "interval", p.interval)
					p.sweepOnce()
					ticker = time.NewTicker(p.interval)
					tick = ticker.C
				}
			} else {
				if ticker != nil {
					slog.Info("host stopped, polling paused")
				}
				stop()
				p.fault.Clear()
			}

		case <-tick:
			p.sweepOnce()
		}
	}
}

func (p *Poller) sweepOnce() {
	metric.Sweeps.Inc()
	p.sweep.Sweep()
}
