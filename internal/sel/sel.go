// Package sel submits OEM records to the BMC's IPMI SEL logger over D-Bus.
package sel

import (
	"log/slog"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/metric"
)

const (
	busName    = "xyz.openbmc_project.Logging.IPMI"
	objectPath = "/xyz/openbmc_project/Logging/IPMI"
	addOEM     = "xyz.openbmc_project.Logging.IPMI.IpmiSelAddOem"

	// oemRecordType is the IPMI record type for timestamped OEM records.
	oemRecordType = 0xC0
)

// submitPacing is the delay after each submission. The SEL logger drops
// records when they arrive faster than it can timestamp them.
const submitPacing = 300 * time.Millisecond

// Logger writes OEM SEL records through the system bus. Submissions are
// fire and forget: a failed call is counted and logged but never reported
// to the caller.
type Logger struct {
	obj    dbus.BusObject
	pacing time.Duration
}

// NewLogger binds a Logger to the SEL service on conn.
func NewLogger(conn *dbus.Conn) *Logger {
	return &Logger{
		obj:    conn.Object(busName, objectPath),
		pacing: submitPacing,
	}
}

// AddOEM submits one 12-byte OEM payload with its log message, then
// sleeps for the pacing interval. The reply is consumed on a separate
// goroutine so a slow logger delays the sweep by the pacing only.
func (l *Logger) AddOEM(message string, data []byte) {
	ch := make(chan *dbus.Call, 1)
	l.obj.Go(addOEM, 0, ch, message, data, byte(oemRecordType))
	go func() {
		call := <-ch
		if call.Err != nil {
			metric.SELFailed.Inc()
			slog.Error("SEL submission failed", "error", call.Err)
			return
		}
		metric.SELSubmitted.Inc()
	}()
	time.Sleep(l.pacing)
}
