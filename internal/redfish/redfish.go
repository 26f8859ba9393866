// Package redfish raises Redfish alerts by logging structured entries to
// the systemd journal. bmcweb picks up REDFISH_MESSAGE_ID entries and
// turns them into Redfish event log records.
package redfish

import (
	"log/slog"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"

	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/metric"
)

// Notifier sends alerts to the local journal.
type Notifier struct{}

// NewNotifier returns a Notifier. When no journal socket is available,
// alerts are logged and dropped.
func NewNotifier() *Notifier {
	if !journal.Enabled() {
		slog.Warn("systemd journal unavailable, Redfish alerts will be dropped")
	}
	return &Notifier{}
}

// Send logs one alert. The positional arguments are comma-joined into a
// single REDFISH_MESSAGE_ARGS field, matching the registry's expansion
// order.
func (n *Notifier) Send(messageID string, args ...string) {
	vars := map[string]string{
		"REDFISH_MESSAGE_ID": messageID,
	}
	if len(args) > 0 {
		vars["REDFISH_MESSAGE_ARGS"] = strings.Join(args, ",")
	}

	if err := journal.Send(messageID, journal.PriInfo, vars); err != nil {
		metric.AlertsFailed.Inc()
		slog.Error("Redfish alert dropped", "message_id", messageID, "error", err)
		return
	}
	metric.AlertsSent.Inc()
}
