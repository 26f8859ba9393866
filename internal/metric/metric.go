// Package metric exposes the daemon's operational counters in Prometheus
// text format.
package metric

import (
	"net/http"

	"github.com/VictoriaMetrics/metrics"
)

// Counters shared by the decode and delivery paths.
var (
	Sweeps           = metrics.NewCounter("errmon_sweeps_total")
	ErrorRecords     = metrics.NewCounter("errmon_error_records_total")
	EventTransitions = metrics.NewCounter("errmon_event_transitions_total")
	SELSubmitted     = metrics.NewCounter("errmon_sel_submitted_total")
	SELFailed        = metrics.NewCounter("errmon_sel_failed_total")
	AlertsSent       = metrics.NewCounter("errmon_redfish_alerts_total")
	AlertsFailed     = metrics.NewCounter("errmon_redfish_failed_total")
)

// Handle registers the metrics endpoint on mux.
func Handle(mux *http.ServeMux) {
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(rw, true)
	})
}
