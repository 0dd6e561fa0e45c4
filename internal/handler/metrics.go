package handler

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/urlio/urlio-web/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	for _, key := range snap.SortedCallKeys() {
		stats := snap.APICalls[key]
		labels := fmt.Sprintf("operation=%q,outcome=%q", key.Operation, key.Outcome)
		writeMetric(w, "urlio_web_api_calls_total{%s} %d\n", labels, stats.Count)
		writeMetric(w, "urlio_web_api_call_duration_seconds_sum{%s} %.6f\n", labels, float64(stats.DurationTotalNs)/1e9)
	}

	writeMetric(w, "urlio_web_sessions_created_total %d\n", snap.SessionsCreated)
	writeMetric(w, "urlio_web_sessions_cleared_total %d\n", snap.SessionsCleared)

	targets := make([]string, 0, len(snap.GuardRedirects))
	for target := range snap.GuardRedirects {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	for _, target := range targets {
		writeMetric(w, "urlio_web_guard_redirects_total{target=%q} %d\n", target, snap.GuardRedirects[target])
	}
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
