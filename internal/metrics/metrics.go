// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// API call outcomes.
const (
	OutcomeSuccess      = "success"
	OutcomeClientError  = "client_error"
	OutcomeServerError  = "server_error"
	OutcomeNetworkError = "network_error"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Gateway client metrics
	ObserveAPICall(operation, outcome string, duration time.Duration)

	// Session metrics
	IncSessionCreated()
	IncSessionCleared()

	// Route guard metrics
	IncGuardRedirect(target string)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
