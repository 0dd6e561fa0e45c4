package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// ObserveAPICall is a no-op.
func (n *NoopRecorder) ObserveAPICall(operation, outcome string, duration time.Duration) {}

// IncSessionCreated is a no-op.
func (n *NoopRecorder) IncSessionCreated() {}

// IncSessionCleared is a no-op.
func (n *NoopRecorder) IncSessionCleared() {}

// IncGuardRedirect is a no-op.
func (n *NoopRecorder) IncGuardRedirect(target string) {}
