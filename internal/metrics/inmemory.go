package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// CallKey identifies one operation/outcome pair.
type CallKey struct {
	Operation string
	Outcome   string
}

// CallStats aggregates the calls observed for one CallKey.
type CallStats struct {
	Count           uint64
	DurationTotalNs int64
}

// Snapshot captures current in-memory counters.
type Snapshot struct {
	APICalls        map[CallKey]CallStats
	SessionsCreated uint64
	SessionsCleared uint64
	GuardRedirects  map[string]uint64
}

// SortedCallKeys returns the API call keys in a stable order.
func (s Snapshot) SortedCallKeys() []CallKey {
	keys := make([]CallKey, 0, len(s.APICalls))
	for k := range s.APICalls {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Operation != keys[j].Operation {
			return keys[i].Operation < keys[j].Operation
		}
		return keys[i].Outcome < keys[j].Outcome
	})
	return keys
}

// InMemoryRecorder stores metrics in memory. It backs the /metrics endpoint
// and is handy in tests.
type InMemoryRecorder struct {
	mu             sync.Mutex
	apiCalls       map[CallKey]CallStats
	guardRedirects map[string]uint64

	sessionsCreated uint64
	sessionsCleared uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		apiCalls:       make(map[CallKey]CallStats),
		guardRedirects: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	calls := make(map[CallKey]CallStats, len(m.apiCalls))
	for k, v := range m.apiCalls {
		calls[k] = v
	}
	redirects := make(map[string]uint64, len(m.guardRedirects))
	for k, v := range m.guardRedirects {
		redirects[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		APICalls:        calls,
		SessionsCreated: atomic.LoadUint64(&m.sessionsCreated),
		SessionsCleared: atomic.LoadUint64(&m.sessionsCleared),
		GuardRedirects:  redirects,
	}
}

// ObserveAPICall records one gateway call.
func (m *InMemoryRecorder) ObserveAPICall(operation, outcome string, duration time.Duration) {
	key := CallKey{Operation: operation, Outcome: outcome}

	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.apiCalls[key]
	stats.Count++
	stats.DurationTotalNs += duration.Nanoseconds()
	m.apiCalls[key] = stats
}

// IncSessionCreated increments the session created counter.
func (m *InMemoryRecorder) IncSessionCreated() {
	atomic.AddUint64(&m.sessionsCreated, 1)
}

// IncSessionCleared increments the session cleared counter.
func (m *InMemoryRecorder) IncSessionCleared() {
	atomic.AddUint64(&m.sessionsCleared, 1)
}

// IncGuardRedirect counts a guard redirect to target.
func (m *InMemoryRecorder) IncGuardRedirect(target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guardRedirects[target]++
}
