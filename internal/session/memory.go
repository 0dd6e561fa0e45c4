package session

import (
	"context"
	"sync"
	"time"

	"github.com/urlio/urlio-web/internal/model"
)

type memoryEntry struct {
	session   model.Session
	expiresAt time.Time
}

// MemoryStore is a process-local Store. Records are copied on the way in
// and out so callers only ever hold snapshots.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns a copy of the live record for id.
func (m *MemoryStore) Get(ctx context.Context, id string) (*model.Session, error) {
	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	return cloneSession(&entry.session), nil
}

// Set stores a copy of s for ttl. A non-positive ttl never expires.
func (m *MemoryStore) Set(ctx context.Context, id string, s *model.Session, ttl time.Duration) error {
	entry := memoryEntry{session: *cloneSession(s)}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[id] = entry
	m.mu.Unlock()
	return nil
}

// Delete removes the record for id.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

func cloneSession(s *model.Session) *model.Session {
	if s == nil {
		return &model.Session{}
	}
	out := &model.Session{Token: s.Token}
	if s.User != nil {
		user := *s.User
		out.User = &user
	}
	return out
}
