package viewer

import (
	"context"
	"sync"
	"time"

	"github.com/keyxmakerx/atlas/internal/apperror"
)

// SessionStore persists viewer states. Save replaces the whole state and
// refreshes its expiry; Get returns a not-found error for unknown or
// expired sessions.
type SessionStore interface {
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, s State) error
	Delete(ctx context.Context, id string) error
}

// errSessionNotFound is returned for unknown or expired sessions.
func errSessionNotFound() error {
	return apperror.NewNotFound("viewer session not found")
}

type memoryEntry struct {
	state   State
	expires time.Time
}

// MemoryStore keeps sessions in process memory. Used when Redis is not
// configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory store whose sessions expire ttl after
// their last save.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, errSessionNotFound()
	}
	if m.now().After(e.expires) {
		delete(m.entries, id)
		return nil, errSessionNotFound()
	}
	s := e.state
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[s.ID] = memoryEntry{state: s, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

// Sweep drops expired sessions.
func (m *MemoryStore) Sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, e := range m.entries {
		if now.After(e.expires) {
			delete(m.entries, id)
		}
	}
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
