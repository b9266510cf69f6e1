package session

import (
	"context"
	"sync"
	"time"

	"github.com/artpromedia/oru/internal/auth/domain"
)

// MemoryStore is a mutex-guarded in-process session map.
//
// Correct only for a single instance: nothing is shared across processes.
// Pair it with the housekeeping sweeper so abandoned pending sessions do
// not accumulate between lookups.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	now      func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]domain.Session),
		now:      time.Now,
	}
}

// SetClock overrides the time source. Tests only.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MemoryStore) Create(_ context.Context, s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[s.ID]; ok {
		return ErrAlreadyExists
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getLocked(id)
}

// getLocked looks up a session and lazily evicts it when expired.
// Callers must hold mu.
func (m *MemoryStore) getLocked(id string) (domain.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return domain.Session{}, ErrNotFound
	}
	if s.Expired(m.now().UTC()) {
		delete(m.sessions, id)
		return domain.Session{}, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) Touch(_ context.Context, id string, expiresAt time.Time) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.getLocked(id)
	if err != nil {
		return domain.Session{}, err
	}
	s.ExpiresAt = expiresAt
	m.sessions[id] = s
	return s, nil
}

func (m *MemoryStore) MarkVerified(_ context.Context, id string) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.getLocked(id)
	if err != nil {
		return domain.Session{}, err
	}
	s.MFAVerified = true
	m.sessions[id] = s
	return s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) DeleteExpired(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	removed := 0
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }

// Len reports the number of entries including not-yet-evicted expired
// ones. Tests only.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
