package session

import (
	"cafeteria/internal/models"
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions and reconciliation records in process memory.
// It is used when no redis server is configured and in tests.
type MemoryStore struct {
	mu              sync.Mutex
	ttl             time.Duration
	sessions        map[string]memoryEntry
	reconciliations []models.Reconciliation
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, sessions: map[string]memoryEntry{}}
}

func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *s
	stored.Cart = s.Cart.clone()
	m.sessions[s.ID] = memoryEntry{session: stored, expiresAt: time.Now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if m.ttl > 0 && time.Now().After(entry.expiresAt) {
		delete(m.sessions, id)
		return nil, ErrNotFound
	}
	s := entry.session
	s.Cart = entry.session.Cart.clone()
	return &s, nil
}

func (m *MemoryStore) ConsumeCart(ctx context.Context, id string, version int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[id]
	if !ok || (m.ttl > 0 && time.Now().After(entry.expiresAt)) {
		return ErrNotFound
	}
	if entry.session.Cart.Version != version || entry.session.Cart.Empty() {
		return ErrCartChanged
	}
	entry.session.Cart = Consumed(version)
	entry.session.Touch()
	m.sessions[id] = entry
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) RecordReconciliation(ctx context.Context, rec models.Reconciliation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reconciliations = append(m.reconciliations, rec)
	return nil
}

func (m *MemoryStore) PendingReconciliations(ctx context.Context) ([]models.Reconciliation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Reconciliation, len(m.reconciliations))
	copy(out, m.reconciliations)
	return out, nil
}
