package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/session"
	"github.com/storefront/backend/internal/domain/shared"
)

// InMemoryStore implements session.Repository in process memory. Suitable
// for single-instance deployments and tests; state is lost on restart.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]entry
	ttl      time.Duration
}

type entry struct {
	payload   session.Session
	expiresAt time.Time
}

// NewInMemoryStore creates an in-memory session store
func NewInMemoryStore(ttl time.Duration) *InMemoryStore {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &InMemoryStore{
		sessions: make(map[uuid.UUID]entry),
		ttl:      ttl,
	}
}

// FindByID loads a session, refreshing its TTL on access
func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[id]
	if !ok || time.Now().After(stored.expiresAt) {
		delete(s.sessions, id)
		return nil, shared.ErrNotFound
	}

	stored.expiresAt = time.Now().Add(s.ttl)
	s.sessions[id] = stored

	sess := stored.payload
	return &sess, nil
}

// Save persists a session with the configured TTL
func (s *InMemoryStore) Save(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID] = entry{
		payload:   *sess,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Delete removes a session
func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Ensure InMemoryStore implements session.Repository
var _ session.Repository = (*InMemoryStore)(nil)
