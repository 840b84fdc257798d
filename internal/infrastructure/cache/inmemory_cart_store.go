package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/cart"
)

// InMemoryCartStore implements cart.Store in process memory. Carts are
// stored as JSON snapshots so callers always work on their own copy.
type InMemoryCartStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID][]byte
}

// NewInMemoryCartStore creates an in-memory guest cart store
func NewInMemoryCartStore() *InMemoryCartStore {
	return &InMemoryCartStore{carts: make(map[uuid.UUID][]byte)}
}

// Get returns the stored guest cart, or a fresh empty cart when none exists
func (s *InMemoryCartStore) Get(_ context.Context, sessionID uuid.UUID) (*cart.GuestCart, error) {
	s.mu.RLock()
	payload, ok := s.carts[sessionID]
	s.mu.RUnlock()

	if !ok {
		return cart.NewGuestCart(sessionID), nil
	}

	var guestCart cart.GuestCart
	if err := json.Unmarshal(payload, &guestCart); err != nil {
		return nil, fmt.Errorf("failed to decode guest cart: %w", err)
	}
	return &guestCart, nil
}

// Save persists the guest cart
func (s *InMemoryCartStore) Save(_ context.Context, guestCart *cart.GuestCart) error {
	payload, err := json.Marshal(guestCart)
	if err != nil {
		return fmt.Errorf("failed to encode guest cart: %w", err)
	}

	s.mu.Lock()
	s.carts[guestCart.SessionID] = payload
	s.mu.Unlock()
	return nil
}

// Delete removes the guest cart for a session. No-op if absent.
func (s *InMemoryCartStore) Delete(_ context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	return nil
}

// Ensure InMemoryCartStore implements cart.Store
var _ cart.Store = (*InMemoryCartStore)(nil)
