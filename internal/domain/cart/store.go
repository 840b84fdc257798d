package cart

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for guest cart persistence. Implementations
// are keyed by session ID; a missing cart is not an error, callers receive
// a fresh empty cart instead.
type Store interface {
	// Get returns the guest cart for a session, creating an empty one if
	// none is stored yet
	Get(ctx context.Context, sessionID uuid.UUID) (*GuestCart, error)

	// Save persists the guest cart
	Save(ctx context.Context, cart *GuestCart) error

	// Delete removes the guest cart for a session. No-op if absent.
	Delete(ctx context.Context, sessionID uuid.UUID) error
}
