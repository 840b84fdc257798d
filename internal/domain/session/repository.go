package session

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for session persistence
type Repository interface {
	// FindByID finds a session by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Session, error)

	// Save creates or updates a session
	Save(ctx context.Context, session *Session) error

	// Delete removes a session
	Delete(ctx context.Context, id uuid.UUID) error
}
