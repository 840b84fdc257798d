package sessionstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/session"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/commerce"
)

// CredentialBridge exposes one stored session's token pair to the
// commerce client. Refreshed tokens are written back to the session so
// every later request for this browser picks them up; clearing the
// credentials drops the session back to the guest state.
type CredentialBridge struct {
	repo      session.Repository
	sessionID uuid.UUID
}

// NewCredentialBridge creates a credential bridge for one session
func NewCredentialBridge(repo session.Repository, sessionID uuid.UUID) *CredentialBridge {
	return &CredentialBridge{repo: repo, sessionID: sessionID}
}

// Credentials returns the token pair currently held by the session. A
// missing session yields empty credentials, not an error.
func (b *CredentialBridge) Credentials(ctx context.Context) (session.Credentials, error) {
	sess, err := b.repo.FindByID(ctx, b.sessionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return session.Credentials{}, nil
		}
		return session.Credentials{}, fmt.Errorf("load session credentials: %w", err)
	}
	return sess.Credentials, nil
}

// Store writes a refreshed token pair back to the session
func (b *CredentialBridge) Store(ctx context.Context, creds session.Credentials) error {
	sess, err := b.repo.FindByID(ctx, b.sessionID)
	if err != nil {
		return fmt.Errorf("load session for credential update: %w", err)
	}
	if err := sess.UpdateCredentials(creds); err != nil {
		return err
	}
	return b.repo.Save(ctx, sess)
}

// Clear drops the session's credentials and returns it to the guest state
func (b *CredentialBridge) Clear(ctx context.Context) error {
	sess, err := b.repo.FindByID(ctx, b.sessionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load session for credential clear: %w", err)
	}
	sess.Revoke()
	return b.repo.Save(ctx, sess)
}

// Ensure CredentialBridge implements the commerce client's interface
var _ commerce.CredentialStore = (*CredentialBridge)(nil)
