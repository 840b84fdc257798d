package sessionstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/session"
)

func authenticatedSession(t *testing.T) *session.Session {
	t.Helper()
	sess := session.New()
	require.NoError(t, sess.BeginAuthentication())
	identity := session.CustomerIdentity("user-1", "jane@example.com", "Jane")
	require.NoError(t, sess.CompleteAuthentication(identity, session.Credentials{
		AccessToken:      "access-1",
		RefreshToken:     "refresh-1",
		AccessExpiresAt:  time.Now().Add(15 * time.Minute),
		RefreshExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}))
	return sess
}

func TestCredentialBridge(t *testing.T) {
	ctx := context.Background()

	t.Run("reads the stored token pair", func(t *testing.T) {
		store := NewInMemoryStore(time.Hour)
		sess := authenticatedSession(t)
		require.NoError(t, store.Save(ctx, sess))

		bridge := NewCredentialBridge(store, sess.ID)
		creds, err := bridge.Credentials(ctx)
		require.NoError(t, err)
		assert.Equal(t, "access-1", creds.AccessToken)
	})

	t.Run("missing session yields empty credentials", func(t *testing.T) {
		bridge := NewCredentialBridge(NewInMemoryStore(time.Hour), uuid.New())
		creds, err := bridge.Credentials(ctx)
		require.NoError(t, err)
		assert.True(t, creds.IsZero())
	})

	t.Run("stores refreshed tokens on the session", func(t *testing.T) {
		store := NewInMemoryStore(time.Hour)
		sess := authenticatedSession(t)
		require.NoError(t, store.Save(ctx, sess))

		bridge := NewCredentialBridge(store, sess.ID)
		require.NoError(t, bridge.Store(ctx, session.Credentials{
			AccessToken:      "access-2",
			RefreshToken:     "refresh-2",
			AccessExpiresAt:  time.Now().Add(15 * time.Minute),
			RefreshExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		}))

		reloaded, err := store.FindByID(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, "access-2", reloaded.Credentials.AccessToken)
		assert.Equal(t, session.StateCustomer, reloaded.State)
	})

	t.Run("clear returns the session to guest", func(t *testing.T) {
		store := NewInMemoryStore(time.Hour)
		sess := authenticatedSession(t)
		require.NoError(t, store.Save(ctx, sess))

		bridge := NewCredentialBridge(store, sess.ID)
		require.NoError(t, bridge.Clear(ctx))

		reloaded, err := store.FindByID(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, session.StateGuest, reloaded.State)
		assert.True(t, reloaded.Credentials.IsZero())
		assert.True(t, reloaded.Identity.IsGuest())
	})

	t.Run("clear on a missing session is a no-op", func(t *testing.T) {
		bridge := NewCredentialBridge(NewInMemoryStore(time.Hour), uuid.New())
		assert.NoError(t, bridge.Clear(ctx))
	})
}
