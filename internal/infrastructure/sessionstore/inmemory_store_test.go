package sessionstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/session"
	"github.com/storefront/backend/internal/domain/shared"
)

func TestInMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(time.Hour)

	sess := session.New()
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.FindByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Equal(t, session.StateGuest, loaded.State)
}

func TestInMemoryStoreMissingSession(t *testing.T) {
	store := NewInMemoryStore(time.Hour)

	_, err := store.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(20 * time.Millisecond)

	sess := session.New()
	require.NoError(t, store.Save(ctx, sess))

	time.Sleep(50 * time.Millisecond)

	_, err := store.FindByID(ctx, sess.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(time.Hour)

	sess := session.New()
	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err := store.FindByID(ctx, sess.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Deleting again is a no-op
	assert.NoError(t, store.Delete(ctx, sess.ID))
}

func TestInMemoryStoreReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(time.Hour)

	sess := session.New()
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.FindByID(ctx, sess.ID)
	require.NoError(t, err)
	loaded.State = session.StateAuthenticating

	reloaded, err := store.FindByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, session.StateGuest, reloaded.State)
}
