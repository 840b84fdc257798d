package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/infrastructure/commerce"
)

func TestInMemoryCartStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing cart comes back empty", func(t *testing.T) {
		store := NewInMemoryCartStore()
		sessionID := uuid.New()

		guestCart, err := store.Get(ctx, sessionID)
		require.NoError(t, err)
		assert.True(t, guestCart.IsEmpty())
		assert.Equal(t, sessionID, guestCart.SessionID)
	})

	t.Run("save and reload round trip", func(t *testing.T) {
		store := NewInMemoryCartStore()
		sessionID := uuid.New()

		guestCart := cart.NewGuestCart(sessionID)
		require.NoError(t, guestCart.AddItem("prod-1"))
		require.NoError(t, guestCart.AddItem("prod-1"))
		require.NoError(t, guestCart.AddSavedItem("prod-2"))
		require.NoError(t, store.Save(ctx, guestCart))

		loaded, err := store.Get(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.Quantity("prod-1"))
		assert.True(t, loaded.HasSavedItem("prod-2"))
	})

	t.Run("loaded cart is a copy", func(t *testing.T) {
		store := NewInMemoryCartStore()
		sessionID := uuid.New()

		guestCart := cart.NewGuestCart(sessionID)
		require.NoError(t, guestCart.AddItem("prod-1"))
		require.NoError(t, store.Save(ctx, guestCart))

		first, err := store.Get(ctx, sessionID)
		require.NoError(t, err)
		require.NoError(t, first.AddItem("prod-1"))

		second, err := store.Get(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 1, second.Quantity("prod-1"))
	})

	t.Run("delete clears the cart", func(t *testing.T) {
		store := NewInMemoryCartStore()
		sessionID := uuid.New()

		guestCart := cart.NewGuestCart(sessionID)
		require.NoError(t, guestCart.AddItem("prod-1"))
		require.NoError(t, store.Save(ctx, guestCart))
		require.NoError(t, store.Delete(ctx, sessionID))

		loaded, err := store.Get(ctx, sessionID)
		require.NoError(t, err)
		assert.True(t, loaded.IsEmpty())

		// Deleting again is a no-op
		assert.NoError(t, store.Delete(ctx, sessionID))
	})
}

func TestInMemoryProductCache(t *testing.T) {
	ctx := context.Background()

	sample := func() *commerce.Product {
		return &commerce.Product{
			ID:    "prod-1",
			Name:  "Widget",
			Price: decimal.RequireFromString("19.99"),
		}
	}

	t.Run("miss returns nil without error", func(t *testing.T) {
		cache := NewInMemoryProductCache(time.Minute)

		product, err := cache.Get(ctx, "prod-1")
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("set then get", func(t *testing.T) {
		cache := NewInMemoryProductCache(time.Minute)
		require.NoError(t, cache.Set(ctx, sample()))

		product, err := cache.Get(ctx, "prod-1")
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "Widget", product.Name)
	})

	t.Run("entries expire", func(t *testing.T) {
		cache := NewInMemoryProductCache(20 * time.Millisecond)
		require.NoError(t, cache.Set(ctx, sample()))

		time.Sleep(50 * time.Millisecond)

		product, err := cache.Get(ctx, "prod-1")
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		cache := NewInMemoryProductCache(time.Minute)
		require.NoError(t, cache.Set(ctx, sample()))
		require.NoError(t, cache.Invalidate(ctx, "prod-1"))

		product, err := cache.Get(ctx, "prod-1")
		require.NoError(t, err)
		assert.Nil(t, product)
	})
}
