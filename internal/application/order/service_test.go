package order

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/session"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/commerce"
	"github.com/storefront/backend/internal/infrastructure/sessionstore"
)

func newService(t *testing.T, upstream http.Handler) (*Service, *sessionstore.InMemoryStore) {
	t.Helper()
	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	logger := zap.NewNop()
	client := commerce.NewClient(commerce.Config{BaseURL: server.URL, Timeout: 5 * time.Second}, logger)
	sessions := sessionstore.NewInMemoryStore(time.Hour)
	return NewService(sessions, client, logger), sessions
}

func sessionWithIdentity(t *testing.T, sessions *sessionstore.InMemoryStore, identity session.Identity) *session.Session {
	t.Helper()
	sess := session.New()
	if identity.IsAuthenticated() {
		require.NoError(t, sess.BeginAuthentication())
		require.NoError(t, sess.CompleteAuthentication(identity, session.Credentials{
			AccessToken:      "access-1",
			RefreshToken:     "refresh-1",
			AccessExpiresAt:  time.Now().Add(15 * time.Minute),
			RefreshExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		}))
	}
	require.NoError(t, sessions.Save(context.Background(), sess))
	return sess
}

func TestServiceGuards(t *testing.T) {
	ctx := context.Background()
	service, sessions := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call: %s %s", r.Method, r.URL.Path)
	}))

	t.Run("guests are unauthorized", func(t *testing.T) {
		sess := sessionWithIdentity(t, sessions, session.GuestIdentity())
		_, err := service.List(ctx, sess)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		_, err = service.Checkout(ctx, sess, commerce.CheckoutInput{})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("vendors need a customer account", func(t *testing.T) {
		sess := sessionWithIdentity(t, sessions, session.VendorIdentity("vendor-1", "shop@example.com", "Shop"))
		_, err := service.List(ctx, sess)
		assert.ErrorIs(t, err, shared.ErrCustomerRequired)
		_, err = service.PaymentSession(ctx, sess, "order-1")
		assert.ErrorIs(t, err, shared.ErrCustomerRequired)
	})
}

func TestServiceCheckout(t *testing.T) {
	ctx := context.Background()
	service, sessions := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/orders", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"order-1","status":"pending","total":"42.00","placed_at":"2026-08-30T10:00:00Z","items":[]}}`))
	}))

	sess := sessionWithIdentity(t, sessions, session.CustomerIdentity("user-1", "jane@example.com", "Jane"))
	placed, err := service.Checkout(ctx, sess, commerce.CheckoutInput{AddressID: "addr-1", PaymentMethod: "card"})
	require.NoError(t, err)
	assert.Equal(t, "order-1", placed.ID)
	assert.Equal(t, "42.00", placed.Total.StringFixed(2))
}
