package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/application/storefront"
	"github.com/storefront/backend/internal/domain/session"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/commerce"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/sessionstore"
)

type fixture struct {
	service  *Service
	sessions *sessionstore.InMemoryStore
	store    *cache.InMemoryCartStore
}

func newFixture(t *testing.T, upstream http.Handler) *fixture {
	t.Helper()
	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	logger := zap.NewNop()
	client := commerce.NewClient(commerce.Config{BaseURL: server.URL, Timeout: 5 * time.Second}, logger)
	sessions := sessionstore.NewInMemoryStore(time.Hour)
	store := cache.NewInMemoryCartStore()
	bridge := storefront.NewBridge(store, event.NewInMemoryEventBus(logger), logger)

	return &fixture{
		service:  NewService(sessions, client, bridge, logger),
		sessions: sessions,
		store:    store,
	}
}

func accountResponse(role string) string {
	payload, _ := json.Marshal(map[string]any{
		"success": true,
		"data": map[string]any{
			"user": map[string]any{
				"id":    "user-1",
				"email": "jane@example.com",
				"role":  role,
			},
			"token": map[string]any{
				"access_token":  "access-1",
				"refresh_token": "refresh-1",
			},
		},
	})
	return string(payload)
}

func seedGuestCart(t *testing.T, f *fixture, sess *session.Session) {
	t.Helper()
	guestCart, err := f.store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	require.NoError(t, guestCart.AddItem("prod-1"))
	require.NoError(t, f.store.Save(context.Background(), guestCart))
}

func TestServiceLogin(t *testing.T) {
	ctx := context.Background()
	loginReq := LoginRequest{Email: "jane@example.com", Password: "secret"}

	t.Run("customer login merges and clears the guest cart", func(t *testing.T) {
		var mergedProducts []string
		f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/auth/login":
				_, _ = w.Write([]byte(accountResponse("customer")))
			case "/users/cart/items":
				var body map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				mergedProducts = append(mergedProducts, body["product_id"].(string))
				_, _ = w.Write([]byte(`{"success":true}`))
			default:
				t.Errorf("unexpected upstream call: %s %s", r.Method, r.URL.Path)
			}
		}))

		sess := session.New()
		require.NoError(t, f.sessions.Save(ctx, sess))
		seedGuestCart(t, f, sess)

		view, err := f.service.Login(ctx, sess, loginReq)
		require.NoError(t, err)
		assert.Equal(t, string(session.StateCustomer), view.State)
		assert.Equal(t, "user-1", view.UserID)
		require.NotNil(t, view.Merge)
		assert.Equal(t, 1, view.Merge.CartItemsMerged)
		assert.Equal(t, []string{"prod-1"}, mergedProducts)

		guestCart, err := f.store.Get(ctx, sess.ID)
		require.NoError(t, err)
		assert.True(t, guestCart.IsEmpty())

		stored, err := f.sessions.FindByID(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, session.StateCustomer, stored.State)
		assert.Equal(t, "access-1", stored.Credentials.AccessToken)
	})

	t.Run("vendor login leaves the guest cart alone", func(t *testing.T) {
		f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/login", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(accountResponse("vendor")))
		}))

		sess := session.New()
		require.NoError(t, f.sessions.Save(ctx, sess))
		seedGuestCart(t, f, sess)

		view, err := f.service.Login(ctx, sess, loginReq)
		require.NoError(t, err)
		assert.Equal(t, string(session.StateVendor), view.State)
		assert.Nil(t, view.Merge)

		guestCart, err := f.store.Get(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, guestCart.Quantity("prod-1"))
	})

	t.Run("rejected login returns to guest and keeps the cart", func(t *testing.T) {
		f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"INVALID_CREDENTIALS","message":"wrong email or password"}}`))
		}))

		sess := session.New()
		require.NoError(t, f.sessions.Save(ctx, sess))
		seedGuestCart(t, f, sess)

		_, err := f.service.Login(ctx, sess, loginReq)
		require.Error(t, err)

		stored, err := f.sessions.FindByID(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, session.StateGuest, stored.State)
		assert.True(t, stored.Credentials.IsZero())

		guestCart, err := f.store.Get(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, guestCart.Quantity("prod-1"))
	})

	t.Run("unknown role falls back to guest", func(t *testing.T) {
		f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(accountResponse("admin")))
		}))

		sess := session.New()
		require.NoError(t, f.sessions.Save(ctx, sess))

		_, err := f.service.Login(ctx, sess, loginReq)
		require.Error(t, err)

		stored, err := f.sessions.FindByID(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, session.StateGuest, stored.State)
	})

	t.Run("login on an authenticated session is rejected", func(t *testing.T) {
		f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(accountResponse("customer")))
		}))

		sess := session.New()
		require.NoError(t, f.sessions.Save(ctx, sess))

		_, err := f.service.Login(ctx, sess, loginReq)
		require.NoError(t, err)

		_, err = f.service.Login(ctx, sess, loginReq)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestServiceRegister(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		var body commerce.RegisterInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "vendor", body.Role)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(accountResponse("vendor")))
	}))

	sess := session.New()
	require.NoError(t, f.sessions.Save(ctx, sess))

	view, err := f.service.Register(ctx, sess, RegisterRequest{
		Email:    "shop@example.com",
		Password: "password123",
		Role:     "vendor",
	})
	require.NoError(t, err)
	assert.Equal(t, string(session.StateVendor), view.State)
}

func TestServiceLogout(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(accountResponse("customer")))
	}))

	sess := session.New()
	require.NoError(t, f.sessions.Save(ctx, sess))

	_, err := f.service.Login(ctx, sess, LoginRequest{Email: "jane@example.com", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, sess))

	stored, err := f.sessions.FindByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, session.StateGuest, stored.State)
	assert.True(t, stored.Credentials.IsZero())
	assert.True(t, stored.Identity.IsGuest())
}

func TestServiceCurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("guest session is described without upstream calls", func(t *testing.T) {
		f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("unexpected upstream call: %s %s", r.Method, r.URL.Path)
		}))

		sess := session.New()
		require.NoError(t, f.sessions.Save(ctx, sess))

		view := f.service.Current(ctx, sess)
		assert.Equal(t, string(session.StateGuest), view.State)
		assert.Empty(t, view.UserID)
	})

	t.Run("authenticated session refreshes the profile", func(t *testing.T) {
		f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/auth/login":
				_, _ = w.Write([]byte(accountResponse("customer")))
			case "/users/me":
				_, _ = w.Write([]byte(`{"success":true,"data":{"id":"user-1","email":"jane@example.com","role":"customer","display_name":"Jane Renamed"}}`))
			default:
				t.Errorf("unexpected upstream call: %s %s", r.Method, r.URL.Path)
			}
		}))

		sess := session.New()
		require.NoError(t, f.sessions.Save(ctx, sess))
		_, err := f.service.Login(ctx, sess, LoginRequest{Email: "jane@example.com", Password: "secret"})
		require.NoError(t, err)

		view := f.service.Current(ctx, sess)
		assert.Equal(t, "Jane Renamed", view.DisplayName)
	})
}
