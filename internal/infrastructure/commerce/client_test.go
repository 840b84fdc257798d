package commerce

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
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func writeData(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	writeJSON(t, w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func writeError(t *testing.T, w http.ResponseWriter, status int, code, message string) {
	t.Helper()
	writeJSON(t, w, status, map[string]any{
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(Config{BaseURL: server.URL, Timeout: 5 * time.Second}, zap.NewNop())
	return client, server
}

func TestClientLogin(t *testing.T) {
	t.Run("successful login returns account and tokens", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/auth/login", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "jane@example.com", body["email"])

			writeData(t, w, AccountPayload{
				User:  UserPayload{ID: "user-1", Email: "jane@example.com", Role: "customer"},
				Token: TokenPayload{AccessToken: "access-1", RefreshToken: "refresh-1"},
			})
		}))

		account, err := client.Login(context.Background(), "jane@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "user-1", account.User.ID)
		assert.Equal(t, "access-1", account.Token.AccessToken)
	})

	t.Run("rejected login surfaces api error", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(t, w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "wrong email or password")
		}))

		_, err := client.Login(context.Background(), "jane@example.com", "wrong")
		require.Error(t, err)
		require.True(t, IsUnauthorized(err))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)
		assert.Equal(t, "wrong email or password", apiErr.Message)
	})
}

func TestClientGetProduct(t *testing.T) {
	t.Run("decodes optional fields when present", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/products/prod-1", r.URL.Path)
			writeData(t, w, map[string]any{
				"id":         "prod-1",
				"name":       "Widget",
				"price":      "19.99",
				"sale_price": "14.99",
				"stock":      3,
			})
		}))

		product, err := client.GetProduct(context.Background(), "prod-1")
		require.NoError(t, err)
		assert.Equal(t, "Widget", product.Name)
		assert.Equal(t, "14.99", product.EffectivePrice().StringFixed(2))
		assert.True(t, product.InStock())
	})

	t.Run("falls back when optional fields absent", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeData(t, w, map[string]any{"id": "prod-2", "name": "Gadget", "price": "5.00"})
		}))

		product, err := client.GetProduct(context.Background(), "prod-2")
		require.NoError(t, err)
		assert.Nil(t, product.SalePrice)
		assert.Equal(t, "5.00", product.EffectivePrice().StringFixed(2))
		assert.True(t, product.InStock())
	})

	t.Run("missing product maps to not found", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(t, w, http.StatusNotFound, "PRODUCT_NOT_FOUND", "no such product")
		}))

		_, err := client.GetProduct(context.Background(), "missing")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})
}

func TestClientListProducts(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "wid", r.URL.Query().Get("search"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		writeData(t, w, []map[string]any{
			{"id": "prod-1", "name": "Widget", "price": "19.99"},
			{"id": "prod-2", "name": "Wide Gadget", "price": "7.50"},
		})
	}))

	products, err := client.ListProducts(context.Background(), ProductQuery{Search: "wid", Page: 2})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "prod-2", products[1].ID)
}

func TestClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(Config{BaseURL: server.URL, Timeout: time.Second}, zap.NewNop())
	_, err := client.GetProduct(context.Background(), "prod-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}
