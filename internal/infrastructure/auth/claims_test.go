package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	return signed
}

func TestInspectToken(t *testing.T) {
	expiry := time.Now().Add(15 * time.Minute).Truncate(time.Second)

	t.Run("reads user id, role and expiry without the signing key", func(t *testing.T) {
		signed := signToken(t, &upstreamClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				ExpiresAt: jwt.NewNumericDate(expiry),
			},
			UserID: "user-1",
			Role:   "customer",
		})

		claims, err := InspectToken(signed)
		require.NoError(t, err)

		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "customer", claims.Role)
		assert.True(t, claims.ExpiresAt.Equal(expiry))
	})

	t.Run("falls back to subject when user_id claim absent", func(t *testing.T) {
		signed := signToken(t, &jwt.RegisteredClaims{
			Subject:   "user-2",
			ExpiresAt: jwt.NewNumericDate(expiry),
		})

		claims, err := InspectToken(signed)
		require.NoError(t, err)
		assert.Equal(t, "user-2", claims.UserID)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := InspectToken("not-a-token")
		assert.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("rejects tokens without any subject", func(t *testing.T) {
		signed := signToken(t, &jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
		})

		_, err := InspectToken(signed)
		assert.ErrorIs(t, err, ErrMissingSubject)
	})
}

func TestTokenExpiry(t *testing.T) {
	fallback := time.Now().Add(time.Minute)

	t.Run("uses claim expiry when present", func(t *testing.T) {
		expiry := time.Now().Add(30 * time.Minute).Truncate(time.Second)
		signed := signToken(t, &jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(expiry),
		})

		assert.True(t, TokenExpiry(signed, fallback).Equal(expiry))
	})

	t.Run("uses fallback for unreadable tokens", func(t *testing.T) {
		assert.True(t, TokenExpiry("garbage", fallback).Equal(fallback))
	})
}
