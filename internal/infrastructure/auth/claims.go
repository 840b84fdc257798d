package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Common errors
var (
	ErrMalformedToken = errors.New("malformed token")
	ErrMissingSubject = errors.New("missing subject in claims")
)

// TokenClaims is the subset of upstream JWT claims this service reads
type TokenClaims struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

// upstreamClaims mirrors the claim layout of tokens issued by the commerce API
type upstreamClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
}

// InspectToken decodes the claims of an upstream-issued token without
// verifying its signature. This service is a client of the commerce API,
// not the token issuer; it cannot verify the upstream signing key and only
// reads expiry and role hints for proactive refresh and display. The
// upstream API remains the authority on token validity.
func InspectToken(tokenString string) (*TokenClaims, error) {
	claims := &upstreamClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrMalformedToken
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return nil, ErrMissingSubject
	}

	out := &TokenClaims{
		UserID: userID,
		Role:   claims.Role,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// TokenExpiry returns the expiry of a token, or the provided fallback when
// the token is unreadable or carries no expiry claim
func TokenExpiry(tokenString string, fallback time.Time) time.Time {
	claims, err := InspectToken(tokenString)
	if err != nil || claims.ExpiresAt.IsZero() {
		return fallback
	}
	return claims.ExpiresAt
}
