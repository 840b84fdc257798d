package session

import (
	"time"

	"github.com/storefront/backend/internal/domain/shared"
)

// State represents the authentication state of a browser session
type State string

const (
	// StateGuest means no token is held for the session
	StateGuest State = "guest"
	// StateAuthenticating means a token exchange is in flight
	StateAuthenticating State = "authenticating"
	// StateCustomer means the session holds customer credentials
	StateCustomer State = "customer"
	// StateVendor means the session holds vendor credentials
	StateVendor State = "vendor"
)

// Credentials is the upstream-issued token pair held for a session.
// The access token is short-lived; the refresh token outlives it and is
// exchanged once per expired request (never more) by the commerce client.
type Credentials struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// IsZero reports whether no tokens are held
func (c Credentials) IsZero() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

// Session is the aggregate root for one browser session. It owns the
// authentication state machine:
//
//	guest -> authenticating        on login/signup submit
//	authenticating -> customer     on success with a customer role
//	authenticating -> vendor       on success with a vendor role
//	authenticating -> guest        on failure
//	customer/vendor -> guest       on logout or unrecoverable token expiry
type Session struct {
	shared.BaseAggregateRoot
	State       State       `json:"state"`
	Identity    Identity    `json:"identity"`
	Credentials Credentials `json:"credentials"`
}

// New creates a fresh guest session
func New() *Session {
	return &Session{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		State:             StateGuest,
		Identity:          GuestIdentity(),
	}
}

// BeginAuthentication marks a token exchange as in flight
func (s *Session) BeginAuthentication() error {
	if s.State != StateGuest {
		return shared.ErrInvalidState
	}
	s.State = StateAuthenticating
	s.UpdatedAt = time.Now()
	return nil
}

// CompleteAuthentication transitions to the authenticated state matching
// the identity's kind and stores the issued credentials
func (s *Session) CompleteAuthentication(identity Identity, creds Credentials) error {
	if s.State != StateAuthenticating {
		return shared.ErrInvalidState
	}
	switch identity.Kind {
	case KindCustomer:
		s.State = StateCustomer
	case KindVendor:
		s.State = StateVendor
	default:
		return shared.ErrInvalidState
	}
	s.Identity = identity
	s.Credentials = creds
	s.UpdatedAt = time.Now()
	return nil
}

// FailAuthentication returns the session to the guest state. Guest-held
// cart state is deliberately untouched.
func (s *Session) FailAuthentication() error {
	if s.State != StateAuthenticating {
		return shared.ErrInvalidState
	}
	s.State = StateGuest
	s.Identity = GuestIdentity()
	s.Credentials = Credentials{}
	s.UpdatedAt = time.Now()
	return nil
}

// Revoke drops credentials and returns the session to the guest state.
// Used on logout and on token expiry with no usable refresh token.
func (s *Session) Revoke() {
	s.State = StateGuest
	s.Identity = GuestIdentity()
	s.Credentials = Credentials{}
	s.UpdatedAt = time.Now()
}

// UpdateCredentials replaces the held token pair after a refresh
func (s *Session) UpdateCredentials(creds Credentials) error {
	if s.State != StateCustomer && s.State != StateVendor {
		return shared.ErrInvalidState
	}
	s.Credentials = creds
	s.UpdatedAt = time.Now()
	return nil
}
