package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCredentials() Credentials {
	return Credentials{
		AccessToken:      "access",
		RefreshToken:     "refresh",
		AccessExpiresAt:  time.Now().Add(15 * time.Minute),
		RefreshExpiresAt: time.Now().Add(168 * time.Hour),
	}
}

func TestNewSession(t *testing.T) {
	s := New()
	require.NotNil(t, s)

	assert.Equal(t, StateGuest, s.State)
	assert.True(t, s.Identity.IsGuest())
	assert.True(t, s.Credentials.IsZero())
	assert.NotEmpty(t, s.ID)
}

func TestSessionStateMachine(t *testing.T) {
	t.Run("guest to customer on successful authentication", func(t *testing.T) {
		s := New()
		require.NoError(t, s.BeginAuthentication())
		assert.Equal(t, StateAuthenticating, s.State)

		identity := CustomerIdentity("user-1", "a@example.com", "Alice")
		require.NoError(t, s.CompleteAuthentication(identity, testCredentials()))

		assert.Equal(t, StateCustomer, s.State)
		assert.True(t, s.Identity.IsCustomer())
		assert.False(t, s.Credentials.IsZero())
	})

	t.Run("guest to vendor on successful authentication", func(t *testing.T) {
		s := New()
		require.NoError(t, s.BeginAuthentication())

		identity := VendorIdentity("user-2", "v@example.com", "Vera")
		require.NoError(t, s.CompleteAuthentication(identity, testCredentials()))

		assert.Equal(t, StateVendor, s.State)
		assert.True(t, s.Identity.IsVendor())
	})

	t.Run("failure returns to guest without credentials", func(t *testing.T) {
		s := New()
		require.NoError(t, s.BeginAuthentication())
		require.NoError(t, s.FailAuthentication())

		assert.Equal(t, StateGuest, s.State)
		assert.True(t, s.Identity.IsGuest())
		assert.True(t, s.Credentials.IsZero())
	})

	t.Run("cannot begin authentication twice", func(t *testing.T) {
		s := New()
		require.NoError(t, s.BeginAuthentication())
		require.Error(t, s.BeginAuthentication())
	})

	t.Run("cannot complete without beginning", func(t *testing.T) {
		s := New()
		err := s.CompleteAuthentication(CustomerIdentity("u", "", ""), testCredentials())
		require.Error(t, err)
		assert.Equal(t, StateGuest, s.State)
	})

	t.Run("cannot complete with guest identity", func(t *testing.T) {
		s := New()
		require.NoError(t, s.BeginAuthentication())
		require.Error(t, s.CompleteAuthentication(GuestIdentity(), testCredentials()))
	})

	t.Run("revoke returns to guest from any authenticated state", func(t *testing.T) {
		s := New()
		require.NoError(t, s.BeginAuthentication())
		require.NoError(t, s.CompleteAuthentication(CustomerIdentity("u", "", ""), testCredentials()))

		s.Revoke()

		assert.Equal(t, StateGuest, s.State)
		assert.True(t, s.Credentials.IsZero())
	})
}

func TestSessionUpdateCredentials(t *testing.T) {
	t.Run("replaces token pair while authenticated", func(t *testing.T) {
		s := New()
		require.NoError(t, s.BeginAuthentication())
		require.NoError(t, s.CompleteAuthentication(CustomerIdentity("u", "", ""), testCredentials()))

		next := testCredentials()
		next.AccessToken = "rotated"
		require.NoError(t, s.UpdateCredentials(next))

		assert.Equal(t, "rotated", s.Credentials.AccessToken)
	})

	t.Run("rejected for guest sessions", func(t *testing.T) {
		s := New()
		require.Error(t, s.UpdateCredentials(testCredentials()))
	})
}

func TestIdentityForRole(t *testing.T) {
	t.Run("customer role", func(t *testing.T) {
		id, err := IdentityForRole("customer", "u1", "a@example.com", "Alice")
		require.NoError(t, err)
		assert.Equal(t, KindCustomer, id.Kind)
		assert.True(t, id.IsAuthenticated())
	})

	t.Run("vendor role", func(t *testing.T) {
		id, err := IdentityForRole("vendor", "u2", "v@example.com", "Vera")
		require.NoError(t, err)
		assert.Equal(t, KindVendor, id.Kind)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		_, err := IdentityForRole("admin", "u3", "", "")
		require.Error(t, err)
	})
}
