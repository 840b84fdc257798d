package session

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// Kind discriminates the session identity union.
// A browser session is driven by exactly one of these at any time.
type Kind string

const (
	KindGuest    Kind = "guest"
	KindCustomer Kind = "customer"
	KindVendor   Kind = "vendor"
)

// Identity is the tagged union over who is driving a browser session:
// an anonymous guest, an authenticated customer, or an authenticated vendor.
// Role-dependent behavior (most importantly the "vendors cannot use
// cart/wishlist" rule) must switch on Kind in one place instead of
// re-checking roles at every call site.
type Identity struct {
	Kind        Kind   `json:"kind"`
	UserID      string `json:"user_id,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// GuestIdentity returns the identity of an unauthenticated visitor
func GuestIdentity() Identity {
	return Identity{Kind: KindGuest}
}

// CustomerIdentity returns an authenticated customer identity
func CustomerIdentity(userID, email, displayName string) Identity {
	return Identity{Kind: KindCustomer, UserID: userID, Email: email, DisplayName: displayName}
}

// VendorIdentity returns an authenticated vendor identity
func VendorIdentity(userID, email, displayName string) Identity {
	return Identity{Kind: KindVendor, UserID: userID, Email: email, DisplayName: displayName}
}

// IdentityForRole builds an authenticated identity from the role string
// returned by the commerce API
func IdentityForRole(role, userID, email, displayName string) (Identity, error) {
	switch role {
	case "customer":
		return CustomerIdentity(userID, email, displayName), nil
	case "vendor":
		return VendorIdentity(userID, email, displayName), nil
	default:
		return Identity{}, shared.NewDomainError("UNKNOWN_ROLE", "Unknown account role: "+role)
	}
}

// IsGuest reports whether the identity is an unauthenticated guest
func (i Identity) IsGuest() bool {
	return i.Kind == KindGuest
}

// IsCustomer reports whether the identity is an authenticated customer
func (i Identity) IsCustomer() bool {
	return i.Kind == KindCustomer
}

// IsVendor reports whether the identity is an authenticated vendor
func (i Identity) IsVendor() bool {
	return i.Kind == KindVendor
}

// IsAuthenticated reports whether the identity carries an account
func (i Identity) IsAuthenticated() bool {
	return i.Kind == KindCustomer || i.Kind == KindVendor
}
