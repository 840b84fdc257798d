package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized     = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden        = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState     = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrSessionExpired   = NewDomainError("SESSION_EXPIRED", "Session has expired, please log in again")
	ErrVendorNoCart     = NewDomainError("VENDOR_NO_CART", "Vendor accounts cannot use cart or wishlist")
	ErrUpstreamFailure  = NewDomainError("UPSTREAM_FAILURE", "The commerce service could not complete the request")
	ErrCustomerRequired = NewDomainError("CUSTOMER_REQUIRED", "A customer account is required for this action")
	ErrVendorRequired   = NewDomainError("VENDOR_REQUIRED", "A vendor account is required for this action")
)
