package dto

import "net/http"

// Error codes exposed by this API. Domain errors carry the same codes,
// so the mapping below is the single source of truth for status codes.
const (
	ErrCodeInternal   = "INTERNAL"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"

	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeSessionExpired = "SESSION_EXPIRED"

	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"

	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeInvalidProductID = "INVALID_PRODUCT_ID"
	ErrCodeInvalidState     = "INVALID_STATE"
	ErrCodeUnknownRole      = "UNKNOWN_ROLE"

	ErrCodeVendorNoCart     = "VENDOR_NO_CART"
	ErrCodeCustomerRequired = "CUSTOMER_REQUIRED"
	ErrCodeVendorRequired   = "VENDOR_REQUIRED"

	ErrCodeUpstreamFailure = "UPSTREAM_FAILURE"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized:   http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	ErrCodeSessionExpired: http.StatusUnauthorized,

	ErrCodeNotFound: http.StatusNotFound,
	ErrCodeConflict: http.StatusConflict,

	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeInvalidProductID: http.StatusBadRequest,
	ErrCodeInvalidState:     http.StatusUnprocessableEntity,
	ErrCodeUnknownRole:      http.StatusUnprocessableEntity,

	ErrCodeVendorNoCart:     http.StatusForbidden,
	ErrCodeCustomerRequired: http.StatusForbidden,
	ErrCodeVendorRequired:   http.StatusForbidden,

	ErrCodeUpstreamFailure: http.StatusBadGateway,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to
// 500 for codes not in the map
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
