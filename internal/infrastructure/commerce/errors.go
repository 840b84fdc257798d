package commerce

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable wraps transport-level failures reaching the commerce API
	ErrUnavailable = errors.New("commerce api unavailable")

	// ErrNoCredentials means an authenticated call was attempted without a
	// stored token pair
	ErrNoCredentials = errors.New("no credentials stored")

	// ErrSessionExpired means the access token was rejected and could not be
	// refreshed; stored credentials have been cleared
	ErrSessionExpired = errors.New("session expired")
)

// APIError is a non-2xx response from the commerce API
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("commerce api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("commerce api error %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is an upstream 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is an upstream 401
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
