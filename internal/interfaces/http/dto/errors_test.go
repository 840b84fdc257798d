package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeSessionExpired, http.StatusUnauthorized},
		{ErrCodeVendorNoCart, http.StatusForbidden},
		{ErrCodeCustomerRequired, http.StatusForbidden},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeUpstreamFailure, http.StatusBadGateway},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestResponseConstructors(t *testing.T) {
	t.Run("success response carries data", func(t *testing.T) {
		resp := NewSuccessResponse("payload")
		assert.True(t, resp.Success)
		assert.Equal(t, "payload", resp.Data)
		assert.Nil(t, resp.Error)
	})

	t.Run("error response carries code and request id", func(t *testing.T) {
		resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "gone", "req-1")
		assert.False(t, resp.Success)
		assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
		assert.Equal(t, "req-1", resp.Error.RequestID)
	})

	t.Run("validation response carries details", func(t *testing.T) {
		resp := NewValidationErrorResponse("invalid", "req-1", []ValidationDetail{
			{Field: "email", Message: "must be a valid email"},
		})
		assert.Equal(t, ErrCodeValidation, resp.Error.Code)
		assert.Len(t, resp.Error.Details, 1)
	})
}
