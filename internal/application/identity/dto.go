package identity

import (
	"github.com/storefront/backend/internal/application/storefront"
	"github.com/storefront/backend/internal/domain/session"
)

// LoginRequest carries login credentials from the frontend
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=1"`
}

// RegisterRequest carries account creation data from the frontend
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"omitempty,max=100"`
	Role        string `json:"role" binding:"required,oneof=customer vendor"`
}

// SessionView describes the session for the frontend. Merge is only set
// right after a customer login that folded guest selections into the
// account.
type SessionView struct {
	State       string                  `json:"state"`
	Kind        string                  `json:"kind"`
	UserID      string                  `json:"user_id,omitempty"`
	Email       string                  `json:"email,omitempty"`
	DisplayName string                  `json:"display_name,omitempty"`
	Merge       *storefront.MergeResult `json:"merge,omitempty"`
}

// NewSessionView maps a session to its view
func NewSessionView(sess *session.Session) *SessionView {
	return &SessionView{
		State:       string(sess.State),
		Kind:        string(sess.Identity.Kind),
		UserID:      sess.Identity.UserID,
		Email:       sess.Identity.Email,
		DisplayName: sess.Identity.DisplayName,
	}
}
