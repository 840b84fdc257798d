package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/session"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/commerce"
	"github.com/storefront/backend/internal/infrastructure/sessionstore"
)

// Service proxies the notification feed for authenticated users of
// either kind
type Service struct {
	sessions session.Repository
	client   *commerce.Client
	logger   *zap.Logger
}

// NewService creates a notification service
func NewService(sessions session.Repository, client *commerce.Client, logger *zap.Logger) *Service {
	return &Service{sessions: sessions, client: client, logger: logger}
}

func (s *Service) api(sess *session.Session) *commerce.Authed {
	return s.client.WithCredentials(sessionstore.NewCredentialBridge(s.sessions, sess.ID))
}

// List returns the user's notification feed
func (s *Service) List(ctx context.Context, sess *session.Session) ([]commerce.Notification, error) {
	if !sess.Identity.IsAuthenticated() {
		return nil, shared.ErrUnauthorized
	}
	return s.api(sess).ListNotifications(ctx)
}

// MarkRead marks one notification as read
func (s *Service) MarkRead(ctx context.Context, sess *session.Session, notificationID string) error {
	if !sess.Identity.IsAuthenticated() {
		return shared.ErrUnauthorized
	}
	return s.api(sess).MarkNotificationRead(ctx, notificationID)
}
