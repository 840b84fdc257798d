package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/application/storefront"
	"github.com/storefront/backend/internal/domain/session"
	"github.com/storefront/backend/internal/infrastructure/commerce"
	"github.com/storefront/backend/internal/infrastructure/sessionstore"
)

// Service drives the session authentication state machine. A login or
// registration walks guest -> authenticating -> customer/vendor, falling
// back to guest when the token exchange fails. Customer logins then fold
// the guest cart into the account through the reconciliation bridge;
// vendor logins never touch it.
type Service struct {
	sessions session.Repository
	client   *commerce.Client
	bridge   *storefront.Bridge
	logger   *zap.Logger
}

// NewService creates an identity service
func NewService(
	sessions session.Repository,
	client *commerce.Client,
	bridge *storefront.Bridge,
	logger *zap.Logger,
) *Service {
	return &Service{
		sessions: sessions,
		client:   client,
		bridge:   bridge,
		logger:   logger,
	}
}

func (s *Service) api(sess *session.Session) *commerce.Authed {
	return s.client.WithCredentials(sessionstore.NewCredentialBridge(s.sessions, sess.ID))
}

// Login authenticates the session against the commerce API
func (s *Service) Login(ctx context.Context, sess *session.Session, req LoginRequest) (*SessionView, error) {
	return s.authenticate(ctx, sess, func(ctx context.Context) (*commerce.AccountPayload, error) {
		return s.client.Login(ctx, req.Email, req.Password)
	})
}

// Register creates an account and authenticates the session with it
func (s *Service) Register(ctx context.Context, sess *session.Session, req RegisterRequest) (*SessionView, error) {
	return s.authenticate(ctx, sess, func(ctx context.Context) (*commerce.AccountPayload, error) {
		return s.client.Register(ctx, commerce.RegisterInput{
			Email:       req.Email,
			Password:    req.Password,
			DisplayName: req.DisplayName,
			Role:        req.Role,
		})
	})
}

// authenticate runs the shared login/registration flow: transition to
// authenticating, exchange credentials, and either complete or fall back
// to guest. The guest cart is only reconciled for customer identities.
func (s *Service) authenticate(
	ctx context.Context,
	sess *session.Session,
	exchange func(ctx context.Context) (*commerce.AccountPayload, error),
) (*SessionView, error) {
	if err := sess.BeginAuthentication(); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	account, err := exchange(ctx)
	if err != nil {
		s.failAuthentication(ctx, sess)
		return nil, err
	}

	identity, err := session.IdentityForRole(
		account.User.Role, account.User.ID, account.User.Email, account.User.Name())
	if err != nil {
		s.failAuthentication(ctx, sess)
		return nil, err
	}

	creds := commerce.CredentialsFromTokens(account.Token)
	if err := sess.CompleteAuthentication(identity, creds); err != nil {
		s.failAuthentication(ctx, sess)
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	view := NewSessionView(sess)
	if identity.IsCustomer() {
		result, err := s.bridge.Reconcile(ctx, sess, s.api(sess))
		if err != nil {
			// The login itself succeeded; a broken merge must not undo it.
			s.logger.Error("guest cart reconciliation failed",
				zap.String("session_id", sess.ID.String()),
				zap.Error(err))
		} else if !result.Empty() {
			view.Merge = &result
		}
	}

	s.logger.Info("session authenticated",
		zap.String("session_id", sess.ID.String()),
		zap.String("kind", string(identity.Kind)))
	return view, nil
}

func (s *Service) failAuthentication(ctx context.Context, sess *session.Session) {
	if err := sess.FailAuthentication(); err != nil {
		s.logger.Error("failed to reset session state", zap.Error(err))
		return
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.logger.Error("failed to save session after auth failure", zap.Error(err))
	}
}

// Logout drops the session's credentials and returns it to guest. The
// guest cart of the session, if any survived (vendor logins keep it),
// stays in place.
func (s *Service) Logout(ctx context.Context, sess *session.Session) error {
	sess.Revoke()
	return s.sessions.Save(ctx, sess)
}

// Current describes the session. For authenticated sessions the profile
// is re-read from the commerce API when reachable, so a stale display
// name self-heals; on upstream failure the stored identity is served.
func (s *Service) Current(ctx context.Context, sess *session.Session) *SessionView {
	if !sess.Identity.IsAuthenticated() {
		return NewSessionView(sess)
	}

	user, err := s.api(sess).CurrentUser(ctx)
	if err != nil {
		s.logger.Debug("profile refresh failed, serving stored identity",
			zap.String("session_id", sess.ID.String()),
			zap.Error(err))
		return NewSessionView(sess)
	}

	identity, err := session.IdentityForRole(user.Role, user.ID, user.Email, user.Name())
	if err == nil && identity.Kind == sess.Identity.Kind {
		sess.Identity = identity
		if err := s.sessions.Save(ctx, sess); err != nil {
			s.logger.Warn("failed to save refreshed identity", zap.Error(err))
		}
	}
	return NewSessionView(sess)
}
