package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/session"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/commerce"
	"github.com/storefront/backend/internal/infrastructure/sessionstore"
)

// Service proxies order, checkout and address operations to the commerce
// API for authenticated customers. Orders are owned upstream; nothing is
// stored here.
type Service struct {
	sessions session.Repository
	client   *commerce.Client
	logger   *zap.Logger
}

// NewService creates an order service
func NewService(sessions session.Repository, client *commerce.Client, logger *zap.Logger) *Service {
	return &Service{sessions: sessions, client: client, logger: logger}
}

func (s *Service) api(sess *session.Session) *commerce.Authed {
	return s.client.WithCredentials(sessionstore.NewCredentialBridge(s.sessions, sess.ID))
}

func requireCustomer(sess *session.Session) error {
	if sess.Identity.IsGuest() {
		return shared.ErrUnauthorized
	}
	if !sess.Identity.IsCustomer() {
		return shared.ErrCustomerRequired
	}
	return nil
}

// List returns the customer's order history
func (s *Service) List(ctx context.Context, sess *session.Session) ([]commerce.Order, error) {
	if err := requireCustomer(sess); err != nil {
		return nil, err
	}
	return s.api(sess).ListOrders(ctx)
}

// Get returns one order
func (s *Service) Get(ctx context.Context, sess *session.Session, orderID string) (*commerce.Order, error) {
	if err := requireCustomer(sess); err != nil {
		return nil, err
	}
	return s.api(sess).GetOrder(ctx, orderID)
}

// Checkout places an order from the customer's account cart
func (s *Service) Checkout(ctx context.Context, sess *session.Session, input commerce.CheckoutInput) (*commerce.Order, error) {
	if err := requireCustomer(sess); err != nil {
		return nil, err
	}
	placed, err := s.api(sess).Checkout(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info("order placed",
		zap.String("session_id", sess.ID.String()),
		zap.String("order_id", placed.ID))
	return placed, nil
}

// PaymentSession starts a payment flow for an order
func (s *Service) PaymentSession(ctx context.Context, sess *session.Session, orderID string) (*commerce.PaymentSession, error) {
	if err := requireCustomer(sess); err != nil {
		return nil, err
	}
	return s.api(sess).CreatePaymentSession(ctx, orderID)
}

// Addresses returns the customer's stored shipping addresses
func (s *Service) Addresses(ctx context.Context, sess *session.Session) ([]commerce.Address, error) {
	if err := requireCustomer(sess); err != nil {
		return nil, err
	}
	return s.api(sess).ListAddresses(ctx)
}

// AddAddress stores a new shipping address
func (s *Service) AddAddress(ctx context.Context, sess *session.Session, address commerce.Address) (*commerce.Address, error) {
	if err := requireCustomer(sess); err != nil {
		return nil, err
	}
	return s.api(sess).CreateAddress(ctx, address)
}
