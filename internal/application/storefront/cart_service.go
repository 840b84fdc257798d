package storefront

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/session"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/commerce"
	"github.com/storefront/backend/internal/infrastructure/sessionstore"
)

// ProductDetails resolves catalog detail for cart and wishlist lines.
// Implementations may serve from cache; a nil product with nil error
// means the detail is unavailable right now.
type ProductDetails interface {
	Product(ctx context.Context, productID string) (*commerce.Product, error)
}

// CartService serves the cart for whoever is driving the session: the
// session-held guest cart for guests, the account cart on the commerce
// API for customers. Vendors are rejected here, in one place, for every
// cart operation.
type CartService struct {
	store    cart.Store
	sessions session.Repository
	client   *commerce.Client
	products ProductDetails
	bus      shared.EventPublisher
	logger   *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	store cart.Store,
	sessions session.Repository,
	client *commerce.Client,
	products ProductDetails,
	bus shared.EventPublisher,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		store:    store,
		sessions: sessions,
		client:   client,
		products: products,
		bus:      bus,
		logger:   logger,
	}
}

func (s *CartService) api(sess *session.Session) *commerce.Authed {
	return s.client.WithCredentials(sessionstore.NewCredentialBridge(s.sessions, sess.ID))
}

// guardCartAccess is the single place the vendor restriction lives
func guardCartAccess(sess *session.Session) error {
	if sess.Identity.IsVendor() {
		return shared.ErrVendorNoCart
	}
	return nil
}

// View returns the cart for the session
func (s *CartService) View(ctx context.Context, sess *session.Session) (*CartView, error) {
	if err := guardCartAccess(sess); err != nil {
		return nil, err
	}

	if sess.Identity.IsCustomer() {
		accountCart, err := s.api(sess).GetCart(ctx)
		if err != nil {
			return nil, err
		}
		return s.accountCartView(ctx, accountCart), nil
	}

	guestCart, err := s.store.Get(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	return s.guestCartView(ctx, guestCart), nil
}

// Add puts one unit of a product in the cart
func (s *CartService) Add(ctx context.Context, sess *session.Session, productID string) error {
	if err := guardCartAccess(sess); err != nil {
		return err
	}

	if sess.Identity.IsCustomer() {
		return s.api(sess).AddCartItem(ctx, productID, 1)
	}

	return s.mutateGuestCart(ctx, sess, func(guestCart *cart.GuestCart) error {
		return guestCart.AddItem(productID)
	})
}

// UpdateQuantity sets the quantity of a cart line; zero or less removes it
func (s *CartService) UpdateQuantity(ctx context.Context, sess *session.Session, productID string, quantity int) error {
	if err := guardCartAccess(sess); err != nil {
		return err
	}

	if sess.Identity.IsCustomer() {
		if quantity <= 0 {
			return s.removeAccountItem(ctx, sess, productID)
		}
		return s.api(sess).UpdateCartItem(ctx, productID, quantity)
	}

	return s.mutateGuestCart(ctx, sess, func(guestCart *cart.GuestCart) error {
		return guestCart.UpdateQuantity(productID, quantity)
	})
}

// Remove takes a product out of the cart. Removing an absent product is
// not an error.
func (s *CartService) Remove(ctx context.Context, sess *session.Session, productID string) error {
	if err := guardCartAccess(sess); err != nil {
		return err
	}

	if sess.Identity.IsCustomer() {
		return s.removeAccountItem(ctx, sess, productID)
	}

	return s.mutateGuestCart(ctx, sess, func(guestCart *cart.GuestCart) error {
		guestCart.RemoveItem(productID)
		return nil
	})
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, sess *session.Session) error {
	if err := guardCartAccess(sess); err != nil {
		return err
	}

	if sess.Identity.IsCustomer() {
		return s.api(sess).ClearCart(ctx)
	}

	return s.mutateGuestCart(ctx, sess, func(guestCart *cart.GuestCart) error {
		guestCart.ClearItems()
		return nil
	})
}

func (s *CartService) removeAccountItem(ctx context.Context, sess *session.Session, productID string) error {
	err := s.api(sess).RemoveCartItem(ctx, productID)
	if commerce.IsNotFound(err) {
		return nil
	}
	return err
}

func (s *CartService) mutateGuestCart(ctx context.Context, sess *session.Session, mutate func(*cart.GuestCart) error) error {
	guestCart, err := s.store.Get(ctx, sess.ID)
	if err != nil {
		return err
	}
	if err := mutate(guestCart); err != nil {
		return err
	}
	if err := s.store.Save(ctx, guestCart); err != nil {
		return err
	}
	s.publishEvents(ctx, guestCart)
	return nil
}

func (s *CartService) publishEvents(ctx context.Context, guestCart *cart.GuestCart) {
	events := guestCart.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.bus.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish cart events", zap.Error(err))
	}
	guestCart.ClearDomainEvents()
}

func (s *CartService) guestCartView(ctx context.Context, guestCart *cart.GuestCart) *CartView {
	lines := make([]CartLineView, 0, len(guestCart.Items))
	details := make(map[string]*commerce.Product, len(guestCart.Items))
	for _, item := range guestCart.Items {
		product := s.lookupProduct(ctx, item.ProductID)
		details[item.ProductID] = product
		lines = append(lines, CartLineView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   NewProductView(product),
		})
	}
	return &CartView{
		Source:   SourceGuest,
		Lines:    lines,
		Subtotal: subtotal(lines, details),
	}
}

func (s *CartService) accountCartView(ctx context.Context, accountCart *commerce.Cart) *CartView {
	lines := make([]CartLineView, 0, len(accountCart.Items))
	details := make(map[string]*commerce.Product, len(accountCart.Items))
	for _, item := range accountCart.Items {
		product := item.Product
		if product == nil {
			product = s.lookupProduct(ctx, item.ProductID)
		}
		details[item.ProductID] = product
		lines = append(lines, CartLineView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   NewProductView(product),
		})
	}
	view := &CartView{Source: SourceAccount, Lines: lines}
	if accountCart.Subtotal != nil {
		view.Subtotal = accountCart.Subtotal.StringFixed(2)
	} else {
		view.Subtotal = subtotal(lines, details)
	}
	return view
}

// lookupProduct fetches catalog detail best-effort; a line without detail
// still renders with its product ID
func (s *CartService) lookupProduct(ctx context.Context, productID string) *commerce.Product {
	if s.products == nil {
		return nil
	}
	product, err := s.products.Product(ctx, productID)
	if err != nil {
		s.logger.Debug("product detail unavailable",
			zap.String("product_id", productID),
			zap.Error(err))
		return nil
	}
	return product
}
