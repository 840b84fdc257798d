package storefront

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/session"
	"github.com/storefront/backend/internal/infrastructure/commerce"
	"github.com/storefront/backend/internal/infrastructure/sessionstore"
)

// WishlistService serves saved items: the session-held saved set for
// guests, the account wishlist on the commerce API for customers.
// Vendors are rejected the same way they are for the cart.
type WishlistService struct {
	store    cart.Store
	sessions session.Repository
	client   *commerce.Client
	products ProductDetails
	logger   *zap.Logger
}

// NewWishlistService creates a new WishlistService
func NewWishlistService(
	store cart.Store,
	sessions session.Repository,
	client *commerce.Client,
	products ProductDetails,
	logger *zap.Logger,
) *WishlistService {
	return &WishlistService{
		store:    store,
		sessions: sessions,
		client:   client,
		products: products,
		logger:   logger,
	}
}

func (s *WishlistService) api(sess *session.Session) *commerce.Authed {
	return s.client.WithCredentials(sessionstore.NewCredentialBridge(s.sessions, sess.ID))
}

// View returns the wishlist for the session
func (s *WishlistService) View(ctx context.Context, sess *session.Session) (*WishlistView, error) {
	if err := guardCartAccess(sess); err != nil {
		return nil, err
	}

	if sess.Identity.IsCustomer() {
		items, err := s.api(sess).GetWishlist(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]WishlistEntryView, 0, len(items))
		for _, item := range items {
			product := item.Product
			if product == nil {
				product = s.lookupProduct(ctx, item.ProductID)
			}
			entries = append(entries, WishlistEntryView{
				ProductID: item.ProductID,
				Product:   NewProductView(product),
			})
		}
		return &WishlistView{Source: SourceAccount, Entries: entries}, nil
	}

	guestCart, err := s.store.Get(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	entries := make([]WishlistEntryView, 0, len(guestCart.SavedItems))
	for _, productID := range guestCart.SavedItems {
		entries = append(entries, WishlistEntryView{
			ProductID: productID,
			Product:   NewProductView(s.lookupProduct(ctx, productID)),
		})
	}
	return &WishlistView{Source: SourceGuest, Entries: entries}, nil
}

// Add puts a product on the wishlist. Adding a product that is already
// saved is a no-op.
func (s *WishlistService) Add(ctx context.Context, sess *session.Session, productID string) error {
	if err := guardCartAccess(sess); err != nil {
		return err
	}

	if sess.Identity.IsCustomer() {
		err := s.api(sess).AddWishlistItem(ctx, productID)
		if isConflict(err) {
			return nil
		}
		return err
	}

	guestCart, err := s.store.Get(ctx, sess.ID)
	if err != nil {
		return err
	}
	if err := guestCart.AddSavedItem(productID); err != nil {
		return err
	}
	return s.store.Save(ctx, guestCart)
}

// Remove takes a product off the wishlist. No-op if absent.
func (s *WishlistService) Remove(ctx context.Context, sess *session.Session, productID string) error {
	if err := guardCartAccess(sess); err != nil {
		return err
	}

	if sess.Identity.IsCustomer() {
		err := s.api(sess).RemoveWishlistItem(ctx, productID)
		if commerce.IsNotFound(err) {
			return nil
		}
		return err
	}

	guestCart, err := s.store.Get(ctx, sess.ID)
	if err != nil {
		return err
	}
	guestCart.RemoveSavedItem(productID)
	return s.store.Save(ctx, guestCart)
}

func (s *WishlistService) lookupProduct(ctx context.Context, productID string) *commerce.Product {
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
