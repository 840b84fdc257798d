package storefront

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/session"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/commerce"
)

// Bridge folds guest selections into a freshly authenticated customer's
// account. The merge is best-effort per item: one rejected product (out
// of stock, delisted) never blocks the rest. The guest store is cleared
// afterwards no matter what, so a later logout cannot resurrect state
// that partially made it into the account; what failed is reported in
// the MergeResult instead of being silently kept.
//
// Vendors never reach this code: callers invoke Reconcile only for
// customer logins, and the identity guard enforces it.
type Bridge struct {
	store  cart.Store
	bus    shared.EventPublisher
	logger *zap.Logger
}

// NewBridge creates a reconciliation bridge
func NewBridge(store cart.Store, bus shared.EventPublisher, logger *zap.Logger) *Bridge {
	return &Bridge{store: store, bus: bus, logger: logger}
}

// Reconcile merges the session's guest cart and saved items into the
// customer account behind api, then clears the guest store
func (b *Bridge) Reconcile(ctx context.Context, sess *session.Session, api *commerce.Authed) (MergeResult, error) {
	if !sess.Identity.IsCustomer() {
		return MergeResult{}, shared.ErrCustomerRequired
	}

	guestCart, err := b.store.Get(ctx, sess.ID)
	if err != nil {
		return MergeResult{}, err
	}
	if guestCart.IsEmpty() {
		return MergeResult{}, nil
	}

	var result MergeResult
	for _, item := range guestCart.Items {
		if err := api.AddCartItem(ctx, item.ProductID, item.Quantity); err != nil {
			result.CartItemsFailed++
			result.FailedProducts = append(result.FailedProducts, item.ProductID)
			b.logger.Warn("cart item not merged",
				zap.String("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
			continue
		}
		result.CartItemsMerged++
	}

	for _, productID := range guestCart.SavedItems {
		err := api.AddWishlistItem(ctx, productID)
		if err != nil && !isConflict(err) {
			result.SavedItemsFailed++
			result.FailedProducts = append(result.FailedProducts, productID)
			b.logger.Warn("saved item not merged",
				zap.String("product_id", productID),
				zap.Error(err))
			continue
		}
		result.SavedItemsMerged++
	}

	// Clear regardless of failures. The guest selections have been
	// handed over; keeping a partial copy here would let them leak back
	// on the next visit.
	if err := b.store.Delete(ctx, sess.ID); err != nil {
		b.logger.Error("failed to clear guest cart after merge",
			zap.String("session_id", sess.ID.String()),
			zap.Error(err))
	}

	event := cart.NewCartReconciledEvent(guestCart,
		result.CartItemsMerged, result.CartItemsFailed,
		result.SavedItemsMerged, result.SavedItemsFailed)
	if err := b.bus.Publish(ctx, event); err != nil {
		b.logger.Warn("failed to publish reconciliation event", zap.Error(err))
	}

	b.logger.Info("guest cart reconciled",
		zap.String("session_id", sess.ID.String()),
		zap.Int("cart_merged", result.CartItemsMerged),
		zap.Int("cart_failed", result.CartItemsFailed),
		zap.Int("saved_merged", result.SavedItemsMerged),
		zap.Int("saved_failed", result.SavedItemsFailed))

	return result, nil
}

// isConflict reports an upstream 409, which for wishlist adds means the
// product was already saved on the account
func isConflict(err error) bool {
	var apiErr *commerce.APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}
