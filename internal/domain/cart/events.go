package cart

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// Event types for the guest cart aggregate
const (
	EventTypeItemAdded           = "cart.item_added"
	EventTypeItemQuantityChanged = "cart.item_quantity_changed"
	EventTypeItemRemoved         = "cart.item_removed"
	EventTypeCartCleared         = "cart.cleared"
	EventTypeCartReconciled      = "cart.reconciled"
)

const aggregateType = "GuestCart"

// ItemAddedEvent is published when a product enters the guest cart
type ItemAddedEvent struct {
	shared.BaseDomainEvent
	ProductID string `json:"product_id"`
}

// NewItemAddedEvent creates an ItemAddedEvent
func NewItemAddedEvent(c *GuestCart, productID string) *ItemAddedEvent {
	return &ItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemAdded, aggregateType, c.ID, c.SessionID),
		ProductID:       productID,
	}
}

// ItemQuantityChangedEvent is published when a cart quantity changes
type ItemQuantityChangedEvent struct {
	shared.BaseDomainEvent
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// NewItemQuantityChangedEvent creates an ItemQuantityChangedEvent
func NewItemQuantityChangedEvent(c *GuestCart, productID string, quantity int) *ItemQuantityChangedEvent {
	return &ItemQuantityChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemQuantityChanged, aggregateType, c.ID, c.SessionID),
		ProductID:       productID,
		Quantity:        quantity,
	}
}

// ItemRemovedEvent is published when a product leaves the guest cart
type ItemRemovedEvent struct {
	shared.BaseDomainEvent
	ProductID string `json:"product_id"`
}

// NewItemRemovedEvent creates an ItemRemovedEvent
func NewItemRemovedEvent(c *GuestCart, productID string) *ItemRemovedEvent {
	return &ItemRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemRemoved, aggregateType, c.ID, c.SessionID),
		ProductID:       productID,
	}
}

// CartClearedEvent is published when the guest cart is emptied
type CartClearedEvent struct {
	shared.BaseDomainEvent
}

// NewCartClearedEvent creates a CartClearedEvent
func NewCartClearedEvent(c *GuestCart) *CartClearedEvent {
	return &CartClearedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartCleared, aggregateType, c.ID, c.SessionID),
	}
}

// CartReconciledEvent is published after guest selections have been merged
// into an authenticated customer's upstream cart and wishlist
type CartReconciledEvent struct {
	shared.BaseDomainEvent
	CartItemsMerged  int `json:"cart_items_merged"`
	CartItemsFailed  int `json:"cart_items_failed"`
	SavedItemsMerged int `json:"saved_items_merged"`
	SavedItemsFailed int `json:"saved_items_failed"`
}

// NewCartReconciledEvent creates a CartReconciledEvent
func NewCartReconciledEvent(c *GuestCart, cartMerged, cartFailed, savedMerged, savedFailed int) *CartReconciledEvent {
	return &CartReconciledEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeCartReconciled, aggregateType, c.ID, c.SessionID),
		CartItemsMerged:  cartMerged,
		CartItemsFailed:  cartFailed,
		SavedItemsMerged: savedMerged,
		SavedItemsFailed: savedFailed,
	}
}
