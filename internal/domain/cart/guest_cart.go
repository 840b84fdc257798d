package cart

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Item is one product selection in a guest cart.
// A product appears at most once; Quantity is always >= 1.
type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// GuestCart holds the cart and saved-item selections of one unauthenticated
// browser session. It is the aggregate root for guest selection state and is
// the only mutable state this service owns; everything else belongs to the
// upstream commerce API.
//
// Mutations never touch the network. Quantity limits, if any, are enforced
// by the upstream API at checkout, not here.
type GuestCart struct {
	shared.BaseAggregateRoot
	SessionID  uuid.UUID `json:"session_id"`
	Items      []Item    `json:"items"`
	SavedItems []string  `json:"saved_items"`
}

// NewGuestCart creates an empty guest cart for a browser session
func NewGuestCart(sessionID uuid.UUID) *GuestCart {
	return &GuestCart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SessionID:         sessionID,
		Items:             make([]Item, 0),
		SavedItems:        make([]string, 0),
	}
}

func validateProductID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	return nil
}

// AddItem inserts the product with quantity 1, or increments the quantity
// by 1 if it is already in the cart
func (c *GuestCart) AddItem(productID string) error {
	if err := validateProductID(productID); err != nil {
		return err
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity++
			c.touch()
			c.AddDomainEvent(NewItemQuantityChangedEvent(c, productID, c.Items[i].Quantity))
			return nil
		}
	}
	c.Items = append(c.Items, Item{ProductID: productID, Quantity: 1})
	c.touch()
	c.AddDomainEvent(NewItemAddedEvent(c, productID))
	return nil
}

// UpdateQuantity sets the quantity for a product. A quantity of zero or less
// removes the item. Idempotent: updating an absent product to zero is a no-op.
func (c *GuestCart) UpdateQuantity(productID string, quantity int) error {
	if err := validateProductID(productID); err != nil {
		return err
	}
	if quantity <= 0 {
		c.RemoveItem(productID)
		return nil
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.touch()
			c.AddDomainEvent(NewItemQuantityChangedEvent(c, productID, quantity))
			return nil
		}
	}
	c.Items = append(c.Items, Item{ProductID: productID, Quantity: quantity})
	c.touch()
	c.AddDomainEvent(NewItemAddedEvent(c, productID))
	return nil
}

// RemoveItem removes a product from the cart. No-op if absent.
func (c *GuestCart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			c.AddDomainEvent(NewItemRemovedEvent(c, productID))
			return
		}
	}
}

// ClearItems empties the cart items, leaving saved items intact
func (c *GuestCart) ClearItems() {
	if len(c.Items) == 0 {
		return
	}
	c.Items = c.Items[:0]
	c.touch()
	c.AddDomainEvent(NewCartClearedEvent(c))
}

// ClearAll empties both cart items and saved items
func (c *GuestCart) ClearAll() {
	c.Items = c.Items[:0]
	c.SavedItems = c.SavedItems[:0]
	c.touch()
}

// AddSavedItem adds a product to the saved set. Idempotent.
func (c *GuestCart) AddSavedItem(productID string) error {
	if err := validateProductID(productID); err != nil {
		return err
	}
	for _, id := range c.SavedItems {
		if id == productID {
			return nil
		}
	}
	c.SavedItems = append(c.SavedItems, productID)
	c.touch()
	return nil
}

// RemoveSavedItem removes a product from the saved set. No-op if absent.
func (c *GuestCart) RemoveSavedItem(productID string) {
	for i, id := range c.SavedItems {
		if id == productID {
			c.SavedItems = append(c.SavedItems[:i], c.SavedItems[i+1:]...)
			c.touch()
			return
		}
	}
}

// Quantity returns the cart quantity for a product, zero if absent
func (c *GuestCart) Quantity(productID string) int {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// HasSavedItem reports whether a product is in the saved set
func (c *GuestCart) HasSavedItem(productID string) bool {
	for _, id := range c.SavedItems {
		if id == productID {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the cart holds neither items nor saved items
func (c *GuestCart) IsEmpty() bool {
	return len(c.Items) == 0 && len(c.SavedItems) == 0
}

func (c *GuestCart) touch() {
	c.UpdatedAt = time.Now()
}
