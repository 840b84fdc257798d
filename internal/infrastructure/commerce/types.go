package commerce

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// The commerce API responds with the same envelope this service uses:
// {"success": bool, "data": ..., "error": {"code", "message"}}.
// Fields the API may omit are modeled as pointers with explicit fallback
// accessors rather than being probed dynamically.

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *errorInfo      `json:"error,omitempty"`
}

type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Product is a catalog entry owned by the commerce API
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Category    *string          `json:"category,omitempty"`
	VendorID    *string          `json:"vendor_id,omitempty"`
}

// EffectivePrice returns the sale price when one is set, the regular
// price otherwise
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// InStock reports availability; unknown stock counts as available, the
// API enforces real limits at checkout
func (p *Product) InStock() bool {
	if p.Stock == nil {
		return true
	}
	return *p.Stock > 0
}

// ProductQuery holds catalog listing filters
type ProductQuery struct {
	Search   string
	Category string
	VendorID string
	Page     int
	PageSize int
}

// CartItem is one line of the authenticated upstream cart
type CartItem struct {
	ProductID string   `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

// Cart is the authenticated upstream cart
type Cart struct {
	Items    []CartItem       `json:"items"`
	Subtotal *decimal.Decimal `json:"subtotal,omitempty"`
}

// ItemCount returns the total quantity across all lines
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// WishlistItem is one entry of the authenticated upstream wishlist
type WishlistItem struct {
	ProductID string   `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
}

// OrderItem is one line of a placed order
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Name      *string         `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Order is a placed order owned by the commerce API
type Order struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	PlacedAt  time.Time       `json:"placed_at"`
	Items     []OrderItem     `json:"items"`
	AddressID *string         `json:"address_id,omitempty"`
}

// CheckoutInput is the payload for placing an order from the upstream cart
type CheckoutInput struct {
	AddressID     string `json:"address_id"`
	PaymentMethod string `json:"payment_method"`
}

// PaymentSession is the handoff to the payment gateway
type PaymentSession struct {
	SessionID   string     `json:"session_id"`
	RedirectURL string     `json:"redirect_url"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// Notification is a user-facing message owned by the commerce API
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Address is a stored shipping address
type Address struct {
	ID         string  `json:"id"`
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city"`
	Country    string  `json:"country"`
	PostalCode *string `json:"postal_code,omitempty"`
	IsDefault  bool    `json:"is_default"`
}

// WalletSummary is a vendor's payout balance
type WalletSummary struct {
	Balance  decimal.Decimal  `json:"balance"`
	Pending  *decimal.Decimal `json:"pending,omitempty"`
	Currency string           `json:"currency"`
}

// VendorProductInput is the payload for vendor product create/update
type VendorProductInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	Stock       int              `json:"stock"`
	Category    string           `json:"category,omitempty"`
	Image       string           `json:"image,omitempty"`
}

// UserPayload describes the account returned by login/register/me
type UserPayload struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	DisplayName *string `json:"display_name,omitempty"`
}

// Name returns the display name, falling back to the email address
func (u *UserPayload) Name() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return u.Email
}

// TokenPayload is the token pair issued by the commerce API
type TokenPayload struct {
	AccessToken      string     `json:"access_token"`
	RefreshToken     string     `json:"refresh_token"`
	AccessExpiresAt  *time.Time `json:"access_expires_at,omitempty"`
	RefreshExpiresAt *time.Time `json:"refresh_expires_at,omitempty"`
}

// AccountPayload is the combined login/register response
type AccountPayload struct {
	User  UserPayload  `json:"user"`
	Token TokenPayload `json:"token"`
}

// RegisterInput is the payload for account creation
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role"`
}
