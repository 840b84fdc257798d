package commerce

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/session"
	"github.com/storefront/backend/internal/infrastructure/auth"
)

// Expiry fallbacks used when the API omits explicit timestamps and the
// token carries no readable exp claim.
const (
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// CredentialStore persists the token pair tied to one browser session.
type CredentialStore interface {
	Credentials(ctx context.Context) (session.Credentials, error)
	Store(ctx context.Context, creds session.Credentials) error
	Clear(ctx context.Context) error
}

// Authed performs commerce API calls with the stored bearer token. When a
// call comes back 401 it refreshes the token pair once and retries; a
// second 401 or a failed refresh clears the stored credentials and
// surfaces ErrSessionExpired.
type Authed struct {
	client *Client
	creds  CredentialStore
}

// WithCredentials binds the client to one session's credential store
func (c *Client) WithCredentials(store CredentialStore) *Authed {
	return &Authed{client: c, creds: store}
}

func (a *Authed) do(ctx context.Context, method, path string, body any, out any) error {
	creds, err := a.creds.Credentials(ctx)
	if err != nil {
		return err
	}
	if creds.IsZero() {
		return ErrNoCredentials
	}

	// Retry state lives here so each call gets at most one refresh,
	// regardless of what happens to other in-flight calls.
	retried := false
	token := creds.AccessToken
	for {
		err := a.client.do(ctx, method, path, body, token, out)
		if err == nil || retried || !IsUnauthorized(err) {
			return err
		}

		if creds.RefreshToken == "" {
			a.clearCredentials(ctx)
			return ErrSessionExpired
		}

		pair, refreshErr := a.client.RefreshToken(ctx, creds.RefreshToken)
		if refreshErr != nil {
			if errors.Is(refreshErr, ErrUnavailable) {
				// Transient outage: keep the credentials, the next call
				// may succeed once the API is reachable again.
				return refreshErr
			}
			a.clearCredentials(ctx)
			return ErrSessionExpired
		}

		creds = CredentialsFromTokens(*pair)
		if storeErr := a.creds.Store(ctx, creds); storeErr != nil {
			a.client.logger.Warn("failed to persist refreshed credentials", zap.Error(storeErr))
		}
		token = creds.AccessToken
		retried = true
	}
}

func (a *Authed) clearCredentials(ctx context.Context) {
	if err := a.creds.Clear(ctx); err != nil {
		a.client.logger.Warn("failed to clear credentials", zap.Error(err))
	}
}

// CredentialsFromTokens converts an API token pair into session
// credentials, deriving expiry from token claims when the payload omits
// explicit timestamps
func CredentialsFromTokens(pair TokenPayload) session.Credentials {
	now := time.Now()
	creds := session.Credentials{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
	if pair.AccessExpiresAt != nil {
		creds.AccessExpiresAt = *pair.AccessExpiresAt
	} else {
		creds.AccessExpiresAt = auth.TokenExpiry(pair.AccessToken, now.Add(defaultAccessTokenTTL))
	}
	if pair.RefreshExpiresAt != nil {
		creds.RefreshExpiresAt = *pair.RefreshExpiresAt
	} else {
		creds.RefreshExpiresAt = auth.TokenExpiry(pair.RefreshToken, now.Add(defaultRefreshTokenTTL))
	}
	return creds
}

// CurrentUser fetches the authenticated account
func (a *Authed) CurrentUser(ctx context.Context) (*UserPayload, error) {
	var user UserPayload
	if err := a.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetCart fetches the authenticated cart
func (a *Authed) GetCart(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := a.do(ctx, http.MethodGet, "/users/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem adds a quantity of a product to the authenticated cart.
// The API adds to any existing line rather than replacing it.
func (a *Authed) AddCartItem(ctx context.Context, productID string, quantity int) error {
	body := map[string]any{"product_id": productID, "quantity": quantity}
	return a.do(ctx, http.MethodPost, "/users/cart/items", body, nil)
}

// UpdateCartItem sets the quantity of a cart line
func (a *Authed) UpdateCartItem(ctx context.Context, productID string, quantity int) error {
	body := map[string]any{"quantity": quantity}
	return a.do(ctx, http.MethodPut, "/users/cart/items/"+url.PathEscape(productID), body, nil)
}

// RemoveCartItem removes a cart line
func (a *Authed) RemoveCartItem(ctx context.Context, productID string) error {
	return a.do(ctx, http.MethodDelete, "/users/cart/items/"+url.PathEscape(productID), nil, nil)
}

// ClearCart empties the authenticated cart
func (a *Authed) ClearCart(ctx context.Context) error {
	return a.do(ctx, http.MethodDelete, "/users/cart", nil, nil)
}

// GetWishlist fetches the authenticated wishlist
func (a *Authed) GetWishlist(ctx context.Context) ([]WishlistItem, error) {
	var items []WishlistItem
	if err := a.do(ctx, http.MethodGet, "/users/wishlist", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddWishlistItem adds a product to the authenticated wishlist
func (a *Authed) AddWishlistItem(ctx context.Context, productID string) error {
	body := map[string]any{"product_id": productID}
	return a.do(ctx, http.MethodPost, "/users/wishlist/items", body, nil)
}

// RemoveWishlistItem removes a product from the authenticated wishlist
func (a *Authed) RemoveWishlistItem(ctx context.Context, productID string) error {
	return a.do(ctx, http.MethodDelete, "/users/wishlist/items/"+url.PathEscape(productID), nil, nil)
}

// ListOrders fetches the authenticated order history
func (a *Authed) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := a.do(ctx, http.MethodGet, "/users/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches one order
func (a *Authed) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	if err := a.do(ctx, http.MethodGet, "/users/orders/"+url.PathEscape(orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Checkout places an order from the authenticated cart
func (a *Authed) Checkout(ctx context.Context, input CheckoutInput) (*Order, error) {
	var order Order
	if err := a.do(ctx, http.MethodPost, "/users/orders", input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreatePaymentSession starts a payment flow for an order
func (a *Authed) CreatePaymentSession(ctx context.Context, orderID string) (*PaymentSession, error) {
	body := map[string]string{"order_id": orderID}
	var payment PaymentSession
	if err := a.do(ctx, http.MethodPost, "/payments/session", body, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListNotifications fetches the authenticated notification feed
func (a *Authed) ListNotifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	if err := a.do(ctx, http.MethodGet, "/users/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead marks one notification as read
func (a *Authed) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return a.do(ctx, http.MethodPut, "/users/notifications/"+url.PathEscape(notificationID)+"/read", nil, nil)
}

// CreateNotification records a notification for the authenticated user
func (a *Authed) CreateNotification(ctx context.Context, message string) error {
	body := map[string]string{"message": message}
	return a.do(ctx, http.MethodPost, "/users/notifications", body, nil)
}

// ListAddresses fetches the stored shipping addresses
func (a *Authed) ListAddresses(ctx context.Context) ([]Address, error) {
	var addresses []Address
	if err := a.do(ctx, http.MethodGet, "/users/addresses", nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateAddress stores a new shipping address
func (a *Authed) CreateAddress(ctx context.Context, address Address) (*Address, error) {
	var created Address
	if err := a.do(ctx, http.MethodPost, "/users/addresses", address, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListVendorProducts fetches the vendor's own catalog entries
func (a *Authed) ListVendorProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := a.do(ctx, http.MethodGet, "/vendor/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateVendorProduct adds a catalog entry for the vendor
func (a *Authed) CreateVendorProduct(ctx context.Context, input VendorProductInput) (*Product, error) {
	var product Product
	if err := a.do(ctx, http.MethodPost, "/vendor/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateVendorProduct updates a vendor catalog entry
func (a *Authed) UpdateVendorProduct(ctx context.Context, productID string, input VendorProductInput) (*Product, error) {
	var product Product
	if err := a.do(ctx, http.MethodPut, "/vendor/products/"+url.PathEscape(productID), input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteVendorProduct removes a vendor catalog entry
func (a *Authed) DeleteVendorProduct(ctx context.Context, productID string) error {
	return a.do(ctx, http.MethodDelete, "/vendor/products/"+url.PathEscape(productID), nil, nil)
}

// VendorWallet fetches the vendor's payout balance
func (a *Authed) VendorWallet(ctx context.Context) (*WalletSummary, error) {
	var wallet WalletSummary
	if err := a.do(ctx, http.MethodGet, "/vendor/wallet", nil, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}
