package cache

import (
	"context"
	"sync"
	"time"

	"github.com/storefront/backend/internal/infrastructure/commerce"
)

// InMemoryProductCache implements ProductCache in process memory with
// per-entry expiry checked on read
type InMemoryProductCache struct {
	mu      sync.RWMutex
	entries map[string]productEntry
	ttl     time.Duration
}

type productEntry struct {
	product   commerce.Product
	expiresAt time.Time
}

// NewInMemoryProductCache creates an in-memory product cache
func NewInMemoryProductCache(ttl time.Duration) *InMemoryProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &InMemoryProductCache{
		entries: make(map[string]productEntry),
		ttl:     ttl,
	}
}

func (c *InMemoryProductCache) Get(_ context.Context, productID string) (*commerce.Product, error) {
	c.mu.RLock()
	stored, ok := c.entries[productID]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(stored.expiresAt) {
		c.mu.Lock()
		delete(c.entries, productID)
		c.mu.Unlock()
		return nil, nil
	}

	product := stored.product
	return &product, nil
}

func (c *InMemoryProductCache) Set(_ context.Context, product *commerce.Product) error {
	c.mu.Lock()
	c.entries[product.ID] = productEntry{
		product:   *product,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
	return nil
}

func (c *InMemoryProductCache) Invalidate(_ context.Context, productID string) error {
	c.mu.Lock()
	delete(c.entries, productID)
	c.mu.Unlock()
	return nil
}

// Ensure InMemoryProductCache implements ProductCache
var _ ProductCache = (*InMemoryProductCache)(nil)
