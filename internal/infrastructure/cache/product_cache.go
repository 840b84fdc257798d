package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefront/backend/internal/infrastructure/commerce"
)

const productKeyPrefix = "storefront:product:"

// ProductCache caches catalog entries read from the commerce API. A miss
// is (nil, nil); callers fall through to the API and Set the result.
type ProductCache interface {
	Get(ctx context.Context, productID string) (*commerce.Product, error)
	Set(ctx context.Context, product *commerce.Product) error
	Invalidate(ctx context.Context, productID string) error
}

// RedisProductCache implements ProductCache on Redis with a fixed TTL
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProductCache creates a Redis-backed product cache sharing an
// existing client
func NewRedisProductCache(client *redis.Client, ttl time.Duration) *RedisProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisProductCache{client: client, ttl: ttl}
}

func (c *RedisProductCache) Get(ctx context.Context, productID string) (*commerce.Product, error) {
	payload, err := c.client.Get(ctx, productKeyPrefix+productID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read product cache: %w", err)
	}

	var product commerce.Product
	if err := json.Unmarshal(payload, &product); err != nil {
		return nil, fmt.Errorf("failed to decode cached product: %w", err)
	}
	return &product, nil
}

func (c *RedisProductCache) Set(ctx context.Context, product *commerce.Product) error {
	payload, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to encode product: %w", err)
	}
	if err := c.client.Set(ctx, productKeyPrefix+product.ID, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write product cache: %w", err)
	}
	return nil
}

func (c *RedisProductCache) Invalidate(ctx context.Context, productID string) error {
	if err := c.client.Del(ctx, productKeyPrefix+productID).Err(); err != nil {
		return fmt.Errorf("failed to invalidate product cache: %w", err)
	}
	return nil
}

// Ensure RedisProductCache implements ProductCache
var _ ProductCache = (*RedisProductCache)(nil)
