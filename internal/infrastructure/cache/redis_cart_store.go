package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/storefront/backend/internal/domain/cart"
)

const cartKeyPrefix = "storefront:cart:"

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisCartStore implements cart.Store on Redis. Guest carts are stored
// as JSON keyed by session ID with the same lifetime as the session.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartStore creates a Redis-backed guest cart store
func NewRedisCartStore(cfg RedisConfig, ttl time.Duration) (*RedisCartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCartStoreWithClient(client, ttl), nil
}

// NewRedisCartStoreWithClient creates a store with an existing Redis client
func NewRedisCartStoreWithClient(client *redis.Client, ttl time.Duration) *RedisCartStore {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &RedisCartStore{client: client, ttl: ttl}
}

// Get returns the stored guest cart, or a fresh empty cart when none exists
func (s *RedisCartStore) Get(ctx context.Context, sessionID uuid.UUID) (*cart.GuestCart, error) {
	payload, err := s.client.Get(ctx, cartKeyPrefix+sessionID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart.NewGuestCart(sessionID), nil
		}
		return nil, fmt.Errorf("failed to load guest cart: %w", err)
	}

	var guestCart cart.GuestCart
	if err := json.Unmarshal(payload, &guestCart); err != nil {
		return nil, fmt.Errorf("failed to decode guest cart: %w", err)
	}
	return &guestCart, nil
}

// Save persists the guest cart with the configured TTL
func (s *RedisCartStore) Save(ctx context.Context, guestCart *cart.GuestCart) error {
	payload, err := json.Marshal(guestCart)
	if err != nil {
		return fmt.Errorf("failed to encode guest cart: %w", err)
	}

	key := cartKeyPrefix + guestCart.SessionID.String()
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save guest cart: %w", err)
	}
	return nil
}

// Delete removes the guest cart for a session
func (s *RedisCartStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, cartKeyPrefix+sessionID.String()).Err(); err != nil {
		return fmt.Errorf("failed to delete guest cart: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisCartStore) Close() error {
	return s.client.Close()
}

// Ensure RedisCartStore implements cart.Store
var _ cart.Store = (*RedisCartStore)(nil)
