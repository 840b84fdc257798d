package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/commerce"
)

// Service serves the public catalog. Listings always hit the commerce
// API; single-product reads go through the product cache first since
// cart, wishlist and product pages hammer the same handful of IDs.
type Service struct {
	client *commerce.Client
	cache  cache.ProductCache
	logger *zap.Logger
}

// NewService creates a catalog service
func NewService(client *commerce.Client, productCache cache.ProductCache, logger *zap.Logger) *Service {
	return &Service{client: client, cache: productCache, logger: logger}
}

// List returns a catalog page
func (s *Service) List(ctx context.Context, query commerce.ProductQuery) ([]commerce.Product, error) {
	products, err := s.client.ListProducts(ctx, query)
	if err != nil {
		return nil, err
	}
	for i := range products {
		s.cacheProduct(ctx, &products[i])
	}
	return products, nil
}

// Product returns one catalog entry, served from cache when possible
func (s *Service) Product(ctx context.Context, productID string) (*commerce.Product, error) {
	cached, err := s.cache.Get(ctx, productID)
	if err != nil {
		s.logger.Warn("product cache read failed", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	product, err := s.client.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	s.cacheProduct(ctx, product)
	return product, nil
}

// Invalidate drops a product from the cache, used after vendor edits
func (s *Service) Invalidate(ctx context.Context, productID string) {
	if err := s.cache.Invalidate(ctx, productID); err != nil {
		s.logger.Warn("product cache invalidation failed",
			zap.String("product_id", productID),
			zap.Error(err))
	}
}

func (s *Service) cacheProduct(ctx context.Context, product *commerce.Product) {
	if err := s.cache.Set(ctx, product); err != nil {
		s.logger.Warn("product cache write failed",
			zap.String("product_id", product.ID),
			zap.Error(err))
	}
}
