package service

import (
	"context"
	"log/slog"

	"github.com/quickcart/storefront/internal/cache"
	"github.com/quickcart/storefront/internal/config"
	"github.com/quickcart/storefront/internal/models"
	"github.com/quickcart/storefront/internal/upstream"
)

// ProductService proxies the backend catalog with a short-lived cache in
// front. Cache trouble is logged and the call falls through to the backend.
type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	Featured(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, productID string) (*models.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type productService struct {
	commerce upstream.Commerce
	cache    cache.Cache
	cfg      *config.CacheConfig
}

func NewProductService(commerce upstream.Commerce, productCache cache.Cache, cfg *config.CacheConfig) ProductService {
	return &productService{commerce: commerce, cache: productCache, cfg: cfg}
}

func (s *productService) List(ctx context.Context) ([]models.Product, error) {

	key := cache.Key(cache.ProductsKeyPrefix, "all")

	var products []models.Product
	if s.cacheHit(ctx, key, &products) {
		return products, nil
	}

	products, err := s.commerce.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheStore(ctx, key, products)

	return products, nil
}

func (s *productService) Featured(ctx context.Context) ([]models.Product, error) {

	key := cache.Key(cache.ProductsKeyPrefix, "featured")

	var products []models.Product
	if s.cacheHit(ctx, key, &products) {
		return products, nil
	}

	products, err := s.commerce.FeaturedProducts(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheStore(ctx, key, products)

	return products, nil
}

func (s *productService) Get(ctx context.Context, productID string) (*models.Product, error) {

	key := cache.Key(cache.ProductKeyPrefix, productID)

	product := &models.Product{}
	if s.cacheHit(ctx, key, product) {
		return product, nil
	}

	product, err := s.commerce.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.cacheStore(ctx, key, product)

	return product, nil
}

func (s *productService) Categories(ctx context.Context) ([]string, error) {

	key := cache.Key(cache.CategoryKeyPrefix, "all")

	var categories []string
	if s.cacheHit(ctx, key, &categories) {
		return categories, nil
	}

	categories, err := s.commerce.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheStore(ctx, key, categories)

	return categories, nil
}

func (s *productService) cacheHit(ctx context.Context, key string, value any) bool {

	hit, err := s.cache.Get(ctx, key, value)
	if err != nil {
		slog.WarnContext(ctx, "Cache read failed", slog.String("key", key), slog.String("error", err.Error()))

		return false
	}

	return hit
}

func (s *productService) cacheStore(ctx context.Context, key string, value any) {

	if err := s.cache.Set(ctx, key, value, s.cfg.ProductTTL); err != nil {
		slog.WarnContext(ctx, "Cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
