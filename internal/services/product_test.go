package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/quickcart/storefront/internal/config"
	"github.com/quickcart/storefront/internal/models"
	service "github.com/quickcart/storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCache is an in-memory stand-in for the redis-backed product cache.
type fakeCache struct {
	store map[string][]byte
	err   error
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string, value any) (bool, error) {
	if f.err != nil {
		return false, f.err
	}

	data, ok := f.store[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(data, value)
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	f.store[key] = data

	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.store, key)

	return nil
}

func (f *fakeCache) Close() error { return nil }

func cacheConfig() *config.CacheConfig {
	return &config.CacheConfig{DefaultTTL: 5 * time.Minute, ProductTTL: time.Minute}
}

func TestProductList(t *testing.T) {
	ctx := context.Background()

	catalog := []models.Product{
		{ID: "p1", Name: "Mug", Price: 9.5},
		{ID: "p2", Name: "Shirt", Price: 20},
	}

	t.Run("Miss Then Hit", func(t *testing.T) {
		// Arrange
		commerce := &mockCommerce{}
		products := service.NewProductService(commerce, newFakeCache(), cacheConfig())

		commerce.On("ListProducts", ctx).Return(catalog, nil).Once()

		// Act
		first, err := products.List(ctx)
		require.NoError(t, err)
		second, err := products.List(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, first, second)
		commerce.AssertNumberOfCalls(t, "ListProducts", 1)
	})

	t.Run("Cache Trouble Falls Through To The Backend", func(t *testing.T) {
		// Arrange
		commerce := &mockCommerce{}
		broken := newFakeCache()
		broken.err = assert.AnError
		products := service.NewProductService(commerce, broken, cacheConfig())

		commerce.On("ListProducts", ctx).Return(catalog, nil).Once()

		// Act
		got, err := products.List(ctx)

		// Assert
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("Backend Error Is Returned", func(t *testing.T) {
		// Arrange
		commerce := &mockCommerce{}
		products := service.NewProductService(commerce, newFakeCache(), cacheConfig())

		commerce.On("ListProducts", ctx).Return(nil, assert.AnError).Once()

		// Act
		got, err := products.List(ctx)

		// Assert
		require.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestProductGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Miss Then Hit Per Product", func(t *testing.T) {
		// Arrange
		commerce := &mockCommerce{}
		products := service.NewProductService(commerce, newFakeCache(), cacheConfig())

		commerce.On("GetProduct", ctx, "p1").Return(&models.Product{ID: "p1", Name: "Mug"}, nil).Once()

		// Act
		first, err := products.Get(ctx, "p1")
		require.NoError(t, err)
		second, err := products.Get(ctx, "p1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		commerce.AssertNumberOfCalls(t, "GetProduct", 1)
	})
}

func TestProductCategories(t *testing.T) {
	ctx := context.Background()

	// Arrange
	commerce := &mockCommerce{}
	products := service.NewProductService(commerce, newFakeCache(), cacheConfig())

	commerce.On("ListCategories", ctx).Return([]string{"mugs", "shirts"}, nil).Once()

	// Act
	first, err := products.Categories(ctx)
	require.NoError(t, err)
	second, err := products.Categories(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, first, second)
	commerce.AssertNumberOfCalls(t, "ListCategories", 1)
}

func TestProductFeatured(t *testing.T) {
	ctx := context.Background()

	// Arrange
	commerce := &mockCommerce{}
	products := service.NewProductService(commerce, newFakeCache(), cacheConfig())

	commerce.On("FeaturedProducts", ctx).Return([]models.Product{{ID: "p1", Featured: true}}, nil).Once()

	// Act
	got, err := products.Featured(ctx)

	// Assert
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Featured)
}
