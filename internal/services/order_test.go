package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/quickcart/storefront/internal/models"
	service "github.com/quickcart/storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMyOrders(t *testing.T) {
	ctx := context.Background()
	identity := testShopper()

	t.Run("Success - Newest First", func(t *testing.T) {
		// Arrange
		commerce := &mockCommerce{}
		orders := service.NewOrderService(commerce)

		now := time.Now()
		commerce.On("ListMyOrders", ctx, identity.Token).Return([]models.Order{
			{ID: "old", CreatedAt: now.Add(-48 * time.Hour)},
			{ID: "new", CreatedAt: now},
			{ID: "mid", CreatedAt: now.Add(-24 * time.Hour)},
		}, nil).Once()

		// Act
		got, err := orders.ListMyOrders(ctx, identity)

		// Assert
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "new", got[0].ID)
		assert.Equal(t, "mid", got[1].ID)
		assert.Equal(t, "old", got[2].ID)
	})

	t.Run("Failure - Backend Error Passes Through", func(t *testing.T) {
		// Arrange
		commerce := &mockCommerce{}
		orders := service.NewOrderService(commerce)

		commerce.On("ListMyOrders", ctx, identity.Token).Return(nil, assert.AnError).Once()

		// Act
		got, err := orders.ListMyOrders(ctx, identity)

		// Assert
		require.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestGetOrderDetail(t *testing.T) {
	ctx := context.Background()
	identity := testShopper()

	// Arrange
	commerce := &mockCommerce{}
	orders := service.NewOrderService(commerce)

	commerce.On("GetOrder", ctx, identity.Token, "order-1").
		Return(&models.Order{ID: "order-1", IsPaid: true}, nil).Once()

	// Act
	order, err := orders.GetOrder(ctx, identity, "order-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.True(t, order.IsPaid)
}
