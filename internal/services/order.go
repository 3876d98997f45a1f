package service

import (
	"context"
	"sort"

	"github.com/quickcart/storefront/internal/models"
	"github.com/quickcart/storefront/internal/upstream"
)

// OrderService serves the history views. Orders live in the backend; the
// session token scopes every call to the signed-in shopper.
type OrderService interface {
	ListMyOrders(ctx context.Context, identity *models.Identity) ([]models.Order, error)
	GetOrder(ctx context.Context, identity *models.Identity, orderID string) (*models.Order, error)
}

type orderService struct {
	commerce upstream.Commerce
}

func NewOrderService(commerce upstream.Commerce) OrderService {
	return &orderService{commerce: commerce}
}

func (s *orderService) ListMyOrders(ctx context.Context, identity *models.Identity) ([]models.Order, error) {

	orders, err := s.commerce.ListMyOrders(ctx, identity.Token)
	if err != nil {
		return nil, err
	}

	// newest first
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, identity *models.Identity, orderID string) (*models.Order, error) {
	return s.commerce.GetOrder(ctx, identity.Token, orderID)
}
