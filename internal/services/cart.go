package service

import (
	"github.com/quickcart/storefront/internal/errors"
	"github.com/quickcart/storefront/internal/models"
	repository "github.com/quickcart/storefront/internal/repositories"
)

// CartService wraps the raw line store and derives the snapshot the API
// serves. Subtotal and item count are computed fresh on every call.
type CartService interface {
	Snapshot(sessionID string) *models.CartSnapshot
	AddItem(sessionID string, req *models.AddItemRequest) (*models.CartSnapshot, error)
	UpdateQuantity(sessionID string, req *models.UpdateQuantityRequest) *models.CartSnapshot
	RemoveItem(sessionID, productRef string) *models.CartSnapshot
	Clear(sessionID string)
}

type cartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) CartService {
	return &cartService{repo: repo}
}

func (s *cartService) Snapshot(sessionID string) *models.CartSnapshot {
	return snapshotOf(s.repo.Items(sessionID))
}

func (s *cartService) AddItem(sessionID string, req *models.AddItemRequest) (*models.CartSnapshot, error) {

	ref := req.ProductRef()
	if ref == "" {
		return nil, errors.ValidationError("Product id is required")
	}

	item := models.CartItem{
		ProductID: ref,
		Name:      req.Name,
		UnitPrice: req.Price,
		Image:     req.Image,
		Category:  req.Category,
	}

	return snapshotOf(s.repo.Add(sessionID, item)), nil
}

func (s *cartService) UpdateQuantity(sessionID string, req *models.UpdateQuantityRequest) *models.CartSnapshot {
	return snapshotOf(s.repo.SetQuantity(sessionID, req.ProductID, req.Quantity))
}

func (s *cartService) RemoveItem(sessionID, productRef string) *models.CartSnapshot {
	return snapshotOf(s.repo.Remove(sessionID, productRef))
}

func (s *cartService) Clear(sessionID string) {
	s.repo.Clear(sessionID)
}

func snapshotOf(items []models.CartItem) *models.CartSnapshot {

	snapshot := &models.CartSnapshot{Items: items}

	for _, item := range items {
		snapshot.Subtotal += item.UnitPrice * float64(item.Quantity)
		snapshot.ItemCount += item.Quantity
	}

	return snapshot
}
