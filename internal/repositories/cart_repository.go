package repository

import (
	"sync"

	"github.com/quickcart/storefront/internal/models"
)

// CartRepository holds the per-session cart lines. Carts are deliberately
// in-memory only and lost on restart; persisting them is a non-goal.
type CartRepository interface {
	Items(sessionID string) []models.CartItem
	Add(sessionID string, item models.CartItem) []models.CartItem
	SetQuantity(sessionID, productRef string, quantity int) []models.CartItem
	Remove(sessionID, productRef string) []models.CartItem
	Clear(sessionID string)
}

// memoryCartRepository keeps insertion-ordered lines per session. All
// mutations go through the mutex, which gives single-writer semantics.
type memoryCartRepository struct {
	mu    sync.Mutex
	carts map[string][]models.CartItem
}

func NewCartRepo() CartRepository {
	return &memoryCartRepository{carts: make(map[string][]models.CartItem)}
}

func (r *memoryCartRepository) Items(sessionID string) []models.CartItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	return copyItems(r.carts[sessionID])
}

func (r *memoryCartRepository) Add(sessionID string, item models.CartItem) []models.CartItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.carts[sessionID]

	for i := range lines {
		if lines[i].ProductID == item.ProductID {
			// existing line keeps its position, quantity bumps in place
			lines[i].Quantity++
			return copyItems(lines)
		}
	}

	item.Quantity = 1
	lines = append(lines, item)
	r.carts[sessionID] = lines

	return copyItems(lines)
}

func (r *memoryCartRepository) SetQuantity(sessionID, productRef string, quantity int) []models.CartItem {
	if quantity <= 0 {
		return r.Remove(sessionID, productRef)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.carts[sessionID]

	for i := range lines {
		if lines[i].ProductID == productRef {
			lines[i].Quantity = quantity
			break
		}
	}

	return copyItems(lines)
}

func (r *memoryCartRepository) Remove(sessionID, productRef string) []models.CartItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.carts[sessionID]

	for i := range lines {
		if lines[i].ProductID == productRef {
			lines = append(lines[:i], lines[i+1:]...)
			r.carts[sessionID] = lines
			break
		}
	}

	return copyItems(lines)
}

func (r *memoryCartRepository) Clear(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, sessionID)
}

func copyItems(lines []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(lines))
	copy(out, lines)

	return out
}
