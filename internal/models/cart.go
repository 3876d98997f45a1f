package models

// CartItem is one line in a session's cart. At most one line exists per
// product ref; Quantity is always >= 1 while the line exists.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Category  string  `json:"category,omitempty"`
	Quantity  int     `json:"quantity"`
}

// CartSnapshot is a derived view over the current lines. Subtotal and
// ItemCount are recomputed on every read, never cached.
type CartSnapshot struct {
	Items     []CartItem `json:"items"`
	Subtotal  float64    `json:"subtotal"`
	ItemCount int        `json:"item_count"`
}

// AddItemRequest carries both id fields the catalog may use; ProductRef
// resolves between them.
type AddItemRequest struct {
	ID       string  `json:"id"`
	LegacyID string  `json:"_id"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
}

// ProductRef prefers the canonical id and falls back to the legacy one.
func (r *AddItemRequest) ProductRef() string {
	if r.ID != "" {
		return r.ID
	}

	return r.LegacyID
}

type UpdateQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}
