package models

// Product is a catalog read model proxied from the backend; this service
// never mutates products.
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	Featured    bool    `json:"featured,omitempty"`
}
