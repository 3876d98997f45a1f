package models

import "time"

// Wire shapes match the commerce backend's API: camelCase field names and the
// Mongo-style "_id" on orders.

type ShippingAddress struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// DefaultShippingAddress is the fixed placeholder used at checkout; there is
// no address-collection step in this slice.
var DefaultShippingAddress = ShippingAddress{
	Address:    "123 Example St",
	City:       "Test City",
	PostalCode: "12345",
	Country:    "India",
}

type OrderItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
	UnitPrice float64 `json:"price"`
	ProductID string  `json:"product"`
}

// OrderRequest is built once from a cart snapshot at checkout time and not
// retained after submission; the backend becomes authoritative.
type OrderRequest struct {
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	TotalPrice      float64         `json:"totalPrice"`
}

type OrderUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Order is owned by the backend; this service only reads it, plus the two
// sanctioned transitions (create, mark paid).
type Order struct {
	ID              string          `json:"_id"`
	User            *OrderUser      `json:"user,omitempty"`
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// CreateOrderResponse is the backend's order-creation envelope. Order may be
// nil or missing its id on a malformed response.
type CreateOrderResponse struct {
	Order *Order `json:"order"`
}

// PaymentResult is forwarded to the backend's mark-paid endpoint after the
// gateway reports a successful payment.
type PaymentResult struct {
	PaymentIntentID   string    `json:"payment_intent_id"`
	RazorpayOrderID   string    `json:"razorpay_order_id"`
	RazorpaySignature string    `json:"razorpay_signature"`
	Status            string    `json:"status"`
	UpdatedAt         time.Time `json:"updated_at"`
}
