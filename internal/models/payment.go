package models

// PaymentHandle identifies one payment attempt at the gateway. Transient:
// scoped to a single checkout widget session and discarded after it closes.
type PaymentHandle struct {
	GatewayOrderID string `json:"order_id"`
	Currency       string `json:"currency"`
	AmountMinor    int64  `json:"amount"`
	KeyID          string `json:"key_id"`
}

// CheckoutPrefill mirrors the hosted widget's prefill block.
type CheckoutPrefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type CheckoutTheme struct {
	Color string `json:"color"`
}

// CheckoutOptions is everything the hosted payment widget needs to open.
// Amount is in the smallest currency unit.
type CheckoutOptions struct {
	Key         string            `json:"key"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	OrderID     string            `json:"order_id"`
	Prefill     CheckoutPrefill   `json:"prefill"`
	Notes       map[string]string `json:"notes"`
	Theme       CheckoutTheme     `json:"theme"`
}

type CreateGatewayOrderRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

type CreateGatewayOrderResponse struct {
	Handle  *PaymentHandle   `json:"handle"`
	Options *CheckoutOptions `json:"options"`
}

// ConfirmPaymentRequest is the widget's completion callback payload.
type ConfirmPaymentRequest struct {
	OrderID           string `json:"order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

type CancelPaymentRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}
