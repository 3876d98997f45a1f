package service

import (
	"context"
	"sync"

	"github.com/quickcart/storefront/internal/config"
	"github.com/quickcart/storefront/internal/errors"
	"github.com/quickcart/storefront/internal/metrics"
	"github.com/quickcart/storefront/internal/models"
	"github.com/quickcart/storefront/internal/upstream"
)

// State names the phases a checkout attempt moves through. Transitions are
// strictly forward: Idle -> Validating -> Submitting -> Succeeded | Failed.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Attempt is the terminal record of one checkout submission. Message is safe
// to show a shopper; the error returned alongside carries the code.
type Attempt struct {
	State   State         `json:"state"`
	Order   *models.Order `json:"order,omitempty"`
	Message string        `json:"message"`
}

const (
	msgEmptyCart      = "Your cart is empty. Add items before checkout."
	msgCheckoutBusy   = "A checkout is already in progress."
	msgSessionExpired = "Your session has expired. Please log in again."
	msgPaymentSystem  = "Payment system error. Please try again later or contact support."
	msgOrderFailed    = "Failed to create order. Please try again."
)

type CheckoutService interface {
	Submit(ctx context.Context, identity *models.Identity) (*Attempt, error)
}

type checkoutService struct {
	carts    CartService
	commerce upstream.Commerce
	cfg      *config.Payment

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewCheckoutService(carts CartService, commerce upstream.Commerce, cfg *config.Payment) CheckoutService {
	return &checkoutService{
		carts:    carts,
		commerce: commerce,
		cfg:      cfg,
		inFlight: make(map[string]struct{}),
	}
}

func (s *checkoutService) Submit(ctx context.Context, identity *models.Identity) (*Attempt, error) {

	// one submission per session at a time
	s.mu.Lock()
	if _, busy := s.inFlight[identity.Token]; busy {
		s.mu.Unlock()

		return &Attempt{State: StateFailed, Message: msgCheckoutBusy}, errors.BadRequestError(msgCheckoutBusy)
	}
	s.inFlight[identity.Token] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, identity.Token)
		s.mu.Unlock()
	}()

	// Validating: nothing leaves the process for an empty cart
	snapshot := s.carts.Snapshot(identity.Token)
	if len(snapshot.Items) == 0 {
		metrics.ObserveCheckout("empty_cart")

		return &Attempt{State: StateFailed, Message: msgEmptyCart}, errors.BadRequestError(msgEmptyCart)
	}

	// Submitting
	order, err := s.commerce.CreateOrder(ctx, identity.Token, buildOrderRequest(snapshot, s.cfg.Method))
	if err != nil {
		metrics.ObserveCheckout("failed")
		friendly := friendlyCheckoutMessage(err)

		return &Attempt{State: StateFailed, Message: friendly}, recode(err, friendly)
	}

	metrics.ObserveCheckout("succeeded")

	// the cart is intentionally left intact; payment may still fail and the
	// shopper would otherwise have to rebuild it
	return &Attempt{State: StateSucceeded, Order: order, Message: "Order created successfully."}, nil
}

// buildOrderRequest freezes the snapshot into the backend's wire shape. The
// fixed address stands in for the address step this slice does not have.
func buildOrderRequest(snapshot *models.CartSnapshot, paymentMethod string) *models.OrderRequest {

	items := make([]models.OrderItem, 0, len(snapshot.Items))

	for _, line := range snapshot.Items {
		items = append(items, models.OrderItem{
			Name:      line.Name,
			Quantity:  line.Quantity,
			Image:     line.Image,
			UnitPrice: line.UnitPrice,
			ProductID: line.ProductID,
		})
	}

	return &models.OrderRequest{
		OrderItems:      items,
		ShippingAddress: models.DefaultShippingAddress,
		PaymentMethod:   paymentMethod,
		ItemsPrice:      snapshot.Subtotal,
		ShippingPrice:   0,
		TaxPrice:        0,
		TotalPrice:      snapshot.Subtotal,
	}
}

// friendlyCheckoutMessage maps stable error codes to shopper-facing text.
func friendlyCheckoutMessage(err error) string {
	switch {
	case errors.HasCode(err, errors.ErrCodeUnauthorized):
		return msgSessionExpired
	case errors.HasCode(err, errors.ErrCodePaymentGateway):
		return msgPaymentSystem
	default:
		return msgOrderFailed
	}
}

// recode keeps the original code and status but swaps in the friendly
// message, preserving the cause chain.
func recode(err error, message string) error {
	if appErr, ok := errors.IsAppError(err); ok {
		return errors.NewAppError(appErr.Code, message, appErr.StatusCode).WithError(err)
	}

	return errors.InternalError(message).WithError(err)
}
