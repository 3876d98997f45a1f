package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/quickcart/storefront/internal/config"
	"github.com/quickcart/storefront/internal/errors"
	"github.com/quickcart/storefront/internal/metrics"
	"github.com/quickcart/storefront/internal/models"
	"github.com/quickcart/storefront/internal/upstream"
	"github.com/quickcart/storefront/pkg/sendgrid"
)

// PaymentService runs the gateway leg of an order: register the attempt,
// verify the widget callback, and tell the backend the order is paid.
type PaymentService interface {
	CreateOrder(ctx context.Context, identity *models.Identity, req *models.CreateGatewayOrderRequest) (*models.CreateGatewayOrderResponse, error)
	Confirm(ctx context.Context, identity *models.Identity, req *models.ConfirmPaymentRequest) (*models.Order, error)
	Cancel(ctx context.Context, identity *models.Identity, req *models.CancelPaymentRequest) error
}

type paymentService struct {
	commerce upstream.Commerce
	gateway  PaymentGateway
	email    sendgrid.EmailService
	cfg      *config.Payment

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewPaymentService wires the gateway flow. email may be nil; receipts are
// best-effort and never fail a payment.
func NewPaymentService(commerce upstream.Commerce, gateway PaymentGateway, email sendgrid.EmailService, cfg *config.Payment) PaymentService {
	return &paymentService{
		commerce: commerce,
		gateway:  gateway,
		email:    email,
		cfg:      cfg,
		inFlight: make(map[string]struct{}),
	}
}

func (s *paymentService) begin(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[orderID]; busy {
		return false
	}

	s.inFlight[orderID] = struct{}{}

	return true
}

func (s *paymentService) release(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, orderID)
}

func (s *paymentService) CreateOrder(ctx context.Context, identity *models.Identity, req *models.CreateGatewayOrderRequest) (*models.CreateGatewayOrderResponse, error) {

	if !s.begin(req.OrderID) {
		return nil, errors.BadRequestError("A payment is already in progress for this order.")
	}

	order, err := s.commerce.GetOrder(ctx, identity.Token, req.OrderID)
	if err != nil {
		s.release(req.OrderID)

		return nil, err
	}

	if order.IsPaid {
		s.release(req.OrderID)

		return nil, errors.BadRequestError("This order has already been paid.")
	}

	amountMinor := int64(math.Round(order.TotalPrice * 100))
	notes := map[string]string{"order_id": order.ID}

	handle, err := s.gateway.CreateGatewayOrder(ctx, amountMinor, s.cfg.Currency, order.ID, notes)
	if err != nil {
		s.release(req.OrderID)
		metrics.ObservePayment(s.gateway.Name(), "failed")

		return nil, err
	}

	if handle.GatewayOrderID == "" {
		s.release(req.OrderID)
		metrics.ObservePayment(s.gateway.Name(), "failed")

		return nil, errors.PaymentGatewayError(msgPaymentSystem)
	}

	metrics.ObservePayment(s.gateway.Name(), "initiated")

	options := &models.CheckoutOptions{
		Key:         handle.KeyID,
		Amount:      handle.AmountMinor,
		Currency:    handle.Currency,
		Name:        s.cfg.StoreName,
		Description: "Order #" + order.ID,
		OrderID:     handle.GatewayOrderID,
		Prefill: models.CheckoutPrefill{
			Name:  identity.Name,
			Email: identity.Email,
		},
		Notes: notes,
		Theme: models.CheckoutTheme{Color: s.cfg.ThemeColor},
	}

	// the attempt stays in-flight until Confirm or Cancel settles it
	return &models.CreateGatewayOrderResponse{Handle: handle, Options: options}, nil
}

func (s *paymentService) Confirm(ctx context.Context, identity *models.Identity, req *models.ConfirmPaymentRequest) (*models.Order, error) {

	defer s.release(req.OrderID)

	order, err := s.commerce.GetOrder(ctx, identity.Token, req.OrderID)
	if err != nil {
		return nil, err
	}

	// a replayed callback for a settled order is not an error
	if order.IsPaid {
		return order, nil
	}

	if err := s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
		metrics.ObservePayment(s.gateway.Name(), "failed")

		return nil, err
	}

	result := &models.PaymentResult{
		PaymentIntentID:   req.RazorpayPaymentID,
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpaySignature: req.RazorpaySignature,
		Status:            "succeeded",
		UpdatedAt:         time.Now(),
	}

	paid, err := s.commerce.MarkOrderPaid(ctx, identity.Token, req.OrderID, result)
	if err != nil {
		metrics.ObservePayment(s.gateway.Name(), "failed")

		return nil, err
	}

	metrics.ObservePayment(s.gateway.Name(), "succeeded")
	s.sendReceipt(ctx, identity, paid)

	return paid, nil
}

func (s *paymentService) Cancel(ctx context.Context, identity *models.Identity, req *models.CancelPaymentRequest) error {

	s.release(req.OrderID)
	metrics.ObservePayment(s.gateway.Name(), "cancelled")

	slog.InfoContext(ctx, "Payment cancelled by shopper",
		slog.String("orderId", req.OrderID),
		slog.String("email", identity.Email))

	return nil
}

// sendReceipt is best-effort; a mail failure only logs.
func (s *paymentService) sendReceipt(ctx context.Context, identity *models.Identity, order *models.Order) {

	if s.email == nil {
		return
	}

	subject := fmt.Sprintf("%s - payment received for order %s", s.cfg.StoreName, order.ID)
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received your payment of %.2f %s for order %s.\nThank you for shopping with %s.\n",
		identity.Name, order.TotalPrice, s.cfg.Currency, order.ID, s.cfg.StoreName,
	)

	err := s.email.Send(ctx, &sendgrid.Email{
		To:      identity.Email,
		Subject: subject,
		Content: body,
	})
	if err != nil {
		slog.WarnContext(ctx, "Failed to send receipt email",
			slog.String("orderId", order.ID),
			slog.String("error", err.Error()))
	}
}
