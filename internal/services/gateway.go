package service

import (
	"context"
	stderrors "errors"
	"fmt"

	stripelib "github.com/stripe/stripe-go/v81"

	"github.com/quickcart/storefront/internal/config"
	"github.com/quickcart/storefront/internal/errors"
	"github.com/quickcart/storefront/internal/models"
	"github.com/quickcart/storefront/pkg/razorpay"
	"github.com/quickcart/storefront/pkg/stripe"
)

// PaymentGateway abstracts the payment provider behind the two calls the flow
// needs. Amounts are always in the smallest currency unit.
type PaymentGateway interface {
	CreateGatewayOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (*models.PaymentHandle, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) error
	Name() string
}

// NewPaymentGateway selects the provider adapter by config.
func NewPaymentGateway(cfg *config.Config, rzpClient razorpay.Client, stripeClient stripe.Client) (PaymentGateway, error) {
	switch cfg.Payment.Gateway {
	case "razorpay":
		return &razorpayGateway{client: rzpClient}, nil
	case "stripe":
		return &stripeGateway{client: stripeClient, publishableKey: cfg.Stripe.PublishableKey}, nil
	default:
		return nil, fmt.Errorf("unknown payment gateway: %q", cfg.Payment.Gateway)
	}
}

type razorpayGateway struct {
	client razorpay.Client
}

func (g *razorpayGateway) CreateGatewayOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (*models.PaymentHandle, error) {

	order, err := g.client.CreateOrder(ctx, amountMinor, currency, receipt, notes)
	if err != nil {
		return nil, errors.PaymentGatewayError("Failed to create payment order").WithError(err)
	}

	return &models.PaymentHandle{
		GatewayOrderID: order.ID,
		Currency:       order.Currency,
		AmountMinor:    order.Amount,
		KeyID:          g.client.KeyID(),
	}, nil
}

func (g *razorpayGateway) VerifySignature(gatewayOrderID, paymentID, signature string) error {

	if err := g.client.VerifySignature(gatewayOrderID, paymentID, signature); err != nil {
		if stderrors.Is(err, razorpay.ErrSignatureMismatch) {
			return errors.PaymentGatewayError("Payment signature verification failed").WithError(err)
		}

		return errors.PaymentGatewayError("Failed to verify payment").WithError(err)
	}

	return nil
}

func (g *razorpayGateway) Name() string {
	return "razorpay"
}

// stripeGateway is the alternative provider. Stripe has no callback
// signature; verification fetches the intent and checks its status instead.
type stripeGateway struct {
	client         stripe.Client
	publishableKey string
}

func (g *stripeGateway) CreateGatewayOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (*models.PaymentHandle, error) {

	intent, err := g.client.CreatePaymentIntent(amountMinor, currency, "Order "+receipt, notes)
	if err != nil {
		return nil, errors.PaymentGatewayError("Failed to create payment intent").WithError(err)
	}

	return &models.PaymentHandle{
		GatewayOrderID: intent.ID,
		Currency:       currency,
		AmountMinor:    amountMinor,
		KeyID:          g.publishableKey,
	}, nil
}

func (g *stripeGateway) VerifySignature(gatewayOrderID, paymentID, signature string) error {

	intent, err := g.client.GetPaymentIntent(paymentID)
	if err != nil {
		return errors.PaymentGatewayError("Failed to verify payment").WithError(err)
	}

	if intent.Status != stripelib.PaymentIntentStatusSucceeded {
		return errors.PaymentGatewayError("Payment has not succeeded")
	}

	return nil
}

func (g *stripeGateway) Name() string {
	return "stripe"
}
