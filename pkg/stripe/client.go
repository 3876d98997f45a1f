// Package stripe wraps the pieces of the Stripe API the storefront's
// alternative payment path uses.
package stripe

import (
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/balance"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// Client defines the methods any Stripe-backed payment flow needs.
type Client interface {
	CreatePaymentIntent(amount int64, currency, description string, metadata map[string]string) (*stripe.PaymentIntent, error)
	GetPaymentIntent(paymentIntentID string) (*stripe.PaymentIntent, error)
	Ping() error
}

type stripeClient struct{}

func NewStripeClient(apiKey string) Client {
	stripe.Key = apiKey

	return &stripeClient{}
}

// CreatePaymentIntent registers a planned charge. Amount is in the smallest
// currency unit.
func (s *stripeClient) CreatePaymentIntent(amount int64, currency, description string, metadata map[string]string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amount),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
	}

	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	return paymentintent.New(params)
}

func (s *stripeClient) GetPaymentIntent(paymentIntentID string) (*stripe.PaymentIntent, error) {
	return paymentintent.Get(paymentIntentID, nil)
}

// Ping verifies API credentials by fetching the account balance.
func (s *stripeClient) Ping() error {
	_, err := balance.Get(&stripe.BalanceParams{})

	return err
}
