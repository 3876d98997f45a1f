// Package razorpay is a minimal client for the Razorpay Orders API plus the
// checkout signature verification scheme.
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Order is a provider order as returned by POST /v1/orders.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Client defines what the payment flow needs from Razorpay.
type Client interface {
	// CreateOrder registers a payment attempt. Amount is in the smallest
	// currency unit (paisa for INR).
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error)
	// VerifySignature checks the checkout callback signature
	// (HMAC-SHA256 of "<order_id>|<payment_id>" keyed with the secret).
	VerifySignature(orderID, paymentID, signature string) error
	KeyID() string
	BaseURL() string
}

type Config struct {
	KeyID      string
	KeySecret  string
	BaseURL    string
	HTTPClient *http.Client
}

type client struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *http.Client
}

// ErrSignatureMismatch is returned when a callback signature does not verify.
var ErrSignatureMismatch = errors.New("razorpay: signature mismatch")

func New(cfg Config) Client {

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.razorpay.com"
	}

	return &client{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   baseURL,
		http:      httpClient,
	}
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *client) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error) {

	body, err := json.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return nil, fmt.Errorf("razorpay: encode order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("razorpay: build order request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay: create order: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("razorpay: read order response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("razorpay: order creation failed: %s", apiErr.Error.Description)
		}

		return nil, fmt.Errorf("razorpay: order creation failed with status %d", resp.StatusCode)
	}

	order := &Order{}
	if err := json.Unmarshal(data, order); err != nil {
		return nil, fmt.Errorf("razorpay: decode order response: %w", err)
	}

	return order, nil
}

func (c *client) VerifySignature(orderID, paymentID, signature string) error {

	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}

	return nil
}

func (c *client) KeyID() string {
	return c.keyID
}

func (c *client) BaseURL() string {
	return c.baseURL
}
