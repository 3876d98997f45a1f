// Package upstream is the typed client for the commerce backend REST API.
// The backend owns products, orders and payment marking; this service only
// calls it and maps failures onto stable error codes.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/quickcart/storefront/internal/config"
	"github.com/quickcart/storefront/internal/errors"
	"github.com/quickcart/storefront/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Commerce interface {
	CreateOrder(ctx context.Context, token string, req *models.OrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, token, orderID string) (*models.Order, error)
	ListMyOrders(ctx context.Context, token string) ([]models.Order, error)
	MarkOrderPaid(ctx context.Context, token, orderID string, result *models.PaymentResult) (*models.Order, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	FeaturedProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type client struct {
	baseURL string
	http    *http.Client
}

func New(cfg *config.Upstream) Commerce {
	return &client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// errorBody is the backend's free-form error envelope; only the message is
// carried through, classification happens by status code.
type errorBody struct {
	Message string `json:"message"`
}

func (c *client) do(ctx context.Context, method, path, token string, body, out any) error {

	var reqBody io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.InternalError("Failed to encode request").WithError(err)
		}

		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.InternalError("Failed to build request").WithError(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.UpstreamError("Could not reach the store backend").WithError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.UpstreamError("Failed to read backend response").WithError(err)
	}

	if resp.StatusCode >= 400 {
		return c.statusError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.InvalidResponseError("Invalid response from the store backend").WithError(err)
		}
	}

	return nil
}

func (c *client) statusError(status int, body []byte) error {

	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	msg := eb.Message
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status: %d", status)
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.UnauthorizedError(msg)
	case http.StatusNotFound:
		return errors.NotFoundError(msg)
	case http.StatusBadRequest:
		return errors.BadRequestError(msg)
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		// the backend surfaces its own gateway trouble with these
		return errors.PaymentGatewayError(msg)
	default:
		return errors.UpstreamError(msg)
	}
}

func (c *client) CreateOrder(ctx context.Context, token string, req *models.OrderRequest) (*models.Order, error) {

	var resp models.CreateOrderResponse

	if err := c.do(ctx, http.MethodPost, "/api/orders", token, req, &resp); err != nil {
		return nil, err
	}

	if resp.Order == nil || resp.Order.ID == "" {
		return nil, errors.InvalidResponseError("Order creation response was missing the order id")
	}

	return resp.Order, nil
}

func (c *client) GetOrder(ctx context.Context, token, orderID string) (*models.Order, error) {

	order := &models.Order{}

	if err := c.do(ctx, http.MethodGet, "/api/orders/"+orderID, token, nil, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (c *client) ListMyOrders(ctx context.Context, token string) ([]models.Order, error) {

	var orders []models.Order

	if err := c.do(ctx, http.MethodGet, "/api/orders/myorders", token, nil, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (c *client) MarkOrderPaid(ctx context.Context, token, orderID string, result *models.PaymentResult) (*models.Order, error) {

	order := &models.Order{}

	if err := c.do(ctx, http.MethodPut, "/api/orders/"+orderID+"/pay", token, result, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (c *client) ListProducts(ctx context.Context) ([]models.Product, error) {

	var products []models.Product

	if err := c.do(ctx, http.MethodGet, "/api/products", "", nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *client) FeaturedProducts(ctx context.Context) ([]models.Product, error) {

	var products []models.Product

	if err := c.do(ctx, http.MethodGet, "/api/products/featured", "", nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *client) GetProduct(ctx context.Context, productID string) (*models.Product, error) {

	product := &models.Product{}

	if err := c.do(ctx, http.MethodGet, "/api/products/"+productID, "", nil, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (c *client) ListCategories(ctx context.Context) ([]string, error) {

	var categories []string

	if err := c.do(ctx, http.MethodGet, "/api/products/categories", "", nil, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}
