package testutils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/quickcart/storefront/internal/api/middleware"
	"github.com/quickcart/storefront/internal/models"
)

// TestIdentity is a ready-made signed-in shopper for handler tests.
func TestIdentity() *models.Identity {
	return &models.Identity{
		ID:    "user-1",
		Name:  "Test Shopper",
		Email: "test@example.com",
		Token: "mock_token_1700000000000_test_example.com",
	}
}

func CreateTestRequestWithContext(method, target string, body io.Reader, identity *models.Identity, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := middleware.WithIdentity(req.Context(), identity)
	ctx = middleware.WithLogger(ctx, logger)

	return req.WithContext(ctx)
}

func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := middleware.WithLogger(req.Context(), logger)

	return req.WithContext(ctx)
}
