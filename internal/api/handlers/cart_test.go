package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quickcart/storefront/internal/api/handlers"
	"github.com/quickcart/storefront/internal/models"
	repository "github.com/quickcart/storefront/internal/repositories"
	service "github.com/quickcart/storefront/internal/services"
	"github.com/quickcart/storefront/internal/testutils"
	"github.com/quickcart/storefront/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSnapshot(t *testing.T, body []byte) *models.CartSnapshot {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	snapshot := &models.CartSnapshot{}
	require.NoError(t, json.Unmarshal(data, snapshot))

	return snapshot
}

func TestGetCart(t *testing.T) {
	carts := service.NewCartService(repository.NewCartRepo())
	cartHandler := handlers.NewCartHandler(carts)
	identity := testutils.TestIdentity()

	t.Run("Success - Empty Cart", func(t *testing.T) {
		// Arrange
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/cart", nil, identity, nil)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.GetCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		snapshot := decodeSnapshot(t, rr.Body.Bytes())
		assert.Empty(t, snapshot.Items)
		assert.Zero(t, snapshot.Subtotal)
	})

	t.Run("Failure - No Identity", func(t *testing.T) {
		// Arrange
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/cart", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.GetCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAddItemHandler(t *testing.T) {
	identity := testutils.TestIdentity()

	t.Run("Success - Item Lands In The Cart", func(t *testing.T) {
		// Arrange
		carts := service.NewCartService(repository.NewCartRepo())
		cartHandler := handlers.NewCartHandler(carts)

		body, _ := json.Marshal(models.AddItemRequest{ID: "p1", Name: "Mug", Price: 9.5})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(body), identity, nil)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		// Act
		cartHandler.AddItem().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		snapshot := decodeSnapshot(t, rr.Body.Bytes())
		require.Len(t, snapshot.Items, 1)
		assert.Equal(t, 1, snapshot.Items[0].Quantity)
		assert.InDelta(t, 9.5, snapshot.Subtotal, 1e-9)
	})

	t.Run("Failure - Missing Name", func(t *testing.T) {
		// Arrange
		carts := service.NewCartService(repository.NewCartRepo())
		cartHandler := handlers.NewCartHandler(carts)

		body, _ := json.Marshal(map[string]any{"id": "p1", "price": 9.5})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(body), identity, nil)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.AddItem().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateQuantityHandler(t *testing.T) {
	identity := testutils.TestIdentity()

	// Arrange
	carts := service.NewCartService(repository.NewCartRepo())
	cartHandler := handlers.NewCartHandler(carts)

	_, err := carts.AddItem(identity.Token, &models.AddItemRequest{ID: "p1", Name: "Mug", Price: 25.50})
	require.NoError(t, err)

	body, _ := json.Marshal(models.UpdateQuantityRequest{ProductID: "p1", Quantity: 3})
	req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/cart/items", bytes.NewReader(body), identity, nil)
	rr := httptest.NewRecorder()

	// Act
	cartHandler.UpdateQuantity().ServeHTTP(rr, req)

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)
	snapshot := decodeSnapshot(t, rr.Body.Bytes())
	assert.Equal(t, 3, snapshot.ItemCount)
	assert.InDelta(t, 76.50, snapshot.Subtotal, 1e-9)
}

func TestRemoveItemHandler(t *testing.T) {
	identity := testutils.TestIdentity()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		carts := service.NewCartService(repository.NewCartRepo())
		cartHandler := handlers.NewCartHandler(carts)

		_, err := carts.AddItem(identity.Token, &models.AddItemRequest{ID: "p1", Name: "Mug", Price: 10})
		require.NoError(t, err)

		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/cart/items/p1", nil, identity, map[string]string{"id": "p1"})
		rr := httptest.NewRecorder()

		// Act
		cartHandler.RemoveItem().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		snapshot := decodeSnapshot(t, rr.Body.Bytes())
		assert.Empty(t, snapshot.Items)
	})

	t.Run("Failure - Missing Path Value", func(t *testing.T) {
		// Arrange
		carts := service.NewCartService(repository.NewCartRepo())
		cartHandler := handlers.NewCartHandler(carts)

		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/cart/items/", nil, identity, nil)
		rr := httptest.NewRecorder()

		// Act
		cartHandler.RemoveItem().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
