package handlers

import (
	"log/slog"
	"net/http"

	"github.com/quickcart/storefront/internal/api/middleware"
	"github.com/quickcart/storefront/internal/errors"
	service "github.com/quickcart/storefront/internal/services"
	"github.com/quickcart/storefront/internal/utils/response"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// ListMyOrders godoc
//	@Summary		List the shopper's orders
//	@Description	Returns the signed-in shopper's order history, newest first.
//	@Tags			Orders
//	@Produce		json
//	@Success		200	{array}		models.Order			"Order history"
//	@Failure		401	{object}	response.ErrorResponse	"Session expired"
//	@Failure		502	{object}	response.ErrorResponse	"Backend failure"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListMyOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		orders, err := h.orders.ListMyOrders(r.Context(), identity)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// GetOrder godoc
//	@Summary		Get one order
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID"
//	@Success		200	{object}	models.Order			"Order detail"
//	@Failure		401	{object}	response.ErrorResponse	"Session expired"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		orderID := r.PathValue("id")
		if orderID == "" {
			response.Error(w, errors.BadRequestError("Order ID is required"))
			return
		}

		order, err := h.orders.GetOrder(r.Context(), identity, orderID)
		if err != nil {
			logger.Error("Failed to get order", slog.String("orderId", orderID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}
