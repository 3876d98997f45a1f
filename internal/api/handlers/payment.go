package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quickcart/storefront/internal/api/middleware"
	"github.com/quickcart/storefront/internal/errors"
	"github.com/quickcart/storefront/internal/models"
	service "github.com/quickcart/storefront/internal/services"
	"github.com/quickcart/storefront/internal/utils"
	"github.com/quickcart/storefront/internal/utils/response"
)

type PaymentHandler struct {
	payments  service.PaymentService
	validator *validator.Validate
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments, validator: validator.New()}
}

// CreateOrder godoc
//	@Summary		Register a payment attempt at the gateway
//	@Description	Creates a gateway order for an unpaid backend order and returns the options the hosted widget needs.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.CreateGatewayOrderRequest	true	"Backend order id"
//	@Success		200		{object}	models.CreateGatewayOrderResponse	"Gateway order registered"
//	@Failure		400		{object}	response.ErrorResponse				"Order already paid or a payment in progress"
//	@Failure		401		{object}	response.ErrorResponse				"Session expired"
//	@Failure		502		{object}	response.ErrorResponse				"Gateway failure"
//	@Security		BearerAuth
//	@Router			/payments/order [post]
func (h *PaymentHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreateGatewayOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.payments.CreateOrder(r.Context(), identity, &req)
		if err != nil {
			logger.Error("Failed to create gateway order", slog.String("orderId", req.OrderID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Gateway order created",
			slog.String("orderId", req.OrderID),
			slog.String("gatewayOrderId", resp.Handle.GatewayOrderID))
		response.Success(w, http.StatusOK, resp)
	}
}

// Confirm godoc
//	@Summary		Confirm a completed payment
//	@Description	Verifies the widget callback and marks the backend order paid. Replays for a settled order are accepted.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.ConfirmPaymentRequest	true	"Widget callback payload"
//	@Success		200		{object}	models.Order					"Order marked paid"
//	@Failure		401		{object}	response.ErrorResponse			"Session expired"
//	@Failure		502		{object}	response.ErrorResponse			"Verification or backend failure"
//	@Security		BearerAuth
//	@Router			/payments/confirm [post]
func (h *PaymentHandler) Confirm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.ConfirmPaymentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.payments.Confirm(r.Context(), identity, &req)
		if err != nil {
			logger.Error("Payment confirmation failed", slog.String("orderId", req.OrderID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment confirmed", slog.String("orderId", order.ID))
		response.Success(w, http.StatusOK, order)
	}
}

// Cancel releases an abandoned payment attempt.
func (h *PaymentHandler) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CancelPaymentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.payments.Cancel(r.Context(), identity, &req); err != nil {
			logger.Error("Payment cancellation failed", slog.String("orderId", req.OrderID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment cancelled", slog.String("orderId", req.OrderID))
		response.Success(w, http.StatusOK, map[string]string{"message": "Payment cancelled"})
	}
}
