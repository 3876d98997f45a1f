package handlers

import (
	"log/slog"
	"net/http"

	"github.com/quickcart/storefront/internal/api/middleware"
	"github.com/quickcart/storefront/internal/errors"
	service "github.com/quickcart/storefront/internal/services"
	"github.com/quickcart/storefront/internal/utils/response"
)

type CheckoutHandler struct {
	checkout service.CheckoutService
}

func NewCheckoutHandler(checkout service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Submit godoc
//	@Summary		Submit the cart as an order
//	@Description	Freezes the current cart into an order at the commerce backend. The cart is kept until payment completes.
//	@Tags			Checkout
//	@Produce		json
//	@Success		201	{object}	service.Attempt			"Order created"
//	@Failure		400	{object}	response.ErrorResponse	"Empty cart or a checkout already in progress"
//	@Failure		401	{object}	response.ErrorResponse	"Session expired"
//	@Failure		502	{object}	response.ErrorResponse	"Backend or payment system failure"
//	@Security		BearerAuth
//	@Router			/checkout [post]
func (h *CheckoutHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		attempt, err := h.checkout.Submit(r.Context(), identity)
		if err != nil {
			logger.Warn("Checkout failed", slog.String("state", string(attempt.State)), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout succeeded", slog.String("orderId", attempt.Order.ID))
		response.Success(w, http.StatusCreated, attempt)
	}
}
