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

type CartHandler struct {
	carts     service.CartService
	validator *validator.Validate
}

func NewCartHandler(carts service.CartService) *CartHandler {
	return &CartHandler{carts: carts, validator: validator.New()}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		response.Success(w, http.StatusOK, h.carts.Snapshot(identity.Token))
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		snapshot, err := h.carts.AddItem(identity.Token, &req)
		if err != nil {
			logger.Warn("Failed to add cart item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart item added", slog.String("productId", req.ProductRef()))
		response.Success(w, http.StatusOK, snapshot)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		response.Success(w, http.StatusOK, h.carts.UpdateQuantity(identity.Token, &req))
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		productID := r.PathValue("id")
		if productID == "" {
			response.Error(w, errors.BadRequestError("Product ID is required"))
			return
		}

		response.Success(w, http.StatusOK, h.carts.RemoveItem(identity.Token, productID))
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		h.carts.Clear(identity.Token)
		response.Success(w, http.StatusOK, h.carts.Snapshot(identity.Token))
	}
}
