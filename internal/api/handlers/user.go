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

type UserHandler struct {
	auth      service.Authenticator
	validator *validator.Validate
}

func NewUserHandler(auth service.Authenticator) *UserHandler {
	return &UserHandler{auth: auth, validator: validator.New()}
}

// Register godoc
//	@Summary		Register a shopper
//	@Description	Creates a session for a new shopper. In mock mode no credential is verified.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	models.AuthResponse		"Session created"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Router			/auth/register [post]
func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.auth.Register(r.Context(), &req)
		if err != nil {
			logger.Error("Registration failed", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Shopper registered", slog.String("email", req.Email))
		response.Success(w, http.StatusCreated, resp)
	}
}

// Login godoc
//	@Summary		Log a shopper in
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.LoginRequest		true	"Login details"
//	@Success		200		{object}	models.AuthResponse		"Session created"
//	@Failure		401		{object}	models.AuthResponse		"Invalid credentials"
//	@Failure		429		{object}	models.AuthResponse		"Too many attempts"
//	@Router			/auth/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.auth.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			status := http.StatusUnauthorized
			if resp.RetryAfter > 0 {
				status = http.StatusTooManyRequests
			}

			logger.Warn("Login rejected", slog.String("email", req.Email))
			response.WriteJson(w, status, resp)
			return
		}

		logger.Info("Shopper logged in", slog.String("email", req.Email))
		response.Success(w, http.StatusOK, resp)
	}
}

// Logout ends the current session; the token stops resolving immediately.
func (h *UserHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		if err := h.auth.Logout(r.Context(), identity.Token); err != nil {
			logger.Error("Logout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Shopper logged out", slog.String("email", identity.Email))
		response.Success(w, http.StatusOK, map[string]string{"message": "Logged out"})
	}
}

// Me returns the identity behind the presented token.
func (h *UserHandler) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		response.Success(w, http.StatusOK, identity)
	}
}
