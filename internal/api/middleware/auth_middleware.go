package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/quickcart/storefront/internal/errors"
	"github.com/quickcart/storefront/internal/models"
	service "github.com/quickcart/storefront/internal/services"
	"github.com/quickcart/storefront/internal/utils/response"
)

type contextKey uuid.UUID

// IdentityContextKey holds the *models.Identity for the signed-in shopper.
var IdentityContextKey = contextKey(uuid.New())

type AuthMiddleware struct {
	auth service.Authenticator
}

func NewAuthMiddleware(auth service.Authenticator) *AuthMiddleware {

	return &AuthMiddleware{auth: auth}

}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		// Token is of format : "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")

		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format", slog.String("header", authHeader))
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
			return
		}

		identity, err := m.auth.Authenticate(r.Context(), tokenParts[1])
		if err != nil {
			logger.Warn("Session resolution failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), IdentityContextKey, identity)

		requestScopedLogger := logger.With(slog.String("userId", identity.ID))
		ctx = context.WithValue(ctx, loggerKey, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// IdentityFromContext returns the signed-in shopper, or nil outside the
// authenticated chain.
func IdentityFromContext(ctx context.Context) *models.Identity {
	if identity, ok := ctx.Value(IdentityContextKey).(*models.Identity); ok {
		return identity
	}

	return nil
}

// WithIdentity returns a context carrying the identity; used by tests.
func WithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, identity)
}
