package utils

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quickcart/storefront/internal/errors"
	"github.com/quickcart/storefront/internal/utils/response"
)

// ParseAndValidate decodes the request body into dest and runs struct
// validation. On failure it writes the error envelope and returns false;
// handlers bail out immediately.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request body", slog.String("endpoint", r.URL.Path), slog.String("error", err.Error()))
		response.Error(w, errors.ValidationError(err.Error()))
		return false
	}

	if err := validate.Struct(dest); err != nil {
		var validationErrs validator.ValidationErrors
		if stderrors.As(err, &validationErrs) {
			slog.Warn("Request validation failed", slog.String("endpoint", r.URL.Path), slog.String("error", validationErrs.Error()))
			response.ValidationError(w, validationErrs)
			return false
		}

		slog.Error("Unexpected validation error", slog.String("error", err.Error()))
		response.Error(w, errors.InternalError("Unable to validate request").WithError(err))
		return false
	}

	return true
}
