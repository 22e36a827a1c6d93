package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	apierrors "badge/internal/errors"
	"badge/internal/helpers"
	"badge/internal/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate decodes the JSON body into T and stores it under models.BodyKey.
func Validate[T any](next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		var body T

		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := decoder.Decode(&body); err != nil {
			zap.L().Debug("Invalid request body", zap.Error(err))
			helpers.RespondWithError(w, http.StatusBadRequest, []string{apierrors.CodeInvalidParameter})
			return
		}

		if err := validate.Struct(body); err != nil {
			zap.L().Debug("Request body failed validation", zap.Error(err))
			helpers.RespondWithError(w, http.StatusBadRequest, []string{apierrors.CodeInvalidParameter})
			return
		}

		ctx := context.WithValue(r.Context(), models.BodyKey{}, body)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(fn)
}
