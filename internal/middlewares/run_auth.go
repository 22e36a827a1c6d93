package middlewares

import (
	"net/http"

	"badge/internal/configuration"
	apierrors "badge/internal/errors"
	"badge/internal/helpers"

	"go.uber.org/zap"
)

// RunAuth only lets requests through when X_AUTH_HEADER carries the base64 run token matching
// tokenHash. Preflight requests are not checked.
func RunAuth(tokenHash string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if err := helpers.CompareRunToken(r.Header.Get(configuration.RunAuthHeader), tokenHash); err != nil {
				zap.L().Debug("Rejected run token", zap.String("path", r.URL.Path), zap.Error(err))
				helpers.RespondWithError(w, http.StatusUnauthorized, []string{apierrors.CodeUnauthorized})
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
