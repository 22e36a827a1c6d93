package middlewares

import (
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"

	c "badge/internal/cache"
	apierrors "badge/internal/errors"
	"badge/internal/helpers"

	"go.uber.org/zap"
)

// RateLimit counts requests per client address. A nil cache or a zero limit disables it, and
// a cache failure lets the request through.
func RateLimit(cache c.ICache, requestsPerMinute int, trustedProxies []string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cache == nil || requestsPerMinute <= 0 {
			return next
		}

		fn := func(w http.ResponseWriter, r *http.Request) {
			client := ClientIP(r, trustedProxies)

			retryAfter, err := cache.GetRateLimit(client, requestsPerMinute)
			if err != nil {
				zap.L().Warn("Rate limit check failed", zap.String("client", client), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if retryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				helpers.RespondWithError(w, http.StatusTooManyRequests, []string{apierrors.CodeTooManyRequests})
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

// ClientIP trusts X-Forwarded-For only when the direct peer is a trusted proxy.
func ClientIP(r *http.Request, trustedProxies []string) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}

	if !slices.Contains(trustedProxies, remote) {
		return remote
	}

	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return remote
	}

	first, _, _ := strings.Cut(forwarded, ",")
	if client := strings.TrimSpace(first); client != "" {
		return client
	}
	return remote
}
