package middlewares

import (
	"net"
	"net/http"
	"strconv"

	c "api/internal/cache"
	h "api/internal/helpers"
	"api/internal/models"

	"go.uber.org/zap"
)

// RateLimit enforces a per-user request budget through the cache.
// Anonymous requests fall back to the client address as the identifier.
func RateLimit(cache c.ICache, requestsPerMinute int) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cache == nil {
				next.ServeHTTP(w, r)
				return
			}

			identifier := clientIdentifier(r)

			retryAfter, err := cache.GetRateLimit(identifier, requestsPerMinute)
			if err != nil {
				zap.L().Error("Rate limit check failed", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if retryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				h.RespondWithError(w, 429, []string{"RATE_LIMITED"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIdentifier(r *http.Request) string {
	if claims, ok := r.Context().Value(models.UserClaimKey{}).(models.UserClaims); ok {
		return claims.UserID.String()
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
