package router

import (
	"log/slog"
	"net/http"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/ratelimit"
)

// RateLimit rejects requests whose client IP exceeded the limiter window,
// answering with 429 and the given message. The limiter failing is not a
// reason to block traffic, so errors only log a warning.
func RateLimit(limiter ratelimit.Limiter, message string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientIPKey(r))
			if err != nil {
				slog.WarnContext(r.Context(), "rate limiter unavailable", "error", err)
				allowed = true
			}

			if !allowed {
				writeJSON(w, errorResponse{Message: message}, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIPKey strips the port when RemoteAddr was not rewritten by the IP
// middleware.
func clientIPKey(r *http.Request) string {
	if ip := realIP(r); ip != "" {
		return ip
	}

	return r.RemoteAddr
}
