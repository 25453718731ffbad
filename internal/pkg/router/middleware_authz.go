package router

import (
	"log/slog"
	"net/http"

	"github.com/casbin/casbin/v3"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/jwt"
)

// Authorization enforces casbin policies on the authenticated user's role.
// It must run after the authentication middleware has stored claims in the
// request context.
func Authorization(enforcer *casbin.Enforcer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := jwt.GetAuth(r.Context())
			if claims == nil {
				writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
				return
			}

			allowed, err := enforcer.Enforce(claims.UserRole, matchedRoutePath(r), r.Method)
			if err != nil {
				slog.ErrorContext(r.Context(), "authorization check failed", "error", err)
				writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
				return
			}

			if !allowed {
				writeJSON(w, errorResponse{Message: "You do not have access to this resource"}, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
