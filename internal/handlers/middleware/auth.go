package middleware

import (
	"net/http"

	"github.com/leoisqualified/pomodoro-timer/internal/handlers/render"
	"github.com/leoisqualified/pomodoro-timer/internal/handlers/userctx"
	"github.com/leoisqualified/pomodoro-timer/internal/models"
)

type authService interface {
	// Extract access token cookie from request
	ReadAccess(r *http.Request) (string, error)

	// Verify token and return identity decoded from it
	VerifyAccess(access string) (models.User, error)
}

// AuthMiddleware guards protected handlers
// Requests without a valid access token cookie are rejected before the
// handler runs; on success the identity is bound to the request context.
// Expired tokens are not refreshed here: refreshing is an explicit client
// call to the refresh endpoint
func AuthMiddleware(as authService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			access, err := as.ReadAccess(r)
			if err != nil {
				render.ServiceError(w, "No token provided", http.StatusUnauthorized)
				return
			}

			user, err := as.VerifyAccess(access)
			if err != nil {
				render.ServiceError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := userctx.New(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
