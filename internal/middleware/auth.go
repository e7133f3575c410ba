package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/driveeasy/driveeasy-api/shared/auth"
	"github.com/driveeasy/driveeasy-api/shared/httpx"
)

type contextKey struct{}

var userIDKey = contextKey{}

// UserID returns the authenticated caller's id stored by RequireAuth.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// RequireAuth validates the bearer token on incoming requests and stores the
// caller's user id in the request context.
func RequireAuth(jwtAuth auth.JWTAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httpx.Message(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				httpx.Message(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := jwtAuth.ValidateToken(parts[1])
			if err != nil {
				httpx.Message(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
