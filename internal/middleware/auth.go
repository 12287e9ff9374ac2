package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/joonpark/post-board/internal/api"
	"github.com/joonpark/post-board/internal/auth"
)

type contextKey struct{}

var claimsKey contextKey

// ClaimsFrom returns the verified token claims injected by RequireAuth,
// or nil when the request was not authenticated.
func ClaimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// RequireAuth validates the Authorization bearer token and injects the
// verified claims into the request context. Missing, malformed, tampered,
// and expired tokens are all rejected with the same 401.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				api.Fail(w, http.StatusUnauthorized, "authentication required", "")
				return
			}

			claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				api.Fail(w, http.StatusUnauthorized, "invalid token", "")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
