package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/freshplate/freshplate-backend/internal/services"
)

type contextKey string

const identityKey contextKey = "identity"

// extractBearerToken returns the token portion of an Authorization header, or "".
func extractBearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// RequireSignin verifies the bearer token and attaches the decoded identity to
// the request context. Requests without a valid token are rejected with 401
// before any handler logic runs.
func RequireSignin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r.Header.Get("Authorization"))
			if token == "" {
				unauthorized(w, "Authentication required")
				return
			}
			identity, err := services.ParseToken(token, secret)
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the identity attached by RequireSignin, or nil when the
// request did not pass through it.
func IdentityFrom(ctx context.Context) *services.Identity {
	identity, _ := ctx.Value(identityKey).(*services.Identity)
	return identity
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
