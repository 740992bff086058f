package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/neboloop/socialshare/internal/httputil"
)

// TokenCookie carries the admin token for browser sessions on the settings page.
const TokenCookie = "tzss_token"

// JWTMiddleware creates a chi middleware that validates JWT tokens from the
// Authorization header or, failing that, the token cookie.
func JWTMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, msg := bearerToken(r)
			if tokenString == "" {
				httputil.Unauthorized(w, msg)
				return
			}

			claims, err := ValidateToken(tokenString, secret)
			if err != nil {
				httputil.Unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, string) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", "invalid authorization header format"
		}
		return strings.TrimSpace(parts[1]), ""
	}
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return c.Value, ""
	}
	return "", "missing authorization header"
}
