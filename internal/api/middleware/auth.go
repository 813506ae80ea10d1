package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/tilepath/internal/api/apierr"
	"github.com/mcoot/tilepath/internal/model"
	"github.com/mcoot/tilepath/internal/services/token"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// Authenticator verifies access tokens
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*token.Claims, error)
}

// Auth creates authentication middleware. Requests without a valid bearer
// token are rejected with 401.
func Auth(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractToken(r)
			if raw == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			claims, err := authenticator.Authenticate(r.Context(), raw)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated requests whose role is not one of
// roles. It must run after Auth.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			apierr.WriteError(w, apierr.NewForbiddenError("Role "+string(claims.Role)+" may not perform this action"))
		})
	}
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// GetClaims returns the verified token claims from the request context
func GetClaims(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*token.Claims)
	return claims
}

// MustGetClaims returns the verified claims or panics
func MustGetClaims(ctx context.Context) *token.Claims {
	claims := GetClaims(ctx)
	if claims == nil {
		panic("no claims in context - auth middleware not applied?")
	}
	return claims
}
