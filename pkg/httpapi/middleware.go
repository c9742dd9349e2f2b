// Package httpapi holds the HTTP middleware and response helpers shared by module routers.
package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/Black-And-White-Club/mask-tipper/pkg/jwt"
	"github.com/Black-And-White-Club/mask-tipper/pkg/observability/attr"
	"github.com/google/uuid"
)

const correlationHeader = "X-Correlation-ID"

// CorrelationMiddleware stores the request's correlation id on the context, generating one
// when the client sent none, and echoes it in the response.
func CorrelationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(correlationHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(correlationHeader, id)
		next.ServeHTTP(w, r.WithContext(attr.WithCorrelationID(r.Context(), id)))
	})
}

type claimsKey struct{}

// ClaimsFrom returns the validated token claims stored by RequireRole.
func ClaimsFrom(ctx context.Context) (*jwt.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*jwt.Claims)
	return c, ok
}

// RequireEditor rejects requests without a bearer token whose role may edit game state.
func RequireEditor(tokens jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				WriteError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := tokens.ValidateToken(raw)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}
			if !jwt.Role(claims.Role).CanEdit() {
				WriteError(w, http.StatusForbidden, "role may not edit")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}
