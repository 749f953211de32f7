package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/projectpulse/pulseauth/token"
	"github.com/projectpulse/pulseauth/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyClaims stores the verified token claims
	ContextKeyClaims ContextKey = "claims"
)

// ClaimsFromContext returns the verified claims injected by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyClaims).(*token.Claims)
	return claims, ok
}

// BearerToken extracts the bearer value from the Authorization header.
// A missing or malformed header yields an empty string, which the
// verification path treats as unauthenticated.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth is middleware that validates a Bearer access token and
// injects the verified claims into the request context. Every failure
// collapses to the same 401; the reason is internal only.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenString := BearerToken(r)
			if tokenString == "" {
				writeJSONError(w, http.StatusUnauthorized, "Missing or malformed Authorization header")
				return
			}

			claims, err := s.sessions.VerifyToken(tokenString)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireRole is middleware that restricts a route to the given roles.
// Must be chained after RequireAuth so claims are present.
func (s *Server) RequireRole(roles ...users.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next(w, r)
					return
				}
			}
			writeJSONError(w, http.StatusForbidden, "Forbidden")
		}
	}
}
