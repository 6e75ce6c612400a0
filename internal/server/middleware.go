// internal/server/middleware.go
package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/tlycrimson/bot-website-api/internal/auth"
)

type contextKey string

const (
	SessionContextKey contextKey = "session"
	RoleContextKey    contextKey = "role"
)

// sessionMiddleware guards routes that require a logged-in user. The
// frontend presents the session token minted by the callback as a bearer
// token.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.writeError(w, http.StatusUnauthorized, "no_authorization", "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			s.writeError(w, http.StatusUnauthorized, "invalid_authorization", "Invalid authorization header format")
			return
		}

		claims, err := s.authService.ValidateSessionToken(parts[1])
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "invalid_token", "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// apiKeyMiddleware guards the roster write routes. The bot and operators
// authenticate with an X-API-Key carrying a role claim.
func (s *Server) apiKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		if key == "" {
			s.writeError(w, http.StatusUnauthorized, "missing_api_key", "Missing API key")
			return
		}

		role, err := s.authService.ValidateAPIKey(key)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "invalid_api_key", "Invalid API key")
			return
		}

		ctx := context.WithValue(r.Context(), RoleContextKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionFromContext returns the verified session claims, or nil when
// the request did not pass sessionMiddleware.
func GetSessionFromContext(r *http.Request) *auth.SessionClaims {
	claims, _ := r.Context().Value(SessionContextKey).(*auth.SessionClaims)
	return claims
}

// GetRoleFromContext returns the API key role, or "" when the request did
// not pass apiKeyMiddleware.
func GetRoleFromContext(r *http.Request) string {
	role, _ := r.Context().Value(RoleContextKey).(string)
	return role
}
