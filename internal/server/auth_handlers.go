// internal/server/auth_handlers.go
package server

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, errCode, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// handleMe returns the claims of the presented session token, letting the
// frontend restore a session without re-running the login flow.
// GET /auth/me
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := GetSessionFromContext(r)
	if claims == nil {
		s.writeError(w, http.StatusUnauthorized, "unauthorized", "Session not found in context")
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"id":         claims.UserID,
		"username":   claims.Username,
		"issued_at":  claims.IssuedAt,
		"expires_at": claims.ExpiresAt,
	})
}
