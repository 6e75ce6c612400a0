// internal/server/oauth_handlers.go
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/tlycrimson/bot-website-api/internal/log"
	"github.com/tlycrimson/bot-website-api/internal/oauth"
)

// handleLogin starts a login attempt.
// GET /auth/login?next=<origin>
//
// The optional next origin is only sanitized here, not checked against the
// allow-list: the authoritative check happens at callback time, against the
// configuration in force when the redirect is actually issued.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	next := s.origins.Sanitize(r.URL.Query().Get("next"))

	state, err := s.states.Create(r.Context(), next)
	if err != nil {
		log.Error("failed to create login state", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "state_error", "Failed to start login")
		return
	}

	json.NewEncoder(w).Encode(map[string]string{
		"auth_url": s.provider.AuthURL(state),
	})
}

// handleCallback finishes a login attempt.
// GET /auth/callback?code=...&state=...[&format=json]
//
// The steps run strictly in order and any failure short-circuits: no
// credential is minted unless the state was consumed and the provider
// vouched for the identity.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	code := query.Get("code")
	state := query.Get("state")
	wantJSON := query.Get("format") == "json"

	// The provider reports a denied or failed authorization via the error
	// parameter instead of a code.
	if errParam := query.Get("error"); errParam != "" {
		log.Warn("provider returned error on callback", "error", errParam)
		s.writeError(w, http.StatusBadRequest, "provider_"+errParam, query.Get("error_description"))
		return
	}

	if code == "" || state == "" {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "code and state parameters are required")
		return
	}

	// Anti-forgery checkpoint. Unknown, expired and already-used states all
	// fail the same way; nothing beyond this point runs with an unverified
	// state.
	nextOrigin, err := s.states.Consume(r.Context(), state)
	if err != nil {
		if !errors.Is(err, oauth.ErrStateNotFound) {
			log.Error("state store lookup failed", "error", err.Error())
		}
		s.writeError(w, http.StatusBadRequest, "invalid_state", "Login state is invalid, expired, or already used")
		return
	}

	// Codes are single-use upstream: a failed exchange is reported, never
	// retried.
	tokens, err := s.provider.Exchange(r.Context(), code)
	if err != nil {
		log.Warn("token exchange failed", "provider", s.provider.Name(), "error", err.Error())
		s.writeError(w, http.StatusBadGateway, "exchange_failed", "Could not exchange authorization code")
		return
	}

	identity, err := s.provider.FetchIdentity(r.Context(), tokens.AccessToken)
	if err != nil {
		log.Warn("identity fetch failed", "provider", s.provider.Name(), "error", err.Error())
		s.writeError(w, http.StatusBadGateway, "profile_failed", "Could not fetch user profile")
		return
	}

	token, err := s.authService.GenerateSessionToken(identity.ID, identity.Username)
	if err != nil {
		log.Error("failed to sign session token", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "token_error", "Failed to issue session token")
		return
	}

	log.Info("login completed",
		"provider", s.provider.Name(),
		"user_id", identity.ID,
		"json", wantJSON,
	)

	// Single exit fan-out: JSON when the frontend drives the callback
	// itself, a browser redirect otherwise.
	if wantJSON {
		json.NewEncoder(w).Encode(map[string]any{
			"token": token,
			"user":  identity,
		})
		return
	}

	origin, err := s.origins.Resolve(nextOrigin)
	if err != nil {
		// Never redirect to an origin the allow-list did not clear; a
		// rendered error beats an open redirect.
		log.Warn("redirect origin rejected", "origin", nextOrigin)
		s.writeError(w, http.StatusBadRequest, "origin_not_allowed", "Redirect origin is not allowed")
		return
	}

	http.Redirect(w, r, origin+"/auth/redirect?token="+url.QueryEscape(token), http.StatusFound)
}
