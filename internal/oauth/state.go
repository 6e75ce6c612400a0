package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// ErrStateNotFound is returned when a state token is unknown, expired, or
// already consumed. The three cases are deliberately indistinguishable so a
// caller probing tokens learns nothing about why one failed.
var ErrStateNotFound = errors.New("login state not found or expired")

// StateStore tracks pending login attempts between the login request and
// the provider callback. Entries live for a fixed TTL and are consumed at
// most once.
type StateStore interface {
	// Create stores nextOrigin under a fresh random state token and
	// returns the token. nextOrigin may be empty.
	Create(ctx context.Context, nextOrigin string) (string, error)

	// Consume atomically looks up and removes the entry for state,
	// returning the nextOrigin recorded at login time. Concurrent calls
	// with the same token race; at most one succeeds, the rest get
	// ErrStateNotFound.
	Consume(ctx context.Context, state string) (string, error)

	// Close releases any backing resources.
	Close() error
}

// GenerateStateToken generates a cryptographically random state token for
// CSRF protection. 32 bytes gives 43 URL-safe characters.
func GenerateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
