// Package oauth implements the third-party login flow: anti-forgery state
// tokens, the authorization-code exchange, and the redirect origin policy.
package oauth

import (
	"context"
	"errors"
)

var (
	ErrUserIDRequired   = errors.New("provider user ID is required")
	ErrUsernameRequired = errors.New("username is required from provider")
)

// Provider defines the interface to the external identity provider.
type Provider interface {
	// Name returns the provider identifier (e.g., "discord").
	Name() string

	// AuthURL generates the authorization URL for initiating the login flow.
	AuthURL(state string) string

	// Exchange exchanges an authorization code for tokens.
	Exchange(ctx context.Context, code string) (*Tokens, error)

	// FetchIdentity fetches the authenticated user's profile using the
	// access token.
	FetchIdentity(ctx context.Context, accessToken string) (*Identity, error)
}

// Tokens holds the tokens returned by the provider's token endpoint.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// Identity is the provider's view of the logged-in user. It is fetched per
// callback and never persisted by the login flow.
type Identity struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Validate checks that required fields are present.
func (i *Identity) Validate() error {
	if i.ID == "" {
		return ErrUserIDRequired
	}
	if i.Username == "" {
		return ErrUsernameRequired
	}
	return nil
}

// Config holds the provider client credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string // this API's callback URL, registered with the provider
}
