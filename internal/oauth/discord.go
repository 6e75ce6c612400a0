package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	discordUserURL = "https://discord.com/api/users/@me"
	discordCDNURL  = "https://cdn.discordapp.com"
)

// requestTimeout bounds the token exchange and the profile fetch so a slow
// provider surfaces as an error instead of a hung request.
const requestTimeout = 10 * time.Second

// DiscordProvider implements the login flow against Discord.
type DiscordProvider struct {
	config  *oauth2.Config
	client  *http.Client
	userURL string
}

// NewDiscordProvider creates a new Discord provider.
func NewDiscordProvider(cfg Config) *DiscordProvider {
	return &DiscordProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"identify"},
			Endpoint:     endpoints.Discord,
		},
		client:  &http.Client{Timeout: requestTimeout},
		userURL: discordUserURL,
	}
}

// Name returns "discord".
func (d *DiscordProvider) Name() string {
	return "discord"
}

// AuthURL generates the Discord authorization URL carrying the state token.
func (d *DiscordProvider) AuthURL(state string) string {
	return d.config.AuthCodeURL(state)
}

// Exchange exchanges the authorization code for tokens. Codes are
// single-use upstream, so a failed exchange is surfaced, never retried.
func (d *DiscordProvider) Exchange(ctx context.Context, code string) (*Tokens, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, d.client)

	token, err := d.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("discord token exchange failed: %w", err)
	}

	return &Tokens{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
	}, nil
}

// FetchIdentity fetches the authenticated user's profile from Discord.
func (d *DiscordProvider) FetchIdentity(ctx context.Context, accessToken string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", d.userURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discord profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("discord profile returned %d: %s", resp.StatusCode, body)
	}

	var discordUser struct {
		ID         string `json:"id"`
		Username   string `json:"username"`
		GlobalName string `json:"global_name"`
		Avatar     string `json:"avatar"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&discordUser); err != nil {
		return nil, fmt.Errorf("failed to decode discord profile: %w", err)
	}

	// Prefer the display name, fall back to the handle
	username := discordUser.GlobalName
	if username == "" {
		username = discordUser.Username
	}

	identity := &Identity{
		ID:       discordUser.ID,
		Username: username,
	}
	if discordUser.Avatar != "" {
		identity.AvatarURL = fmt.Sprintf("%s/avatars/%s/%s.png", discordCDNURL, discordUser.ID, discordUser.Avatar)
	}

	if err := identity.Validate(); err != nil {
		return nil, err
	}

	return identity, nil
}
