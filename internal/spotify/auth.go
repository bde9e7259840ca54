package spotify

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"trackshift/internal/shared"
)

// OAuthConfig builds the [oauth2.Config] for one account's credentials.
func OAuthConfig(account shared.AccountConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     account.ClientID,
		ClientSecret: account.ClientSecret,
		RedirectURL:  account.RedirectURI,
		Scopes:       strings.Fields(account.Scope),
		Endpoint: oauth2.Endpoint{
			AuthURL:  AuthURL,
			TokenURL: TokenURL,
		},
	}
}

// AuthCodeURL builds the authorization URL. show_dialog forces the consent
// screen so the user can pick which account to log into; Spotify otherwise
// silently reuses the last session.
func AuthCodeURL(cfg *oauth2.Config, state string) string {
	return cfg.AuthCodeURL(state, oauth2.SetAuthURLParam("show_dialog", "true"))
}

// Exchange swaps an authorization code for tokens. Only the refresh token is
// worth persisting; access tokens are ephemeral.
func Exchange(ctx context.Context, cfg *oauth2.Config, code string) (*oauth2.Token, error) {
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return token, nil
}

// Refresh exchanges a stored refresh token for a fresh access token.
func Refresh(ctx context.Context, cfg *oauth2.Config, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	src := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	return token, nil
}
