package driven

import (
	"context"
	"time"
)

// OAuthToken is a token set returned by the provider's token endpoint.
type OAuthToken struct {
	// AccessToken may be empty when the provider only rotates the refresh
	// token.
	AccessToken  string
	RefreshToken string
	TokenType    string
	Scope        string

	// Expiry is when the access token becomes invalid. Zero when the
	// provider did not report a lifetime.
	Expiry time.Time
}

// OAuthUserInfo identifies the provider account a token belongs to.
type OAuthUserInfo struct {
	Subject string
	Email   string
	Name    string
}

// OAuthClient performs the provider-side operations of the authorization
// code flow. All methods that reach the network apply a finite timeout.
type OAuthClient interface {
	// AuthCodeURL builds the consent-screen URL for the given state and
	// PKCE challenge. Offline access and forced re-consent are always
	// requested so a refresh token is issued on repeat connections.
	AuthCodeURL(state, codeChallenge string) string

	// Exchange trades an authorization code and its PKCE verifier for
	// tokens.
	Exchange(ctx context.Context, code, codeVerifier string) (*OAuthToken, error)

	// Refresh obtains a new access token from a refresh token.
	Refresh(ctx context.Context, refreshToken string) (*OAuthToken, error)

	// UserInfo resolves the account behind an access token.
	UserInfo(ctx context.Context, accessToken string) (*OAuthUserInfo, error)

	// Revoke invalidates a token at the provider.
	Revoke(ctx context.Context, token string) error
}
