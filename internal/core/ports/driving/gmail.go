package driving

import (
	"context"

	"github.com/gradtrack/gradtrack-core/internal/core/domain"
)

// GmailService manages the Gmail account-linking lifecycle for tracker
// users: starting the authorization flow, handling the provider callback,
// reporting status, refreshing access tokens and disconnecting.
type GmailService interface {
	// Connect starts an authorization flow for the given user.
	// Returns the consent-screen URL to redirect the browser to. The
	// generated state is stored for CSRF validation during the callback.
	Connect(ctx context.Context, req ConnectRequest) (*ConnectResponse, error)

	// Callback handles the provider redirect. It validates state,
	// resolves the caller, exchanges the code for tokens, resolves the
	// connected account's email and persists the integration.
	Callback(ctx context.Context, req CallbackRequest) (*CallbackResponse, error)

	// Status reports whether the user has a connected integration.
	// Store read failures degrade to a disconnected status with an error
	// flag instead of failing the call.
	Status(ctx context.Context, userID string) *domain.IntegrationStatus

	// AccessToken returns a usable access token for the user's
	// integration, refreshing and persisting it first when the stored one
	// is stale.
	AccessToken(ctx context.Context, userID string) (string, error)

	// Disconnect revokes the remote token best-effort and deletes the
	// local integration. Disconnecting when nothing is connected is a
	// success.
	Disconnect(ctx context.Context, userID string) error
}

// ConnectRequest starts an authorization flow.
// @Description Request to start the Gmail authorization flow
type ConnectRequest struct {
	// UserID is the authenticated tracker user starting the flow.
	UserID string `json:"-"`
}

// ConnectResponse contains the authorization URL and state.
// @Description Response containing the Gmail consent URL
type ConnectResponse struct {
	// URL is the consent-screen URL to redirect the user to.
	URL string `json:"url" example:"https://accounts.google.com/o/oauth2/v2/auth?client_id=..."`

	// State is the CSRF token that will be returned in the callback.
	State string `json:"state" example:"abc123xyz"`

	// ExpiresAt is when the pending attempt expires (typically 10 minutes).
	ExpiresAt string `json:"expires_at" example:"2025-06-01T10:10:00Z"`
}

// CallbackRequest carries the provider redirect parameters.
// @Description OAuth callback parameters from the provider redirect
type CallbackRequest struct {
	// Code is the authorization code from the provider.
	Code string `json:"code" example:"4/0AbCdEf"`

	// State is the CSRF token returned by the provider.
	State string `json:"state" example:"abc123xyz"`

	// Error is set when the provider declined the consent request.
	Error string `json:"error,omitempty" example:"access_denied"`

	// Credential is the caller's identity-provider credential, taken from
	// the session cookie or bearer token on the callback request.
	Credential string `json:"-"`
}

// CallbackResponse reports a completed connection.
// @Description Response after a successful Gmail connection
type CallbackResponse struct {
	// AccountEmail is the connected Google account.
	AccountEmail string `json:"account_email" example:"student@gmail.com"`
}

// OAuthError represents an OAuth flow failure with an opaque reason code.
// The code is safe to surface to the user; raw provider or storage error
// text never is.
type OAuthError struct {
	Code        string `json:"error" example:"invalid_state"`
	Description string `json:"error_description" example:"The state parameter is invalid or expired"`
}

func (e *OAuthError) Error() string {
	if e.Description != "" {
		return e.Code + ": " + e.Description
	}
	return e.Code
}

// Common OAuth flow errors
var (
	ErrOAuthInvalidState    = &OAuthError{Code: "invalid_state", Description: "The state parameter is invalid, expired or already used"}
	ErrOAuthUnauthenticated = &OAuthError{Code: "unauthenticated", Description: "The caller has no valid identity"}
	ErrOAuthExchangeFailed  = &OAuthError{Code: "exchange_failed", Description: "Failed to exchange the authorization code for tokens"}
	ErrOAuthNoEmail         = &OAuthError{Code: "no_email_returned", Description: "The provider did not return an account email"}
	ErrOAuthPersistFailed   = &OAuthError{Code: "persist_failed", Description: "Failed to store the integration"}
)
