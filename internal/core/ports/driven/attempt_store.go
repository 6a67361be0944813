package driven

import (
	"context"
	"time"
)

// AuthorizationAttempt represents a pending OAuth authorization flow.
// Used for CSRF protection and PKCE code verifier storage.
type AuthorizationAttempt struct {
	// State is a cryptographically random string used for CSRF protection.
	State string

	// CodeVerifier is the PKCE code verifier (plain text, not hashed).
	// Its S256 challenge is sent with the auth request and the verifier
	// itself is sent during token exchange.
	CodeVerifier string

	// RedirectURI is the callback URL where the provider will redirect.
	RedirectURI string

	// CreatedAt is when the attempt was created.
	CreatedAt time.Time

	// ExpiresAt is when the attempt expires (typically 10 minutes).
	ExpiresAt time.Time
}

// AttemptStore manages pending authorization attempts.
// Attempts are single-use and expire after a short period.
type AttemptStore interface {
	// Save stores a new authorization attempt.
	Save(ctx context.Context, attempt *AuthorizationAttempt) error

	// GetAndDelete atomically retrieves and deletes the attempt for the
	// given state, ensuring single-use semantics.
	// Returns nil, nil if the attempt doesn't exist or has expired.
	GetAndDelete(ctx context.Context, state string) (*AuthorizationAttempt, error)

	// Cleanup removes expired attempts. Called periodically to clear
	// attempts that were abandoned mid-flow.
	Cleanup(ctx context.Context) error
}
