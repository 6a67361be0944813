package driven

import "context"

// Identity is the authenticated tracker user resolved from a credential.
type Identity struct {
	UserID string
	Email  string
}

// IdentityVerifier resolves request credentials issued by the external
// identity provider. The tracker never authenticates its own users; it only
// validates the provider's tokens.
type IdentityVerifier interface {
	// Verify validates the presented credential and returns the caller's
	// identity. Returns domain.ErrUnauthorized, domain.ErrTokenExpired or
	// domain.ErrTokenInvalid on failure.
	Verify(ctx context.Context, credential string) (*Identity, error)
}
