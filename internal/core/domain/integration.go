package domain

import "time"

// Integration represents a user's connected Gmail account with stored
// credentials. There is at most one integration per tracker user; a repeat
// connection replaces the previous one.
type Integration struct {
	// UserID is the owning tracker user (primary key).
	UserID string `json:"user_id"`

	// AccountEmail is the connected Google account's email address,
	// resolved from the provider's userinfo endpoint.
	AccountEmail string `json:"account_email"`

	// Secrets contains decrypted token values (never persisted as-is).
	// Populated when fetching from the store, nil in summaries.
	Secrets *IntegrationSecrets `json:"-"`

	// OAuth metadata (non-secret, safe to expose)
	Scope     string     `json:"scope,omitempty"`
	TokenType string     `json:"token_type,omitempty"`
	// TokenExpiry is when the access token becomes invalid. Nil when the
	// provider did not report a lifetime.
	TokenExpiry *time.Time `json:"token_expiry,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IntegrationSecrets contains decrypted token values.
// These are encrypted before storage and decrypted on retrieval.
type IntegrationSecrets struct {
	// AccessToken may be empty: some providers omit it when only the
	// refresh token changes. An empty value is a permitted partial state.
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// IntegrationStatus is the safe view returned by status queries.
type IntegrationStatus struct {
	Connected    bool       `json:"connected"`
	AccountEmail string     `json:"account_email,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`

	// Error carries an opaque flag when the status read itself failed and
	// the response degraded to connected=false.
	Error string `json:"error,omitempty"`
}

// ToStatus converts an Integration to its status view.
func (i *Integration) ToStatus() *IntegrationStatus {
	updated := i.UpdatedAt
	return &IntegrationStatus{
		Connected:    true,
		AccountEmail: i.AccountEmail,
		UpdatedAt:    &updated,
	}
}

// RevocableToken returns the token to present to the provider's revocation
// endpoint: the refresh token when present (revoking it invalidates the whole
// grant), otherwise the access token. Empty when neither is stored.
func (i *Integration) RevocableToken() string {
	if i.Secrets == nil {
		return ""
	}
	if i.Secrets.RefreshToken != "" {
		return i.Secrets.RefreshToken
	}
	return i.Secrets.AccessToken
}
