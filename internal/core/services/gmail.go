package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gradtrack/gradtrack-core/internal/core/domain"
	"github.com/gradtrack/gradtrack-core/internal/core/ports/driven"
	"github.com/gradtrack/gradtrack-core/internal/core/ports/driving"
)

// Ensure gmailService implements GmailService
var _ driving.GmailService = (*gmailService)(nil)

const (
	// attemptTTL is how long a pending authorization attempt stays valid.
	attemptTTL = 10 * time.Minute

	// refreshLeeway is the remaining lifetime below which a stored access
	// token is refreshed instead of returned as-is.
	refreshLeeway = 2 * time.Minute
)

// GmailServiceConfig holds configuration for the Gmail service.
type GmailServiceConfig struct {
	// AttemptStore manages pending authorization attempts.
	AttemptStore driven.AttemptStore

	// IntegrationStore persists connected integrations.
	IntegrationStore driven.IntegrationStore

	// Identity validates credentials issued by the external identity
	// provider.
	Identity driven.IdentityVerifier

	// OAuthClient talks to the provider's OAuth endpoints.
	OAuthClient driven.OAuthClient

	// RedirectURI is the callback URL registered with the provider.
	RedirectURI string

	// Logger receives flow diagnostics. Failure details are logged here
	// and never surfaced to callers.
	Logger *slog.Logger
}

// gmailService implements the GmailService interface.
type gmailService struct {
	attempts     driven.AttemptStore
	integrations driven.IntegrationStore
	identity     driven.IdentityVerifier
	oauth        driven.OAuthClient
	redirectURI  string
	logger       *slog.Logger
}

// NewGmailService creates a new Gmail integration service.
func NewGmailService(cfg GmailServiceConfig) driving.GmailService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &gmailService{
		attempts:     cfg.AttemptStore,
		integrations: cfg.IntegrationStore,
		identity:     cfg.Identity,
		oauth:        cfg.OAuthClient,
		redirectURI:  cfg.RedirectURI,
		logger:       logger,
	}
}

// Connect starts an authorization flow: it generates the state token and
// PKCE credentials, stores the attempt and returns the consent URL.
func (s *gmailService) Connect(ctx context.Context, req driving.ConnectRequest) (*driving.ConnectResponse, error) {
	if req.UserID == "" {
		return nil, domain.ErrUnauthorized
	}

	state, err := generateState()
	if err != nil {
		return nil, err
	}
	verifier, err := generateVerifier()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expiresAt := now.Add(attemptTTL)
	attempt := &driven.AuthorizationAttempt{
		State:        state,
		CodeVerifier: verifier,
		RedirectURI:  s.redirectURI,
		CreatedAt:    now,
		ExpiresAt:    expiresAt,
	}
	if err := s.attempts.Save(ctx, attempt); err != nil {
		return nil, fmt.Errorf("save authorization attempt: %w", err)
	}

	return &driving.ConnectResponse{
		URL:       s.oauth.AuthCodeURL(state, codeChallengeS256(verifier)),
		State:     state,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, nil
}

// Callback runs the callback gates in order; the first failing gate
// short-circuits the rest. No gate is retried: a failed flow must be
// re-initiated from Connect.
func (s *gmailService) Callback(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResponse, error) {
	// Provider-reported errors end the flow before any verification.
	if req.Error != "" {
		return nil, &driving.OAuthError{Code: req.Error, Description: "the provider declined the consent request"}
	}

	// State verification. The stored attempt is consumed here no matter
	// how the remaining gates turn out, so a replayed callback always
	// fails this gate. State validity is evaluated before caller
	// identity, matching the original flow's ordering.
	if req.State == "" || req.Code == "" {
		return nil, driving.ErrOAuthInvalidState
	}
	attempt, err := s.attempts.GetAndDelete(ctx, req.State)
	if err != nil {
		s.logger.Error("attempt lookup failed", "error", err)
		return nil, driving.ErrOAuthInvalidState
	}
	if attempt == nil {
		return nil, driving.ErrOAuthInvalidState
	}

	identity, err := s.identity.Verify(ctx, req.Credential)
	if err != nil {
		return nil, driving.ErrOAuthUnauthenticated
	}

	token, err := s.oauth.Exchange(ctx, req.Code, attempt.CodeVerifier)
	if err != nil {
		s.logger.Error("token exchange failed", "user_id", identity.UserID, "error", err)
		return nil, driving.ErrOAuthExchangeFailed
	}

	// Resolving the account email needs an access token; an exchange
	// response without one cannot identify the account.
	if token.AccessToken == "" {
		return nil, driving.ErrOAuthNoEmail
	}
	info, err := s.oauth.UserInfo(ctx, token.AccessToken)
	if err != nil {
		s.logger.Error("userinfo lookup failed", "user_id", identity.UserID, "error", err)
		return nil, driving.ErrOAuthNoEmail
	}
	if info.Email == "" {
		return nil, driving.ErrOAuthNoEmail
	}

	now := time.Now()
	integ := &domain.Integration{
		UserID:       identity.UserID,
		AccountEmail: info.Email,
		Secrets: &domain.IntegrationSecrets{
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
		},
		Scope:       token.Scope,
		TokenType:   token.TokenType,
		TokenExpiry: expiryPtr(token.Expiry),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.integrations.Upsert(ctx, integ); err != nil {
		s.logger.Error("integration upsert failed", "user_id", identity.UserID, "error", err)
		return nil, driving.ErrOAuthPersistFailed
	}

	return &driving.CallbackResponse{AccountEmail: info.Email}, nil
}

// Status reports the user's integration state. Read failures degrade to a
// disconnected status with an error flag rather than failing the call.
func (s *gmailService) Status(ctx context.Context, userID string) *domain.IntegrationStatus {
	if userID == "" {
		return &domain.IntegrationStatus{Connected: false}
	}

	integ, err := s.integrations.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.IntegrationStatus{Connected: false}
	}
	if err != nil {
		s.logger.Error("integration read failed", "user_id", userID, "error", err)
		return &domain.IntegrationStatus{Connected: false, Error: "status_unavailable"}
	}
	return integ.ToStatus()
}

// AccessToken returns a usable access token, refreshing it first when the
// stored one has less than refreshLeeway of validity left.
func (s *gmailService) AccessToken(ctx context.Context, userID string) (string, error) {
	integ, err := s.integrations.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	if integ.Secrets != nil && integ.Secrets.AccessToken != "" {
		if integ.TokenExpiry == nil || time.Until(*integ.TokenExpiry) > refreshLeeway {
			return integ.Secrets.AccessToken, nil
		}
	}

	if integ.Secrets == nil || integ.Secrets.RefreshToken == "" {
		return "", domain.ErrNoRefreshToken
	}
	token, err := s.oauth.Refresh(ctx, integ.Secrets.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("refresh access token: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("refresh access token: provider returned no access token")
	}

	integ.Secrets.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		// Provider rotated the refresh token.
		integ.Secrets.RefreshToken = token.RefreshToken
	}
	if token.Scope != "" {
		integ.Scope = token.Scope
	}
	if token.TokenType != "" {
		integ.TokenType = token.TokenType
	}
	integ.TokenExpiry = expiryPtr(token.Expiry)
	integ.UpdatedAt = time.Now()
	if err := s.integrations.Upsert(ctx, integ); err != nil {
		// The fresh token is still usable; losing the rotated value only
		// forces an earlier re-refresh.
		s.logger.Warn("persisting refreshed token failed", "user_id", userID, "error", err)
	}

	return token.AccessToken, nil
}

// Disconnect revokes the remote token best-effort and deletes the local
// integration. The local record is the source of truth for "connected", so
// revocation failures never block deletion.
func (s *gmailService) Disconnect(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	integ, err := s.integrations.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		// Nothing to undo.
		return nil
	}

	var token string
	if err != nil {
		s.logger.Warn("integration read failed, skipping revocation", "user_id", userID, "error", err)
	} else {
		token = integ.RevocableToken()
	}

	if token != "" {
		if err := s.oauth.Revoke(ctx, token); err != nil {
			s.logger.Warn("token revocation failed", "user_id", userID, "error", err)
		}
	}

	if err := s.integrations.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete integration: %w", err)
	}
	return nil
}

func expiryPtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
