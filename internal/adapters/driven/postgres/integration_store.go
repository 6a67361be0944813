package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gradtrack/gradtrack-core/internal/core/domain"
	"github.com/gradtrack/gradtrack-core/internal/core/ports/driven"
)

// Ensure IntegrationStore implements the interface.
var _ driven.IntegrationStore = (*IntegrationStore)(nil)

// IntegrationStore implements driven.IntegrationStore using PostgreSQL.
// Token material is encrypted at rest; only the secret blob ever touches
// the database.
type IntegrationStore struct {
	db        *sql.DB
	encryptor *SecretEncryptor
}

// NewIntegrationStore creates a new PostgreSQL-backed integration store.
func NewIntegrationStore(db *sql.DB, encryptor *SecretEncryptor) *IntegrationStore {
	return &IntegrationStore{
		db:        db,
		encryptor: encryptor,
	}
}

// Upsert saves the integration, replacing any existing row for the user.
// ON CONFLICT makes the last-write-wins semantics atomic per user.
func (s *IntegrationStore) Upsert(ctx context.Context, integ *domain.Integration) error {
	secrets := integ.Secrets
	if secrets == nil {
		secrets = &domain.IntegrationSecrets{}
	}
	blob, err := s.encryptor.Encrypt(secrets)
	if err != nil {
		return fmt.Errorf("encrypt integration secrets: %w", err)
	}

	now := time.Now()
	if integ.CreatedAt.IsZero() {
		integ.CreatedAt = now
	}
	integ.UpdatedAt = now

	query := `
		INSERT INTO gmail_integrations (user_id, account_email, secret_blob, scope, token_type,
										token_expiry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			account_email = EXCLUDED.account_email,
			secret_blob = EXCLUDED.secret_blob,
			scope = EXCLUDED.scope,
			token_type = EXCLUDED.token_type,
			token_expiry = EXCLUDED.token_expiry,
			updated_at = EXCLUDED.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		integ.UserID,
		integ.AccountEmail,
		blob,
		integ.Scope,
		integ.TokenType,
		nullTime(integ.TokenExpiry),
		integ.CreatedAt,
		integ.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert gmail integration: %w", err)
	}

	return nil
}

// Get loads a user's integration, decrypting the stored token material.
func (s *IntegrationStore) Get(ctx context.Context, userID string) (*domain.Integration, error) {
	query := `
		SELECT user_id, account_email, secret_blob, scope, token_type, token_expiry, created_at, updated_at
		FROM gmail_integrations
		WHERE user_id = $1
	`

	var (
		integ  domain.Integration
		blob   []byte
		expiry sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&integ.UserID,
		&integ.AccountEmail,
		&blob,
		&integ.Scope,
		&integ.TokenType,
		&expiry,
		&integ.CreatedAt,
		&integ.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get gmail integration: %w", err)
	}

	var secrets domain.IntegrationSecrets
	if err := s.encryptor.Decrypt(blob, &secrets); err != nil {
		return nil, fmt.Errorf("decrypt integration secrets: %w", err)
	}
	integ.Secrets = &secrets

	if expiry.Valid {
		integ.TokenExpiry = &expiry.Time
	}

	return &integ, nil
}

// Delete removes a user's integration. Deleting an absent row is not an
// error.
func (s *IntegrationStore) Delete(ctx context.Context, userID string) error {
	query := `DELETE FROM gmail_integrations WHERE user_id = $1`

	_, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("delete gmail integration: %w", err)
	}

	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
