package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gradtrack/gradtrack-core/internal/core/ports/driven"
)

// Ensure AttemptStore implements the interface.
var _ driven.AttemptStore = (*AttemptStore)(nil)

// DefaultAttemptTTL is the default time-to-live for authorization attempts.
const DefaultAttemptTTL = 10 * time.Minute

// AttemptStore implements driven.AttemptStore using PostgreSQL.
type AttemptStore struct {
	db  *sql.DB
	ttl time.Duration
}

// NewAttemptStore creates a new PostgreSQL-backed attempt store.
func NewAttemptStore(db *sql.DB) *AttemptStore {
	return &AttemptStore{
		db:  db,
		ttl: DefaultAttemptTTL,
	}
}

// NewAttemptStoreWithTTL creates an attempt store with custom TTL.
func NewAttemptStoreWithTTL(db *sql.DB, ttl time.Duration) *AttemptStore {
	return &AttemptStore{
		db:  db,
		ttl: ttl,
	}
}

// Save stores a new authorization attempt.
func (s *AttemptStore) Save(ctx context.Context, attempt *driven.AuthorizationAttempt) error {
	now := time.Now()
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = now
	}
	if attempt.ExpiresAt.IsZero() {
		attempt.ExpiresAt = now.Add(s.ttl)
	}

	query := `
		INSERT INTO oauth_attempts (state, code_verifier, redirect_uri, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		attempt.State,
		attempt.CodeVerifier,
		attempt.RedirectURI,
		attempt.CreatedAt,
		attempt.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("save authorization attempt: %w", err)
	}

	return nil
}

// GetAndDelete atomically retrieves and deletes the attempt.
// Uses DELETE ... RETURNING for atomic single-use semantics.
func (s *AttemptStore) GetAndDelete(ctx context.Context, state string) (*driven.AuthorizationAttempt, error) {
	query := `
		DELETE FROM oauth_attempts
		WHERE state = $1 AND expires_at > NOW()
		RETURNING state, code_verifier, redirect_uri, created_at, expires_at
	`

	var attempt driven.AuthorizationAttempt
	err := s.db.QueryRowContext(ctx, query, state).Scan(
		&attempt.State,
		&attempt.CodeVerifier,
		&attempt.RedirectURI,
		&attempt.CreatedAt,
		&attempt.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // Attempt not found or expired
	}
	if err != nil {
		return nil, fmt.Errorf("get and delete authorization attempt: %w", err)
	}

	return &attempt, nil
}

// Cleanup removes expired attempts.
func (s *AttemptStore) Cleanup(ctx context.Context) error {
	query := `DELETE FROM oauth_attempts WHERE expires_at < NOW()`

	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("cleanup authorization attempts: %w", err)
	}

	return nil
}
