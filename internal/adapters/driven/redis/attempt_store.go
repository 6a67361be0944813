package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gradtrack/gradtrack-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AttemptStore = (*AttemptStore)(nil)

// attemptPrefix namespaces attempt keys in Redis
const attemptPrefix = "oauth:attempt:"

// DefaultAttemptTTL is the default time-to-live for authorization attempts.
const DefaultAttemptTTL = 10 * time.Minute

// AttemptStore implements driven.AttemptStore using Redis.
// Attempts use Redis TTL for automatic expiration, and GETDEL gives the
// atomic single-use consumption of a state.
type AttemptStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAttemptStore creates a new Redis-backed AttemptStore
func NewAttemptStore(client *redis.Client) *AttemptStore {
	return &AttemptStore{client: client, ttl: DefaultAttemptTTL}
}

// NewAttemptStoreWithTTL creates an attempt store with custom TTL.
func NewAttemptStoreWithTTL(client *redis.Client, ttl time.Duration) *AttemptStore {
	return &AttemptStore{client: client, ttl: ttl}
}

// Save stores an attempt with TTL based on ExpiresAt
func (s *AttemptStore) Save(ctx context.Context, attempt *driven.AuthorizationAttempt) error {
	now := time.Now()
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = now
	}
	if attempt.ExpiresAt.IsZero() {
		attempt.ExpiresAt = now.Add(s.ttl)
	}

	ttl := time.Until(attempt.ExpiresAt)
	if ttl <= 0 {
		// Attempt already expired, don't save
		return nil
	}

	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt: %w", err)
	}

	if err := s.client.Set(ctx, attemptPrefix+attempt.State, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save attempt: %w", err)
	}

	return nil
}

// GetAndDelete atomically retrieves and deletes the attempt via GETDEL.
// Returns nil for unknown or expired states.
func (s *AttemptStore) GetAndDelete(ctx context.Context, state string) (*driven.AuthorizationAttempt, error) {
	data, err := s.client.GetDel(ctx, attemptPrefix+state).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	var attempt driven.AuthorizationAttempt
	if err := json.Unmarshal(data, &attempt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attempt: %w", err)
	}

	return &attempt, nil
}

// Cleanup is a no-op: Redis TTLs expire attempts automatically.
func (s *AttemptStore) Cleanup(ctx context.Context) error {
	return nil
}
