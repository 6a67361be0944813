package driven

import (
	"context"

	"github.com/gradtrack/gradtrack-core/internal/core/domain"
)

// IntegrationStore persists Gmail integrations, one per tracker user.
type IntegrationStore interface {
	// Upsert stores the integration, replacing any existing record for the
	// same user. The write must be atomic per user so concurrent callbacks
	// cannot interleave partial state.
	Upsert(ctx context.Context, integ *domain.Integration) error

	// Get retrieves a user's integration with decrypted secrets.
	// Returns domain.ErrNotFound when the user has no integration.
	Get(ctx context.Context, userID string) (*domain.Integration, error)

	// Delete removes a user's integration. Deleting a nonexistent record
	// is not an error, so disconnects can be retried safely.
	Delete(ctx context.Context, userID string) error
}
