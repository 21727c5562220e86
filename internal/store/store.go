package store

import (
	"context"

	"jobtrail/pkg/models"
)

// Store persists application record sets between syncs so a restart
// does not lose merged history.
type Store interface {
	// Load returns the saved record set for a user, or an empty slice
	// when nothing was saved yet.
	Load(ctx context.Context, userID string) ([]*models.ApplicationRec, error)

	// Save replaces the saved record set for a user
	Save(ctx context.Context, userID string, recs []*models.ApplicationRec) error

	// IsHealthy checks the backing connection
	IsHealthy(ctx context.Context) error

	// Close releases the backing connection
	Close() error
}
