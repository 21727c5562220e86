package mail

import (
	"context"

	"jobtrail/pkg/models"
)

// Provider abstracts the mailbox backend used for ingestion. The Gmail
// implementation is the only production backend; tests supply fakes.
type Provider interface {
	// Search returns the ids of messages matching the given query,
	// bounded by max results.
	Search(ctx context.Context, query string, max int64) ([]string, error)

	// Fetch retrieves the full message for the given id.
	Fetch(ctx context.Context, id string) (*models.EmailMessage, error)

	// Name returns the provider name
	Name() string
}
