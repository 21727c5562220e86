package llm

import (
	"context"

	"jobtrail/pkg/models"
)

// Provider defines the interface for LLM oracle providers. Both the
// extraction oracle and the scoring oracle live behind the same
// provider so a single API key configures the whole pipeline.
type Provider interface {
	// ExtractJobInfo extracts structured job fields from an email
	ExtractJobInfo(ctx context.Context, input models.ExtractionRequest) (*models.ExtractedJob, error)

	// ScoreMatch scores an application against the candidate profile
	ScoreMatch(ctx context.Context, rec *models.ApplicationRec, profile models.CandidateProfile) (*models.MatchScore, error)

	// IsHealthy checks if the provider is healthy and available
	IsHealthy(ctx context.Context) error

	// Name returns the name of the provider
	Name() string
}
