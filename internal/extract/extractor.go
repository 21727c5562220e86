package extract

import (
	"context"

	"jobtrail/internal/config"
	"jobtrail/internal/llm"
	"jobtrail/internal/llm/processors"
	"jobtrail/internal/logging"
	"jobtrail/pkg/models"
	"jobtrail/pkg/utils"
)

// Extractor turns raw email messages into structured job fields. The
// oracle path goes through the LLM manager; when that is unavailable
// or fails, the regex heuristics take over so a sync never stalls on
// a single email.
type Extractor struct {
	llm     *llm.Manager
	cache   Cache
	cleaner *processors.EmailCleaner
	logger  logging.Logger
}

// NewExtractor creates a new job extractor
func NewExtractor(cfg *config.Config, manager *llm.Manager) *Extractor {
	return &Extractor{
		llm:     manager,
		cache:   NewCache(cfg),
		cleaner: processors.NewEmailCleaner(),
		logger:  logging.GetGlobalLogger(),
	}
}

// Extract runs a single extraction without consulting the cache
func (e *Extractor) Extract(ctx context.Context, email *models.EmailMessage) *models.ExtractedJob {
	// The snippet travels in its own field; keeping it out of the body
	// slot avoids presenting the same text twice downstream.
	body := e.cleaner.BestBody(email.Body, email.BodyHTML, "")

	if e.llm != nil && e.llm.IsHealthy() {
		job, err := e.llm.ExtractJobInfo(ctx, models.ExtractionRequest{
			Subject: email.Subject,
			Snippet: email.Snippet,
			Body:    body,
		})
		if err == nil && job != nil {
			fillSentinels(job, email.Subject, email.Snippet, body)
			return job
		}
		if err != nil {
			e.logger.Warn("Oracle extraction failed, falling back to heuristics", map[string]interface{}{
				"subject": utils.Truncate(email.Subject, 80),
				"error":   err.Error(),
			})
		}
	}

	return HeuristicParse(email.Subject, email.Snippet, body)
}

// ExtractCached runs an extraction through the cache. With force set,
// the cached entry is ignored and overwritten.
func (e *Extractor) ExtractCached(ctx context.Context, email *models.EmailMessage, force bool) *models.ExtractedJob {
	key := cacheKey(email.Subject, email.Snippet)

	if !force {
		if job, ok := e.cache.Get(ctx, key); ok {
			e.logger.Debug("Using cached extraction", map[string]interface{}{
				"subject": utils.Truncate(email.Subject, 50),
			})
			return job
		}
	}

	job := e.Extract(ctx, email)
	if err := e.cache.Set(ctx, key, job); err != nil {
		e.logger.Warn("Failed to cache extraction result", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return job
}

// ClearCache drops all cached extraction results
func (e *Extractor) ClearCache(ctx context.Context) error {
	e.logger.Info("Clearing extraction cache")
	return e.cache.Clear(ctx)
}
