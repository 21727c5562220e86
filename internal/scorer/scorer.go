package scorer

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"jobtrail/internal/config"
	"jobtrail/internal/llm"
	"jobtrail/internal/logging"
	"jobtrail/pkg/models"
)

// Scorer attaches match scores to application records via the LLM
// oracle. Scoring never fails a sync: every error path resolves to a
// defined default score.
type Scorer struct {
	llm      *llm.Manager
	config   *config.Config
	logger   logging.Logger
	limiter  *rate.Limiter
	profile  models.CandidateProfile
	poolSize int
}

// NewScorer creates a new match scorer
func NewScorer(cfg *config.Config, manager *llm.Manager) *Scorer {
	poolSize := cfg.Scorer.PoolSize
	if poolSize <= 0 {
		poolSize = 4
	}

	// Oracle calls are rate limited per minute across the whole pool
	limit := rate.Limit(float64(cfg.Scorer.RateLimit) / 60.0)
	if cfg.Scorer.RateLimit <= 0 {
		limit = rate.Inf
	}

	return &Scorer{
		llm:     manager,
		config:  cfg,
		logger:  logging.GetGlobalLogger(),
		limiter: rate.NewLimiter(limit, poolSize),
		profile: models.CandidateProfile{
			Resume: cfg.Scorer.Resume,
			Skills: cfg.Scorer.Skills,
		},
		poolSize: poolSize,
	}
}

// Score computes the match score for one record. Records that already
// carry a score are skipped unless force is set. Never returns an
// error: oracle failures produce the neutral default.
func (s *Scorer) Score(ctx context.Context, rec *models.ApplicationRec, force bool) *models.MatchScore {
	if rec.MatchScore != nil && !force {
		return rec.MatchScore
	}

	if s.llm == nil || !s.llm.IsHealthy() {
		return notConfiguredScore()
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return defaultScore()
	}

	score, err := s.llm.ScoreMatch(ctx, rec, s.profile)
	if err != nil {
		s.logger.Warn("Match scoring failed, using default score", map[string]interface{}{
			"application": rec.ID,
			"error":       err.Error(),
		})
		return defaultScore()
	}

	return score
}

// ScoreAll scores a batch of records with bounded concurrency. Each
// goroutine reads its own record and writes its own result slot, so no
// locking is needed beyond the semaphore.
func (s *Scorer) ScoreAll(ctx context.Context, recs []*models.ApplicationRec, force bool, onProgress func(done, total int)) {
	if len(recs) == 0 {
		return
	}

	sem := make(chan struct{}, s.poolSize)
	var wg sync.WaitGroup
	var done int
	var mu sync.Mutex

	for _, rec := range recs {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(rec *models.ApplicationRec) {
			defer wg.Done()
			defer func() { <-sem }()

			rec.MatchScore = s.Score(ctx, rec, force)

			if onProgress != nil {
				mu.Lock()
				done++
				onProgress(done, len(recs))
				mu.Unlock()
			}
		}(rec)
	}

	wg.Wait()
}

// defaultScore is the neutral score used when the oracle call fails
func defaultScore() *models.MatchScore {
	return &models.MatchScore{
		Overall:      50,
		Skills:       50,
		Experience:   50,
		Location:     50,
		Salary:       50,
		Reasons:      []string{"Unable to calculate match score"},
		Suggestions:  []string{"Check the LLM API key configuration and try again"},
		CalculatedAt: time.Now().UTC(),
	}
}

// notConfiguredScore marks records scored without an oracle available
func notConfiguredScore() *models.MatchScore {
	return &models.MatchScore{
		Reasons:      []string{"LLM API key not configured"},
		Suggestions:  []string{"Configure an LLM API key to enable match scoring"},
		CalculatedAt: time.Now().UTC(),
	}
}
