package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jobtrail/internal/config"
	"jobtrail/internal/extract"
	"jobtrail/internal/logging"
	"jobtrail/internal/mail"
	"jobtrail/internal/scorer"
	"jobtrail/internal/store"
	"jobtrail/internal/tracker"
	"jobtrail/pkg/models"
	"jobtrail/pkg/utils"
)

// Progress is a snapshot of the current sync phase
type Progress struct {
	Message string  `json:"message"`
	Percent float64 `json:"percent"`
}

// RunSummary describes the outcome of one sync run
type RunSummary struct {
	Applications []*models.ApplicationRec
	Messages     int
	Processed    int
	Failed       int
	Partial      bool
	Duration     time.Duration
}

// Syncer orchestrates a sync run: search, fetch/merge, scoring, then
// persistence. One run at a time; overlapping triggers are rejected
// with a busy signal rather than queued.
type Syncer struct {
	config     *config.Config
	newSession func(token string) mail.Provider
	extractor  *extract.Extractor
	merger     *tracker.Merger
	scorer     *scorer.Scorer
	store      store.Store
	logger     logging.Logger

	mu          sync.Mutex
	syncing     bool
	progress    Progress
	lastRunAt   *time.Time
	lastCount   int
	lastFailed  int
	lastPartial bool

	stopAuto chan struct{}
	now      func() time.Time
}

// NewSyncer creates a new sync orchestrator
func NewSyncer(cfg *config.Config, gmail *mail.GmailProvider, extractor *extract.Extractor, sc *scorer.Scorer, st store.Store) *Syncer {
	return &Syncer{
		config: cfg,
		newSession: func(token string) mail.Provider {
			return gmail.NewSession(token)
		},
		extractor: extractor,
		merger:    tracker.NewMerger(),
		scorer:    sc,
		store:     st,
		logger:    logging.GetGlobalLogger(),
		now:       time.Now,
	}
}

// TryBegin attempts to claim the sync slot. Returns false when a sync
// is already running.
func (s *Syncer) TryBegin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.syncing {
		return false
	}
	s.syncing = true
	s.progress = Progress{Message: "Starting sync...", Percent: 0}
	return true
}

// end releases the sync slot and records the run outcome
func (s *Syncer) end(summary *RunSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncing = false
	now := s.now()
	s.lastRunAt = &now
	if summary != nil {
		s.lastCount = len(summary.Applications)
		s.lastFailed = summary.Failed
		s.lastPartial = summary.Partial
	}
}

// IsSyncing reports whether a sync run is in flight
func (s *Syncer) IsSyncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncing
}

// Status returns the current busy state and last-run outcome
func (s *Syncer) Status() models.SyncStatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SyncStatusResponse{
		Syncing:     s.syncing,
		Progress:    s.progress.Message,
		Percent:     s.progress.Percent,
		LastRunAt:   s.lastRunAt,
		LastCount:   s.lastCount,
		LastFailed:  s.lastFailed,
		LastPartial: s.lastPartial,
	}
}

func (s *Syncer) setProgress(message string, percent float64) {
	s.mu.Lock()
	s.progress = Progress{Message: message, Percent: percent}
	s.mu.Unlock()
}

// Run executes one full sync. The caller must have claimed the slot
// with TryBegin; Run releases it on return.
func (s *Syncer) Run(ctx context.Context, req *models.SyncRequest) (summary *RunSummary, err error) {
	start := s.now()
	defer func() { s.end(summary) }()

	lookback := req.LookbackDays
	if lookback <= 0 {
		lookback = s.config.Sync.LookbackDays
	}
	userID := req.UserID
	if userID == "" {
		userID = s.config.Gmail.UserID
	}

	s.logger.Info("Starting sync run", map[string]interface{}{
		"user_id":       userID,
		"lookback_days": lookback,
		"force_refresh": req.ForceRefresh,
	})

	working := make(map[string]*models.ApplicationRec)
	if s.store != nil {
		saved, loadErr := s.store.Load(ctx, userID)
		if loadErr != nil {
			s.logger.Warn("Failed to load saved applications, starting fresh", map[string]interface{}{
				"error": loadErr.Error(),
			})
		} else {
			for _, rec := range saved {
				working[rec.ID] = rec
			}
		}
	}

	session := s.newSession(req.Token)

	// Phase 1: search (0-30%)
	ids, partial := s.searchPhase(ctx, session, lookback)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Phase 2: fetch and merge (30-90%)
	processed, failed := s.processPhase(ctx, session, ids, req.ForceRefresh, working)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	recs := tracker.Collect(working)
	tracker.StampResponseRate(recs)

	// Phase 3: match scoring (90-100%)
	s.setProgress("Calculating match scores...", 0.9)
	if s.scorer != nil {
		s.scorer.ScoreAll(ctx, recs, req.ForceRefresh, func(done, total int) {
			s.setProgress(fmt.Sprintf("Calculating match scores... (%d/%d)", done, total), 0.9+0.1*float64(done)/float64(total))
		})
	}

	if s.store != nil {
		if saveErr := s.store.Save(ctx, userID, recs); saveErr != nil {
			s.logger.Error("Failed to persist applications", map[string]interface{}{
				"error": saveErr.Error(),
			})
			partial = true
		}
	}

	s.setProgress("Sync complete", 1.0)

	summary = &RunSummary{
		Applications: recs,
		Messages:     len(ids),
		Processed:    processed,
		Failed:       failed,
		Partial:      partial || failed > 0,
		Duration:     s.now().Sub(start),
	}

	s.logger.Info("Sync run completed", map[string]interface{}{
		"applications": len(recs),
		"messages":     len(ids),
		"processed":    processed,
		"failed":       failed,
		"duration":     utils.FormatDuration(summary.Duration),
	})

	return summary, nil
}

// searchPhase runs every query and returns the deduplicated message
// ids in first-seen order. Individual query failures mark the run
// partial but never abort it.
func (s *Syncer) searchPhase(ctx context.Context, session mail.Provider, lookbackDays int) (ids []string, partial bool) {
	queries := BuildQueries(lookbackDays, s.now())
	seen := make(map[string]bool)

	for i, query := range queries {
		if ctx.Err() != nil {
			return ids, true
		}

		s.setProgress(fmt.Sprintf("Searching emails... (%d/%d)", i+1, len(queries)), float64(i)/float64(len(queries))*0.3)

		found, err := session.Search(ctx, query, s.config.Sync.MaxResults)
		if err != nil {
			s.logger.Warn("Search query failed", map[string]interface{}{
				"query": query,
				"error": err.Error(),
			})
			partial = true
			continue
		}

		for _, id := range found {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	return ids, partial
}

// processPhase fetches each message, classifies and extracts it, and
// merges it into the working map. Per-message failures are skipped so
// one bad email never sinks the run.
func (s *Syncer) processPhase(ctx context.Context, session mail.Provider, ids []string, force bool, working map[string]*models.ApplicationRec) (processed, failed int) {
	for i, id := range ids {
		if ctx.Err() != nil {
			return processed, failed
		}

		s.setProgress(fmt.Sprintf("Processing emails... (%d/%d)", i+1, len(ids)), 0.3+float64(i)/float64(len(ids))*0.6)

		email, err := session.Fetch(ctx, id)
		if err != nil {
			s.logger.Warn("Failed to fetch message, skipping", map[string]interface{}{
				"message_id": id,
				"error":      err.Error(),
			})
			failed++
			continue
		}

		status := tracker.Classify(email.Subject, email.Snippet, email.Body)
		job := s.extractor.ExtractCached(ctx, email, force)
		key := tracker.DedupKey(job)

		s.merger.Merge(working, key, job, status, email.Date, email.ID)
		processed++
	}

	return processed, failed
}

// StartAutoSync launches the periodic background sync loop. Requires a
// configured Gmail access token; without one the loop never starts.
func (s *Syncer) StartAutoSync(ctx context.Context) {
	if !s.config.Sync.AutoSync || s.config.Gmail.AccessToken == "" {
		return
	}

	s.stopAuto = make(chan struct{})
	interval := s.config.Sync.Interval

	s.logger.Info("Starting auto-sync loop", map[string]interface{}{
		"interval": interval.String(),
	})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopAuto:
				return
			case <-ticker.C:
				if !s.TryBegin() {
					s.logger.Debug("Skipping auto-sync, a sync is already running")
					continue
				}
				req := &models.SyncRequest{
					Token:        s.config.Gmail.AccessToken,
					LookbackDays: s.config.Sync.LookbackDays,
				}
				if _, err := s.Run(ctx, req); err != nil {
					s.logger.Error("Auto-sync run failed", map[string]interface{}{
						"error": err.Error(),
					})
				}
			}
		}
	}()
}

// StopAutoSync stops the periodic background sync loop
func (s *Syncer) StopAutoSync() {
	if s.stopAuto != nil {
		close(s.stopAuto)
		s.stopAuto = nil
	}
}
