package store

import (
	"context"
	"sync"

	"jobtrail/pkg/models"
)

// MemoryStore keeps record sets in process memory. Used when Redis
// persistence is disabled and by tests.
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[string][]*models.ApplicationRec
}

// NewMemoryStore creates an in-memory application store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sets: make(map[string][]*models.ApplicationRec),
	}
}

func (s *MemoryStore) Load(ctx context.Context, userID string) ([]*models.ApplicationRec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs, ok := s.sets[userID]
	if !ok {
		return []*models.ApplicationRec{}, nil
	}
	out := make([]*models.ApplicationRec, len(recs))
	copy(out, recs)
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, userID string, recs []*models.ApplicationRec) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make([]*models.ApplicationRec, len(recs))
	copy(saved, recs)
	s.sets[userID] = saved
	return nil
}

func (s *MemoryStore) IsHealthy(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
