package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jobtrail/internal/config"
	"jobtrail/internal/logging"
	"jobtrail/pkg/models"
)

// RedisStore keeps each user's record set as a single JSON document.
// Record sets are small (hundreds of applications at most) so a full
// load-merge-save cycle per sync is cheaper than per-record keys.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

// NewRedisStore creates a Redis-backed application store
func NewRedisStore(cfg *config.Config) *RedisStore {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &RedisStore{
		client: redis.NewClient(opts),
		ttl:    cfg.Store.TTL,
		logger: logging.GetGlobalLogger(),
	}
}

func (s *RedisStore) Load(ctx context.Context, userID string) ([]*models.ApplicationRec, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return []*models.ApplicationRec{}, nil
		}
		return nil, fmt.Errorf("failed to load applications for user %s: %w", userID, err)
	}

	var recs []*models.ApplicationRec
	if err := json.Unmarshal([]byte(data), &recs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal applications for user %s: %w", userID, err)
	}
	return recs, nil
}

func (s *RedisStore) Save(ctx context.Context, userID string, recs []*models.ApplicationRec) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to marshal applications: %w", err)
	}

	if err := s.client.Set(ctx, s.key(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save applications for user %s: %w", userID, err)
	}

	s.logger.Debug("Saved application set", map[string]interface{}{
		"user_id": userID,
		"count":   len(recs),
	})
	return nil
}

func (s *RedisStore) IsHealthy(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(userID string) string {
	return fmt.Sprintf("applications:user:%s", userID)
}
