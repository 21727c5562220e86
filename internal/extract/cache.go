package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"jobtrail/internal/config"
	"jobtrail/internal/logging"
	"jobtrail/pkg/models"
)

// Cache stores extraction results keyed by email content so repeated
// syncs never pay for the same oracle call twice.
type Cache interface {
	Get(ctx context.Context, key string) (*models.ExtractedJob, bool)
	Set(ctx context.Context, key string, job *models.ExtractedJob) error
	Clear(ctx context.Context) error
}

// NewCache creates an extraction cache for the configured backend
func NewCache(cfg *config.Config) Cache {
	switch cfg.Cache.Backend {
	case "redis":
		return NewRedisCache(cfg)
	default:
		return NewMemoryCache()
	}
}

// MemoryCache is the in-process cache backend
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*models.ExtractedJob
}

// NewMemoryCache creates a new in-memory extraction cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*models.ExtractedJob),
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (*models.ExtractedJob, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	job, ok := c.entries[key]
	return job, ok
}

func (c *MemoryCache) Set(ctx context.Context, key string, job *models.ExtractedJob) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = job
	return nil
}

func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*models.ExtractedJob)
	return nil
}

// RedisCache backs the extraction cache with Redis so results survive
// server restarts.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

const extractionKeyPrefix = "extraction:"

// NewRedisCache creates a Redis-backed extraction cache
func NewRedisCache(cfg *config.Config) *RedisCache {
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

	return &RedisCache{
		client: redis.NewClient(opts),
		ttl:    cfg.Cache.TTL,
		logger: logging.GetGlobalLogger(),
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*models.ExtractedJob, bool) {
	data, err := c.client.Get(ctx, extractionKeyPrefix+key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Extraction cache read failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil, false
	}

	var job models.ExtractedJob
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return nil, false
	}
	return &job, true
}

func (c *RedisCache) Set(ctx context.Context, key string, job *models.ExtractedJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal extraction result: %w", err)
	}
	return c.client.Set(ctx, extractionKeyPrefix+key, data, c.ttl).Err()
}

func (c *RedisCache) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, extractionKeyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan extraction cache: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to clear extraction cache: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// cacheKey builds the cache key for an email. The snippet prefix keeps
// the key stable even when Gmail re-renders the full body.
func cacheKey(subject, snippet string) string {
	if len(snippet) > 100 {
		snippet = snippet[:100]
	}
	return strings.Join([]string{subject, snippet}, "::")
}
