package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/salonfin/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	defaultScanBatchSize = 100
	defaultReportTTL     = 10 * time.Minute
	reportKeyPrefix      = "report"
	generationKeyPrefix  = "report-gen"
)

// RedisReportCache stores computed dashboard reports in Redis as JSON,
// one key per (user, report key) under report:{user}:{key}.
type RedisReportCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	ttl        time.Duration
	logger     *zap.Logger
}

// Option configures a report cache
type Option func(*options)

type options struct {
	ttl    time.Duration
	logger *zap.Logger
}

// WithTTL sets how long a cached report lives; non-positive values are ignored
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithLogger sets the logger for the cache
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{ttl: defaultReportTTL, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewRedisReportCache connects to Redis and fails when the server does not answer a ping
func NewRedisReportCache(cfg config.RedisConfig, opts ...Option) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := NewRedisReportCacheWithClient(client, opts...)
	c.ownsClient = true
	return c, nil
}

// NewRedisReportCacheWithClient creates a cache over an existing client.
// The caller keeps ownership of the client.
func NewRedisReportCacheWithClient(client *redis.Client, opts ...Option) *RedisReportCache {
	o := newOptions(opts)
	return &RedisReportCache{
		client: client,
		ttl:    o.ttl,
		logger: o.logger,
	}
}

func reportKey(userID uuid.UUID, key string) string {
	return fmt.Sprintf("%s:%s:%s", reportKeyPrefix, userID, key)
}

func generationKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", generationKeyPrefix, userID)
}

func userPattern(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:*", reportKeyPrefix, userID)
}

// Generation returns the user's generation counter, 0 before the first Invalidate
func (c *RedisReportCache) Generation(ctx context.Context, userID uuid.UUID) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read report cache generation: %w", err)
	}
	return gen, nil
}

// Get loads the cached report into dest. A miss returns false with no error.
func (c *RedisReportCache) Get(ctx context.Context, userID uuid.UUID, key string, dest any) (bool, error) {
	cacheKey := reportKey(userID, key)
	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("Report cache miss", zap.String("key", cacheKey))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get report from cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// corrupted entry
		_ = c.client.Del(ctx, cacheKey)
		return false, fmt.Errorf("failed to unmarshal cached report: %w", err)
	}
	c.logger.Debug("Report cache hit", zap.String("key", cacheKey))
	return true, nil
}

// Set stores value as JSON under key for the configured TTL
func (c *RedisReportCache) Set(ctx context.Context, userID uuid.UUID, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := c.client.Set(ctx, reportKey(userID, key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set report in cache: %w", err)
	}
	return nil
}

// Invalidate advances the user's generation, then deletes every cached
// report of the user. Keys are found with SCAN so a large keyspace never
// blocks Redis.
func (c *RedisReportCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Incr(ctx, generationKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to advance report cache generation: %w", err)
	}

	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, userPattern(userID), defaultScanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan report keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("failed to delete report keys: %w", err)
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.logger.Debug("Invalidated report cache",
		zap.String("user_id", userID.String()),
		zap.Int64("deleted_count", deleted))
	return nil
}

// Ping checks the Redis connection
func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client when the cache created it
func (c *RedisReportCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}
