package cache

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ReportStore is a report cache that owns resources
type ReportStore interface {
	Generation(ctx context.Context, userID uuid.UUID) (int64, error)
	Get(ctx context.Context, userID uuid.UUID, key string, dest any) (bool, error)
	Set(ctx context.Context, userID uuid.UUID, key string, value any) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
	Ping(ctx context.Context) error
	Close() error
}

// NewReportStore returns a Redis store when Redis is enabled and reachable,
// otherwise an in-memory store. With fallback disabled an unreachable
// Redis is an error.
func NewReportStore(cfg config.RedisConfig, allowFallback bool, logger *zap.Logger, opts ...Option) (ReportStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = append(opts, WithLogger(logger))

	if !cfg.Enabled {
		logger.Info("Redis disabled, using in-memory report cache")
		return NewInMemoryReportCache(opts...), nil
	}

	store, err := NewRedisReportCache(cfg, opts...)
	if err == nil {
		logger.Info("Using Redis report cache", zap.String("addr", cfg.Addr()))
		return store, nil
	}
	if !allowFallback {
		return nil, fmt.Errorf("redis required for report cache but unavailable: %w", err)
	}

	logger.Warn("Redis unavailable, falling back to in-memory report cache. "+
		"Cached reports are not shared between instances.",
		zap.Error(err),
	)
	return NewInMemoryReportCache(opts...), nil
}

var (
	_ ReportStore = (*RedisReportCache)(nil)
	_ ReportStore = (*InMemoryReportCache)(nil)
)
