package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryReportCache keeps reports in process memory.
// Values are stored as JSON so readers never share state with writers,
// matching what RedisReportCache returns.
type InMemoryReportCache struct {
	entries     sync.Map // map[string]*cacheEntry
	generations sync.Map // map[uuid.UUID]*int64
	ttl         time.Duration
	logger      *zap.Logger
	now         func() time.Time
	stopCh      chan struct{}
	stopped     int32

	hits   int64
	misses int64
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewInMemoryReportCache creates the cache and starts its expiry sweeper.
// Call Close to stop the sweeper.
func NewInMemoryReportCache(opts ...Option) *InMemoryReportCache {
	o := newOptions(opts)
	c := &InMemoryReportCache{
		ttl:    o.ttl,
		logger: o.logger,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go c.cleanupExpired()
	return c
}

// Get loads the cached report into dest
func (c *InMemoryReportCache) Get(_ context.Context, userID uuid.UUID, key string, dest any) (bool, error) {
	cacheKey := reportKey(userID, key)
	if value, ok := c.entries.Load(cacheKey); ok {
		entry := value.(*cacheEntry)
		if c.now().Before(entry.expiresAt) {
			if err := json.Unmarshal(entry.data, dest); err != nil {
				c.entries.Delete(cacheKey)
				return false, fmt.Errorf("failed to unmarshal cached report: %w", err)
			}
			atomic.AddInt64(&c.hits, 1)
			return true, nil
		}
		c.entries.Delete(cacheKey)
	}
	atomic.AddInt64(&c.misses, 1)
	return false, nil
}

// Set stores value under key for the configured TTL
func (c *InMemoryReportCache) Set(_ context.Context, userID uuid.UUID, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	c.entries.Store(reportKey(userID, key), &cacheEntry{
		data:      data,
		expiresAt: c.now().Add(c.ttl),
	})
	return nil
}

// Generation returns the user's generation counter
func (c *InMemoryReportCache) Generation(_ context.Context, userID uuid.UUID) (int64, error) {
	if gen, ok := c.generations.Load(userID); ok {
		return atomic.LoadInt64(gen.(*int64)), nil
	}
	return 0, nil
}

// Invalidate advances the user's generation and drops every cached report of the user
func (c *InMemoryReportCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	gen, _ := c.generations.LoadOrStore(userID, new(int64))
	atomic.AddInt64(gen.(*int64), 1)

	prefix := reportKey(userID, "")
	c.entries.Range(func(key, _ any) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.entries.Delete(key)
		}
		return true
	})
	return nil
}

// Ping always succeeds
func (c *InMemoryReportCache) Ping(context.Context) error {
	return nil
}

// Close stops the expiry sweeper. It is safe to call more than once.
func (c *InMemoryReportCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// Stats returns hit and miss counters
func (c *InMemoryReportCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Len returns the number of stored entries, expired ones included
func (c *InMemoryReportCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (c *InMemoryReportCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			if removed := c.sweep(); removed > 0 {
				c.logger.Debug("Removed expired reports", zap.Int("removed", removed))
			}
		}
	}
}

// sweep deletes expired entries and returns how many were removed
func (c *InMemoryReportCache) sweep() int {
	now := c.now()
	removed := 0
	c.entries.Range(func(key, value any) bool {
		if !now.Before(value.(*cacheEntry).expiresAt) {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	return removed
}
