package jesssits

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jesssits/jesssits/content"
)

// ContentCache is an in-memory cache of the content snapshot with TTL. When
// a refresh fails and an older snapshot exists, the stale snapshot keeps
// being served until the next refresh succeeds.
type ContentCache struct {
	mu      sync.RWMutex
	snap    *content.Snapshot
	fetched time.Time
	ttl     time.Duration
	source  content.Source
	now     func() time.Time

	// OnStale is called with the refresh error whenever a stale snapshot is
	// served in place of a fresh one.
	OnStale func(error)
}

// NewContentCache creates a ContentCache backed by the given Source.
func NewContentCache(src content.Source, ttl time.Duration) *ContentCache {
	return &ContentCache{source: src, ttl: ttl, now: time.Now}
}

func (c *ContentCache) valid() bool {
	return c.snap != nil && c.now().Sub(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load. The
// previous snapshot is kept as the stale fallback.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.fetched = time.Time{}
	c.mu.Unlock()
}

func (c *ContentCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	snap, err := c.source.Snapshot(ctx)
	if err != nil {
		if c.snap == nil {
			return fmt.Errorf("jesssits: load content: %w", err)
		}
		// Retry after another TTL instead of on every request.
		c.fetched = c.now()
		if c.OnStale != nil {
			c.OnStale(err)
		}
		return nil
	}
	c.snap = snap
	c.fetched = c.now()
	return nil
}

// Snapshot returns the cached snapshot after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ContentCache) Snapshot(ctx context.Context) (*content.Snapshot, error) {
	c.mu.RLock()
	if c.valid() {
		snap := c.snap
		c.mu.RUnlock()
		return snap, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c.snap, nil
}
