// ABOUTME: In-memory cache with TTL-based expiration for plan responses
// ABOUTME: Thread-safe cache using sync.Map with automatic cleanup

package cache

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

type entry struct {
	data      any
	expiresAt time.Time
}

type Cache struct {
	store sync.Map
	ttl   time.Duration
	size  atomic.Int64
}

// New creates a cache whose cleanup loop runs until ctx is done
func New(ctx context.Context, ttl time.Duration) *Cache {
	c := &Cache{
		ttl: ttl,
	}
	go c.startCleanup(ctx)
	return c
}

// TTL returns the default time to live
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

func (c *Cache) Get(key string) (any, bool) {
	val, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return nil, false
	}

	e := val.(entry)
	if time.Now().After(e.expiresAt) {
		c.delete(key)
		slog.Debug("Cache expired", "key", key)
		return nil, false
	}

	slog.Debug("Cache hit", "key", key)
	return e.data, true
}

func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	e := entry{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	}
	if _, loaded := c.store.Swap(key, e); !loaded {
		c.size.Add(1)
	}
	slog.Debug("Cache set", "key", key, "ttl", ttl)
}

func (c *Cache) Clear(key string) {
	c.delete(key)
}

// Len returns the number of stored entries, including any not yet swept
func (c *Cache) Len() int {
	return int(c.size.Load())
}

func (c *Cache) delete(key string) {
	if _, loaded := c.store.LoadAndDelete(key); loaded {
		c.size.Add(-1)
	}
}

func (c *Cache) startCleanup(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sweep(time.Now())
		}
	}
}

func (c *Cache) sweep(now time.Time) {
	c.store.Range(func(key, val any) bool {
		if now.After(val.(entry).expiresAt) {
			c.delete(key.(string))
		}
		return true
	})
}
