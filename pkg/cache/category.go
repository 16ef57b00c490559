package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"promptpick/pkg/category"
)

const categoryKeyPrefix = "category"

// CategoryCache stores classified move categories in Redis under
// "<prefix>:category:<hash>" with a fixed TTL.
type CategoryCache struct {
	cache *Cache
	ttl   time.Duration
}

func NewCategoryCache(c *Cache, ttl time.Duration) *CategoryCache {
	if ttl <= 0 {
		ttl = CategoryTTL
	}
	return &CategoryCache{cache: c, ttl: ttl}
}

func (c *CategoryCache) Get(ctx context.Context, key string) (category.MoveCategory, bool, error) {
	v, ok, err := c.cache.Get(ctx, c.cache.Key(categoryKeyPrefix, key))
	if err != nil || !ok {
		return "", false, err
	}
	cat, err := category.Parse(v)
	if err != nil {
		// stale or foreign value; treat as a miss so it gets overwritten
		zap.S().Warnw("ignoring unparseable cached category", "key", key, "value", v)
		return "", false, nil
	}
	return cat, true, nil
}

func (c *CategoryCache) Set(ctx context.Context, key string, value category.MoveCategory) error {
	return c.cache.Set(ctx, c.cache.Key(categoryKeyPrefix, key), string(value), c.ttl)
}

type lruEntry struct {
	category  category.MoveCategory
	expiresAt time.Time
}

// LRUCategoryCache is the in-process category cache used when Redis is not
// configured. Entries expire after ttl and the least recently used entry is
// evicted once size is reached.
type LRUCategoryCache struct {
	cache *lru.Cache[string, lruEntry]
	ttl   time.Duration
	now   func() time.Time

	mu     sync.Mutex
	hits   int
	misses int
}

func NewLRUCategoryCache(size int, ttl time.Duration) (*LRUCategoryCache, error) {
	if ttl <= 0 {
		ttl = CategoryTTL
	}
	c, err := lru.New[string, lruEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}
	return &LRUCategoryCache{cache: c, ttl: ttl, now: time.Now}, nil
}

func (c *LRUCategoryCache) Get(_ context.Context, key string) (category.MoveCategory, bool, error) {
	entry, ok := c.cache.Get(key)
	if ok && c.now().After(entry.expiresAt) {
		c.cache.Remove(key)
		ok = false
	}

	c.mu.Lock()
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()

	if !ok {
		return "", false, nil
	}
	return entry.category, true, nil
}

func (c *LRUCategoryCache) Set(_ context.Context, key string, value category.MoveCategory) error {
	c.cache.Add(key, lruEntry{category: value, expiresAt: c.now().Add(c.ttl)})
	return nil
}

// Stats returns hit/miss counters and the current number of entries.
func (c *LRUCategoryCache) Stats() (hits, misses, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.cache.Len()
}
