package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Embedder is satisfied by Client and by test doubles.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// CachedClient wraps an embedder with an in-memory LRU cache
type CachedClient struct {
	client Embedder
	cache  *lru.Cache[string, []float32]
	mu     sync.Mutex
	hits   int
	misses int
}

// NewCachedClient creates a cached wrapper around the embedding client
func NewCachedClient(client Embedder, maxSize int) *CachedClient {
	if maxSize <= 0 {
		maxSize = 500
	}
	cache, _ := lru.New[string, []float32](maxSize)
	return &CachedClient{
		client: client,
		cache:  cache,
	}
}

// hashText creates a cache key from the text
func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:16]
}

// Embed returns cached embedding or fetches from API
func (c *CachedClient) Embed(ctx context.Context, text string) ([]float32, error) {
	key := hashText(text)

	if embedding, ok := c.cache.Get(key); ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return embedding, nil
	}

	embedding, err := c.client.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, embedding)
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()

	return embedding, nil
}

// Stats returns cache hit/miss statistics
func (c *CachedClient) Stats() (hits, misses, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.cache.Len()
}

// Clear empties the cache
func (c *CachedClient) Clear() {
	c.cache.Purge()
}
