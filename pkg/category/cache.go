package category

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Cache stores previously computed categories. Implementations must be safe
// for concurrent use; eviction and expiry are theirs to decide.
type Cache interface {
	Get(ctx context.Context, key string) (MoveCategory, bool, error)
	Set(ctx context.Context, key string, value MoveCategory) error
}

// CacheKey derives the cache key for a conversation window. Turns are
// lowercased and joined so trivially different casing shares an entry.
func CacheKey(turns []string) string {
	text := strings.ToLower(strings.Join(turns, "|"))
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
