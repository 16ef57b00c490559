// Package history remembers which games were recently suggested to each
// user so later prompts can exclude them.
package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"promptpick/pkg/cache"
)

const (
	// DefaultLimit is how many recent game IDs are kept per user.
	DefaultLimit = 15
	// DefaultTTL drops a user's history after a quiet period.
	DefaultTTL = 3 * 24 * time.Hour
)

// Store tracks recently suggested game IDs per user, newest first.
type Store interface {
	Recent(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID string, gameIDs []string) error
}

// Redis keeps each user's history in a capped list.
type Redis struct {
	cache *cache.Cache
	limit int
	ttl   time.Duration
}

// NewRedis creates a redis-backed history. Non-positive limit or ttl use
// the defaults.
func NewRedis(c *cache.Cache, limit int, ttl time.Duration) *Redis {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{cache: c, limit: limit, ttl: ttl}
}

func (r *Redis) key(userID string) string {
	return r.cache.Key("recent_games", userID)
}

func (r *Redis) Recent(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.cache.LRange(ctx, r.key(userID), 0, int64(r.limit-1))
	if err != nil {
		return nil, fmt.Errorf("failed to read game history: %w", err)
	}
	return ids, nil
}

func (r *Redis) Add(ctx context.Context, userID string, gameIDs []string) error {
	if err := r.cache.PushCapped(ctx, r.key(userID), int64(r.limit), r.ttl, gameIDs...); err != nil {
		return fmt.Errorf("failed to record game history: %w", err)
	}
	return nil
}

// Memory is an in-process history bounded to a number of users.
type Memory struct {
	mu    sync.Mutex
	users *lru.Cache[string, []string]
	limit int
}

// NewMemory creates an in-process history for up to users users.
func NewMemory(users, limit int) (*Memory, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	c, err := lru.New[string, []string](users)
	if err != nil {
		return nil, fmt.Errorf("failed to create history cache: %w", err)
	}
	return &Memory{users: c, limit: limit}, nil
}

func (m *Memory) Recent(_ context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids, _ := m.users.Get(userID)
	return append([]string(nil), ids...), nil
}

func (m *Memory) Add(_ context.Context, userID string, gameIDs []string) error {
	if len(gameIDs) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, _ := m.users.Get(userID)
	ids := make([]string, 0, len(gameIDs)+len(prev))
	for i := len(gameIDs) - 1; i >= 0; i-- {
		ids = append(ids, gameIDs[i])
	}
	ids = append(ids, prev...)
	if len(ids) > m.limit {
		ids = ids[:m.limit]
	}
	m.users.Add(userID, ids)
	return nil
}
