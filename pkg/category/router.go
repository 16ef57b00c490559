package category

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single model-backed classification.
const DefaultTimeout = 8 * time.Second

var errCacheMiss = errors.New("category cache miss")

// Router dispatches classification by tier through a chain of
// responsibility: cache lookup, the tier's model classifier (LLM for paid
// tiers, embeddings for free), and the keyword heuristic. The heuristic
// never fails, so Classify always yields a category.
type Router struct {
	cache    Cache
	paid     Classifier
	free     Classifier
	fallback *KeywordClassifier
	timeout  time.Duration
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithCache sets the classification cache.
func WithCache(c Cache) RouterOption {
	return func(r *Router) { r.cache = c }
}

// WithPaidClassifier sets the classifier used for paid tiers.
func WithPaidClassifier(c Classifier) RouterOption {
	return func(r *Router) { r.paid = c }
}

// WithFreeClassifier sets the classifier used for the free tier.
func WithFreeClassifier(c Classifier) RouterOption {
	return func(r *Router) { r.free = c }
}

// WithTimeout bounds each model-backed call. Non-positive values keep the default.
func WithTimeout(d time.Duration) RouterOption {
	return func(r *Router) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewRouter builds a Router. Without a cache or model classifiers it
// degrades to the keyword heuristic alone.
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{
		fallback: NewKeywordClassifier(),
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Classify returns the move category for the conversation window. It never
// fails; model errors, timeouts and cancellation fall through to the
// keyword heuristic exactly once.
func (r *Router) Classify(ctx context.Context, turns []string, tier Tier) MoveCategory {
	if len(turns) == 0 {
		return TopicOpener
	}

	key := CacheKey(turns)
	chain := Chain{
		r.cacheLink(key),
		r.modelLink(tier, key),
		r.fallback,
	}

	cat, err := chain.Classify(ctx, turns)
	if err != nil {
		// unreachable while the keyword heuristic terminates the chain
		zap.S().Errorw("classifier chain exhausted", "error", err)
		return TopicOpener
	}
	return cat
}

// ForTier exposes the router as a plain Classifier bound to one tier.
func (r *Router) ForTier(tier Tier) Classifier {
	return ClassifierFunc(func(ctx context.Context, turns []string) (MoveCategory, error) {
		return r.Classify(ctx, turns, tier), nil
	})
}

func (r *Router) modelFor(tier Tier) (Classifier, string) {
	if tier.IsPaid() && r.paid != nil {
		return r.paid, "llm"
	}
	if r.free != nil {
		return r.free, "embedding"
	}
	return nil, ""
}

func (r *Router) cacheLink(key string) Classifier {
	if r.cache == nil {
		return nil
	}
	return ClassifierFunc(func(ctx context.Context, _ []string) (MoveCategory, error) {
		cat, ok, err := r.cache.Get(ctx, key)
		if err != nil {
			zap.S().Warnw("category cache read failed, continuing without cache", "key", key, "error", err)
			return "", err
		}
		if !ok {
			return "", errCacheMiss
		}
		zap.S().Debugw("category retrieved from cache", "key", key, "category", cat)
		return cat, nil
	})
}

func (r *Router) modelLink(tier Tier, key string) Classifier {
	model, method := r.modelFor(tier)
	if model == nil {
		return nil
	}
	return ClassifierFunc(func(ctx context.Context, turns []string) (MoveCategory, error) {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		start := time.Now()
		cat, err := model.Classify(callCtx, turns)
		if err != nil {
			zap.S().Warnw("classification failed, falling back to keywords",
				"tier", tier, "method", method, "took", time.Since(start), "error", err)
			return "", fmt.Errorf("%s classifier: %w", method, err)
		}

		zap.S().Infow("category classified", "tier", tier, "method", method, "category", cat, "took", time.Since(start))
		if r.cache != nil {
			if err := r.cache.Set(ctx, key, cat); err != nil {
				zap.S().Warnw("failed to cache category, continuing", "key", key, "error", err)
			}
		}
		return cat, nil
	})
}
