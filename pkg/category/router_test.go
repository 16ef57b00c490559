package category

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, turns []string) (MoveCategory, error) {
	args := m.Called(ctx, turns)
	return args.Get(0).(MoveCategory), args.Error(1)
}

type memCache struct {
	mu      sync.Mutex
	data    map[string]MoveCategory
	getErr  error
	setErr  error
	sets    int
	lookups int
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]MoveCategory)}
}

func (c *memCache) Get(_ context.Context, key string) (MoveCategory, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookups++
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value MoveCategory) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

var neutralTurns = []string{"I was reading an article about how bridges are designed to handle wind"}

func TestRouter_EmptyTurns(t *testing.T) {
	paid := new(MockClassifier)
	r := NewRouter(WithPaidClassifier(paid))

	assert.Equal(t, TopicOpener, r.Classify(context.Background(), nil, TierUltra))
	paid.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
}

func TestRouter_CacheHitSkipsModel(t *testing.T) {
	cache := newMemCache()
	cache.data[CacheKey(neutralTurns)] = EmotionalSupport

	paid := new(MockClassifier)
	r := NewRouter(WithCache(cache), WithPaidClassifier(paid))

	assert.Equal(t, EmotionalSupport, r.Classify(context.Background(), neutralTurns, TierPlus))
	paid.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
}

func TestRouter_PaidTierUsesLLMAndCaches(t *testing.T) {
	cache := newMemCache()
	paid := new(MockClassifier)
	free := new(MockClassifier)
	paid.On("Classify", mock.Anything, neutralTurns).Return(Intensification, nil).Once()

	r := NewRouter(WithCache(cache), WithPaidClassifier(paid), WithFreeClassifier(free))

	assert.Equal(t, Intensification, r.Classify(context.Background(), neutralTurns, TierUltra))
	// second call is served from the cache
	assert.Equal(t, Intensification, r.Classify(context.Background(), neutralTurns, TierUltra))

	paid.AssertExpectations(t)
	free.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
	assert.Equal(t, 1, cache.sets)
}

func TestRouter_FreeTierUsesEmbeddings(t *testing.T) {
	paid := new(MockClassifier)
	free := new(MockClassifier)
	free.On("Classify", mock.Anything, neutralTurns).Return(Greeting, nil).Once()

	r := NewRouter(WithPaidClassifier(paid), WithFreeClassifier(free))

	assert.Equal(t, Greeting, r.Classify(context.Background(), neutralTurns, TierFree))
	free.AssertExpectations(t)
	paid.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
}

func TestRouter_PaidTierWithoutLLMUsesEmbeddings(t *testing.T) {
	free := new(MockClassifier)
	free.On("Classify", mock.Anything, neutralTurns).Return(ActivityProposal, nil).Once()

	r := NewRouter(WithFreeClassifier(free))

	assert.Equal(t, ActivityProposal, r.Classify(context.Background(), neutralTurns, TierPlus))
	free.AssertExpectations(t)
}

func TestRouter_ModelFailureFallsBackToKeywords(t *testing.T) {
	cache := newMemCache()
	paid := new(MockClassifier)
	paid.On("Classify", mock.Anything, mock.Anything).Return(MoveCategory(""), errors.New("upstream down")).Once()

	r := NewRouter(WithCache(cache), WithPaidClassifier(paid))

	turns := []string{"I'm so bored", "ok", "yeah"}
	assert.Equal(t, ActivityProposal, r.Classify(context.Background(), turns, TierPlus))
	paid.AssertExpectations(t)
	assert.Equal(t, 0, cache.sets, "heuristic results are not cached")
}

func TestRouter_NoConfidentMatchFallsBack(t *testing.T) {
	free := new(MockClassifier)
	free.On("Classify", mock.Anything, mock.Anything).Return(MoveCategory(""), ErrNoConfidentMatch).Once()

	r := NewRouter(WithFreeClassifier(free))
	turns := []string{"I had a really awful week at work and I feel so lonely lately"}
	assert.Equal(t, EmotionalSupport, r.Classify(context.Background(), turns, TierFree))
}

func TestRouter_CacheErrorIsTreatedAsMiss(t *testing.T) {
	cache := newMemCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")

	paid := new(MockClassifier)
	paid.On("Classify", mock.Anything, neutralTurns).Return(Greeting, nil).Once()

	r := NewRouter(WithCache(cache), WithPaidClassifier(paid))
	assert.Equal(t, Greeting, r.Classify(context.Background(), neutralTurns, TierPlus))
	paid.AssertExpectations(t)
}

func TestRouter_TimeoutFallsBack(t *testing.T) {
	slow := ClassifierFunc(func(ctx context.Context, _ []string) (MoveCategory, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	r := NewRouter(WithPaidClassifier(slow), WithTimeout(20*time.Millisecond))

	start := time.Now()
	got := r.Classify(context.Background(), []string{"I'm so bored", "ok", "yeah"}, TierUltra)
	assert.Equal(t, ActivityProposal, got)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRouter_CancelledContextStillAnswers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slow := ClassifierFunc(func(ctx context.Context, _ []string) (MoveCategory, error) {
		return "", ctx.Err()
	})
	r := NewRouter(WithPaidClassifier(slow))
	assert.Equal(t, TopicOpener, r.Classify(ctx, neutralTurns, TierPlus))
}

func TestRouter_TotalForEveryTier(t *testing.T) {
	failing := ClassifierFunc(func(context.Context, []string) (MoveCategory, error) {
		return "", errors.New("boom")
	})
	r := NewRouter(WithPaidClassifier(failing), WithFreeClassifier(failing))

	for _, tier := range []Tier{TierFree, TierPlus, TierUltra, Tier("unknown")} {
		got := r.Classify(context.Background(), neutralTurns, tier)
		assert.Contains(t, All, got, "tier %s", tier)
	}
}

func TestRouter_ForTier(t *testing.T) {
	r := NewRouter()
	c := r.ForTier(TierFree)
	cat, err := c.Classify(context.Background(), []string{"hey there!"})
	require.NoError(t, err)
	assert.Equal(t, Greeting, cat)
}

func TestChain(t *testing.T) {
	failing := ClassifierFunc(func(context.Context, []string) (MoveCategory, error) {
		return "", errors.New("first failed")
	})
	ok := ClassifierFunc(func(context.Context, []string) (MoveCategory, error) {
		return Greeting, nil
	})

	cat, err := Chain{nil, failing, ok}.Classify(context.Background(), neutralTurns)
	require.NoError(t, err)
	assert.Equal(t, Greeting, cat)

	_, err = Chain{failing}.Classify(context.Background(), neutralTurns)
	assert.ErrorContains(t, err, "first failed")

	_, err = Chain{}.Classify(context.Background(), neutralTurns)
	assert.Error(t, err)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, CacheKey([]string{"Hello", "World"}), CacheKey([]string{"hello", "world"}))
	assert.NotEqual(t, CacheKey([]string{"a|b"}), CacheKey([]string{"a", "c"}))
	assert.Len(t, CacheKey(neutralTurns), 32)
}
