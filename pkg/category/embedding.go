package category

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMinSimilarity is the cosine similarity a prototype must reach for
// the embedding classifier to trust its answer.
const DefaultMinSimilarity = 0.35

// EmbeddingClient produces a vector for a piece of text.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Prototypes are canonical example utterances per category. The embedding
// classifier picks the category of the most similar prototype.
var Prototypes = map[MoveCategory][]string{
	Greeting: {
		"hi! how are you today?",
		"hey there, good morning",
		"hello, nice to meet you",
	},
	TopicOpener: {
		"so what have you been up to lately?",
		"i watched a movie yesterday, it was interesting",
		"tell me something about yourself",
	},
	ActivityProposal: {
		"i'm so bored, there's nothing to do",
		"ok",
		"idk... whatever",
		"let's play a game",
	},
	EmotionalSupport: {
		"i feel really sad and lonely today",
		"i'm stressed and anxious about everything",
		"i had an awful day and i just want to cry",
	},
	Intensification: {
		"i think i'm starting to like you",
		"you're really cute, i wish i could hug you",
		"i missed you so much",
	},
	ExplicitInitiative: {
		"i want you so badly right now, take your clothes off",
		"i'm so horny thinking about you",
		"tell me what you'd do to me in bed",
	},
}

type prototypeVector struct {
	category MoveCategory
	vector   []float32
}

// EmbeddingClassifier is the free-tier classifier: it compares the recent
// conversation against prototype utterances by cosine similarity.
type EmbeddingClassifier struct {
	client        EmbeddingClient
	minSimilarity float64

	mu     sync.Mutex
	vecs   []prototypeVector
	loaded bool
}

// NewEmbeddingClassifier creates an embedding classifier. Prototype vectors
// are computed lazily on the first call and retried until they load.
func NewEmbeddingClassifier(client EmbeddingClient, minSimilarity float64) *EmbeddingClassifier {
	if minSimilarity <= 0 {
		minSimilarity = DefaultMinSimilarity
	}
	return &EmbeddingClassifier{
		client:        client,
		minSimilarity: minSimilarity,
	}
}

// Classify implements Classifier.
func (e *EmbeddingClassifier) Classify(ctx context.Context, turns []string) (MoveCategory, error) {
	if len(turns) == 0 {
		return "", ErrEmptyConversation
	}

	protos, err := e.prototypes(ctx)
	if err != nil {
		return "", err
	}

	window := turns
	if len(window) > keywordWindow {
		window = window[len(window)-keywordWindow:]
	}
	query, err := e.client.Embed(ctx, strings.Join(window, "\n"))
	if err != nil {
		return "", fmt.Errorf("failed to embed conversation: %w", err)
	}

	best := prototypeVector{}
	bestScore := math.Inf(-1)
	for _, p := range protos {
		score, err := CosineSimilarity(query, p.vector)
		if err != nil {
			return "", err
		}
		if score > bestScore {
			best, bestScore = p, score
		}
	}

	if bestScore < e.minSimilarity {
		return "", fmt.Errorf("%w: best %s at %.3f", ErrNoConfidentMatch, best.category, bestScore)
	}
	zap.S().Debugw("embedding category", "category", best.category, "similarity", bestScore)
	return best.category, nil
}

func (e *EmbeddingClassifier) prototypes(ctx context.Context) ([]prototypeVector, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loaded {
		return e.vecs, nil
	}

	var pending []prototypeVector
	var texts []string
	for _, cat := range All {
		for _, text := range Prototypes[cat] {
			pending = append(pending, prototypeVector{category: cat})
			texts = append(texts, text)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range texts {
		g.Go(func() error {
			vec, err := e.client.Embed(gctx, texts[i])
			if err != nil {
				return fmt.Errorf("failed to embed prototype %q: %w", texts[i], err)
			}
			pending[i].vector = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.vecs = pending
	e.loaded = true
	zap.S().Infow("embedding prototypes loaded", "count", len(pending))
	return e.vecs, nil
}

// CosineSimilarity returns the cosine of the angle between a and b. Zero
// vectors have similarity 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vectors must have the same length: %d != %d", len(a), len(b))
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB)), nil
}
