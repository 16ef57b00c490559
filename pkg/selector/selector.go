// Package selector picks one prompt record for a lookup key.
package selector

import (
	"context"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"promptpick/pkg/catalog"
	"promptpick/pkg/category"
	"promptpick/pkg/persona"
)

// Selector filters the catalog and picks a candidate uniformly at random.
type Selector struct {
	catalog catalog.Catalog

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a selector drawing from rng. Pass a seeded source for
// reproducible picks.
func New(c catalog.Catalog, rng *rand.Rand) *Selector {
	return &Selector{catalog: c, rng: rng}
}

// Select returns a record matching every filter, or ok == false when none
// exists. Errors come only from the catalog backend.
func (s *Selector) Select(ctx context.Context, a persona.Archetype, c persona.RelationshipContext, m category.MoveCategory, adultAllowed bool) (catalog.Record, bool, error) {
	found, err := s.catalog.Find(ctx, a, c, m, adultAllowed)
	if err != nil {
		return catalog.Record{}, false, err
	}

	candidates := found[:0:0]
	for _, r := range found {
		if r.Matches(a, c, m, adultAllowed) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		zap.S().Infow("no prompt candidate", "archetype", a, "context", c, "category", m, "adult", adultAllowed)
		return catalog.Record{}, false, nil
	}

	s.mu.Lock()
	i := s.rng.IntN(len(candidates))
	s.mu.Unlock()

	zap.S().Debugw("prompt selected", "id", candidates[i].ID, "candidates", len(candidates))
	return candidates[i], true, nil
}
