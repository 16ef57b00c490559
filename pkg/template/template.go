// Package template resolves placeholders in prompt bodies.
package template

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"promptpick/pkg/games"
	"promptpick/pkg/persona"
)

// GamesPlaceholder is replaced by a numbered list of suggested activities.
const GamesPlaceholder = "{{GAMES_LIST}}"

// DefaultGameCount is how many suggestions are injected.
const DefaultGameCount = 3

// fallbackGames is used when no suggestion could be produced.
const fallbackGames = "- any simple game or activity you think they would enjoy"

// Engine substitutes dynamic placeholders.
type Engine struct {
	games games.Service
	count int
}

// New creates a template engine. count <= 0 uses DefaultGameCount.
func New(svc games.Service, count int) *Engine {
	if count <= 0 {
		count = DefaultGameCount
	}
	return &Engine{games: svc, count: count}
}

// Rendered is a resolved template plus the game IDs it injected.
type Rendered struct {
	Text    string
	GameIDs []string
}

// Render resolves every placeholder in body. A body without placeholders is
// returned unchanged. exclude is read, never modified.
func (e *Engine) Render(ctx context.Context, body string, rc persona.RelationshipContext, adultAllowed bool, exclude []string) Rendered {
	if !strings.Contains(body, GamesPlaceholder) {
		return Rendered{Text: body}
	}

	tier := games.TierFor(rc)
	list := fallbackGames
	var ids []string

	suggestions, err := e.sample(ctx, adultAllowed, tier, exclude)
	switch {
	case err != nil:
		zap.S().Warnw("game suggestions unavailable, using generic text", "tier", tier, "error", err)
	case len(suggestions) == 0:
		zap.S().Warnw("no game suggestions left after exclusions", "tier", tier, "excluded", len(exclude))
	default:
		list = games.Format(suggestions)
		ids = make([]string, len(suggestions))
		for i, s := range suggestions {
			ids[i] = s.ID
		}
		zap.S().Debugw("games injected", "tier", tier, "ids", ids)
	}

	return Rendered{
		Text:    strings.ReplaceAll(body, GamesPlaceholder, list),
		GameIDs: ids,
	}
}

func (e *Engine) sample(ctx context.Context, adultAllowed bool, tier games.IntimacyTier, exclude []string) ([]games.Suggestion, error) {
	if e.games == nil {
		return nil, nil
	}
	excludeCopy := append([]string(nil), exclude...)
	suggestions, err := e.games.Sample(ctx, e.count, adultAllowed, tier, excludeCopy)
	if err != nil {
		return nil, err
	}

	// a misbehaving service must not reintroduce excluded games
	skip := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}
	out := suggestions[:0:0]
	for _, s := range suggestions {
		if _, ok := skip[s.ID]; !ok {
			out = append(out, s)
		}
	}
	return out, nil
}
