// Package engine assembles the instruction text for the next proactive
// message of a companion character.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"promptpick/pkg/category"
	"promptpick/pkg/dialect"
	"promptpick/pkg/persona"
	"promptpick/pkg/selector"
	"promptpick/pkg/template"
)

// Categorizer resolves the move category for a conversation window.
// *category.Router satisfies it.
type Categorizer interface {
	Classify(ctx context.Context, turns []string, tier category.Tier) category.MoveCategory
}

// Input describes the character and the conversation to resolve a prompt for.
type Input struct {
	ArchetypeOrTraits    string
	RelationshipStage    string
	RecentTurns          []string
	AdultAllowed         bool
	Tier                 category.Tier
	ExcludeRecentGameIDs []string
	Origin               *dialect.CharacterOrigin
}

// Resolution is the assembled instruction plus what went into it.
type Resolution struct {
	Text       string
	RecordID   string
	Archetype  persona.Archetype
	Context    persona.RelationshipContext
	Category   category.MoveCategory
	GameIDs    []string
	OriginKind dialect.Kind
}

// Engine runs the resolve pipeline: archetype and context mapping,
// classification, selection, templating and dialect adaptation.
type Engine struct {
	classifier Categorizer
	selector   *selector.Selector
	templates  *template.Engine
}

// New creates an engine from its collaborators.
func New(classifier Categorizer, sel *selector.Selector, templates *template.Engine) *Engine {
	return &Engine{
		classifier: classifier,
		selector:   sel,
		templates:  templates,
	}
}

// ResolvePrompt assembles the instruction text for in. ok is false when no
// catalog record matches; the returned Resolution then still carries the
// resolved archetype, context and category. Classification problems never
// surface; only catalog backend errors are returned.
func (e *Engine) ResolvePrompt(ctx context.Context, in Input) (Resolution, bool, error) {
	start := time.Now()

	res := Resolution{
		Archetype: persona.ResolveArchetype(in.ArchetypeOrTraits),
		Context:   persona.MapStage(in.RelationshipStage),
	}
	res.Category = e.classifier.Classify(ctx, in.RecentTurns, in.Tier)

	if res.Category == category.ExplicitInitiative && !in.AdultAllowed {
		zap.S().Debugw("explicit initiative downgraded", "to", category.Intensification)
		res.Category = category.Intensification
	}

	rec, ok, err := e.selector.Select(ctx, res.Archetype, res.Context, res.Category, in.AdultAllowed)
	if err != nil {
		return res, false, fmt.Errorf("failed to select prompt: %w", err)
	}
	if !ok {
		return res, false, nil
	}
	res.RecordID = rec.ID

	rendered := e.templates.Render(ctx, rec.Body, res.Context, in.AdultAllowed, in.ExcludeRecentGameIDs)
	res.GameIDs = rendered.GameIDs

	var origin dialect.Origin
	res.Text, origin = dialect.Adapt(rendered.Text, in.Origin)
	res.OriginKind = origin.Kind

	zap.S().Infow("prompt resolved",
		"id", res.RecordID,
		"archetype", res.Archetype,
		"context", res.Context,
		"category", res.Category,
		"games", len(res.GameIDs),
		"origin", res.OriginKind,
		"took", time.Since(start),
	)
	return res, true, nil
}
