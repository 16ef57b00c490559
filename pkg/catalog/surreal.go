package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"promptpick/pkg/category"
	"promptpick/pkg/persona"
	"promptpick/pkg/surreal"
)

const promptTable = "prompt"

var promptFields = []string{"slug", "archetype", "context", "category", "adult_only", "body"}

type surrealPrompt struct {
	Slug      string `json:"slug"`
	Archetype string `json:"archetype"`
	Context   string `json:"context"`
	Category  string `json:"category"`
	AdultOnly bool   `json:"adult_only"`
	Body      string `json:"body"`
}

// Surreal serves the catalog from a SurrealDB "prompt" table.
type Surreal struct {
	client *surreal.Client
}

func NewSurreal(client *surreal.Client) *Surreal {
	return &Surreal{client: client}
}

func (s *Surreal) Find(ctx context.Context, a persona.Archetype, c persona.RelationshipContext, m category.MoveCategory, adultAllowed bool) ([]Record, error) {
	filter := map[string]interface{}{
		"archetype": string(a),
		"context":   string(c),
		"category":  string(m),
	}
	if !adultAllowed {
		filter["adult_only"] = false
	}

	rows, err := surreal.SelectWhere[surrealPrompt](ctx, s.client, promptTable, promptFields, filter)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		r, err := row.toRaw().toRecord()
		if err != nil {
			zap.S().Warnw("skipping invalid catalog row", "slug", row.Slug, "error", err)
			continue
		}
		if r.Matches(a, c, m, adultAllowed) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Seed upserts records into the prompt table, keyed by slug.
func (s *Surreal) Seed(ctx context.Context, records []Record) error {
	for _, r := range records {
		err := s.client.Exec(ctx,
			"UPSERT type::thing($tb, $slug) CONTENT $data;",
			map[string]interface{}{
				"tb":   promptTable,
				"slug": r.ID,
				"data": surrealPrompt{
					Slug:      r.ID,
					Archetype: string(r.Archetype),
					Context:   string(r.Context),
					Category:  string(r.Category),
					AdultOnly: r.AdultOnly,
					Body:      r.Body,
				},
			})
		if err != nil {
			return fmt.Errorf("failed to seed prompt %s: %w", r.ID, err)
		}
	}
	zap.S().Infow("catalog seeded", "records", len(records))
	return nil
}

func (p surrealPrompt) toRaw() rawRecord {
	return rawRecord{
		ID:        p.Slug,
		Archetype: p.Archetype,
		Context:   p.Context,
		Category:  p.Category,
		AdultOnly: p.AdultOnly,
		Body:      p.Body,
	}
}
