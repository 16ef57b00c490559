package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptpick/pkg/category"
	"promptpick/pkg/persona"
)

func loadTestCatalog(t *testing.T) *Memory {
	t.Helper()
	m, err := LoadFile(filepath.Join("testdata", "catalog.yml"))
	require.NoError(t, err)
	return m
}

func TestLoadFile(t *testing.T) {
	m := loadTestCatalog(t)
	assert.Equal(t, 7, m.Len())

	records := m.Records()
	require.Len(t, records, 7)
	for _, r := range records {
		assert.NotEmpty(t, r.ID)
		assert.NotEmpty(t, r.Body)
	}
}

func TestFind_LegacyNamesNormalized(t *testing.T) {
	m := loadTestCatalog(t)

	got, err := m.Find(context.Background(), persona.Assertive, persona.NewlyMet, category.TopicOpener, false)
	require.NoError(t, err)
	require.Len(t, got, 3)

	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	assert.ElementsMatch(t, []string{"assertive-topic-1", "assertive-topic-2", "assertive-topic-3"}, ids)
}

func TestFind_AdultGating(t *testing.T) {
	m := loadTestCatalog(t)
	ctx := context.Background()

	got, err := m.Find(ctx, persona.Devoted, persona.IntimatePartner, category.ExplicitInitiative, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "devoted-intense", got[0].ID)

	got, err = m.Find(ctx, persona.Devoted, persona.IntimatePartner, category.ExplicitInitiative, true)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFind_NoMatchIsNotAnError(t *testing.T) {
	m := loadTestCatalog(t)
	got, err := m.Find(context.Background(), persona.Withdrawn, persona.ExplicitAdult, category.Greeting, true)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "prompts: [\n"},
		{"bad archetype", "prompts:\n  - archetype: grumpy\n    context: newly-met\n    category: greeting\n    body: hi\n"},
		{"bad context", "prompts:\n  - archetype: formal\n    context: married\n    category: greeting\n    body: hi\n"},
		{"bad category", "prompts:\n  - archetype: formal\n    context: newly-met\n    category: farewell\n    body: hi\n"},
		{"empty body", "prompts:\n  - archetype: formal\n    context: newly-met\n    category: greeting\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestRecordMatches(t *testing.T) {
	r := Record{Archetype: persona.Formal, Context: persona.CloseFriend, Category: category.Greeting, AdultOnly: true}
	assert.False(t, r.Matches(persona.Formal, persona.CloseFriend, category.Greeting, false))
	assert.True(t, r.Matches(persona.Formal, persona.CloseFriend, category.Greeting, true))
	assert.False(t, r.Matches(persona.Assertive, persona.CloseFriend, category.Greeting, true))
}

func TestShippedCatalogParses(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "prompts.yml"))
	require.NoError(t, err)

	records, err := ParseYAML(data)
	require.NoError(t, err)
	m := NewMemory(records)

	// every archetype has a newly-met greeting
	for _, a := range persona.Archetypes {
		got, err := m.Find(context.Background(), a, persona.NewlyMet, category.Greeting, false)
		require.NoError(t, err)
		assert.NotEmpty(t, got, "archetype %s", a)
	}
}
