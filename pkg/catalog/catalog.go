// Package catalog holds the prompt records the engine chooses from.
package catalog

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"promptpick/pkg/category"
	"promptpick/pkg/persona"
)

// Record is a single prompt template.
type Record struct {
	ID        string
	Archetype persona.Archetype
	Context   persona.RelationshipContext
	Category  category.MoveCategory
	AdultOnly bool
	Body      string
}

// Matches reports whether the record satisfies the lookup filter.
func (r Record) Matches(a persona.Archetype, c persona.RelationshipContext, m category.MoveCategory, adultAllowed bool) bool {
	return r.Archetype == a &&
		r.Context == c &&
		r.Category == m &&
		(!r.AdultOnly || adultAllowed)
}

// Catalog finds the records for an (archetype, context, category) key.
// Adult-only records are omitted unless adultAllowed. An empty result is
// not an error.
type Catalog interface {
	Find(ctx context.Context, a persona.Archetype, c persona.RelationshipContext, m category.MoveCategory, adultAllowed bool) ([]Record, error)
}

type key struct {
	archetype persona.Archetype
	context   persona.RelationshipContext
	category  category.MoveCategory
}

// Memory is an immutable in-memory catalog indexed by lookup key.
type Memory struct {
	index map[key][]Record
	size  int
}

// NewMemory indexes records. Records without an ID get a random one.
func NewMemory(records []Record) *Memory {
	m := &Memory{index: make(map[key][]Record)}
	for _, r := range records {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		k := key{r.Archetype, r.Context, r.Category}
		m.index[k] = append(m.index[k], r)
		m.size++
	}
	return m
}

func (m *Memory) Find(_ context.Context, a persona.Archetype, c persona.RelationshipContext, cat category.MoveCategory, adultAllowed bool) ([]Record, error) {
	var out []Record
	for _, r := range m.index[key{a, c, cat}] {
		if r.Matches(a, c, cat, adultAllowed) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Len returns the number of records.
func (m *Memory) Len() int {
	return m.size
}

// Records returns every record ordered by ID.
func (m *Memory) Records() []Record {
	out := make([]Record, 0, m.size)
	for _, rs := range m.index {
		out = append(out, rs...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type rawRecord struct {
	ID        string `yaml:"id"`
	Archetype string `yaml:"archetype"`
	Context   string `yaml:"context"`
	Category  string `yaml:"category"`
	AdultOnly bool   `yaml:"adult_only"`
	Body      string `yaml:"body"`
}

type rawCatalog struct {
	Prompts []rawRecord `yaml:"prompts"`
}

// ParseYAML decodes a catalog document. Archetype, context and category
// names are validated; legacy aliases are accepted.
func ParseYAML(data []byte) ([]Record, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	records := make([]Record, 0, len(raw.Prompts))
	for i, rr := range raw.Prompts {
		r, err := rr.toRecord()
		if err != nil {
			return nil, fmt.Errorf("prompt %d (%s): %w", i, rr.ID, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func (rr rawRecord) toRecord() (Record, error) {
	a, err := persona.ParseArchetype(rr.Archetype)
	if err != nil {
		return Record{}, err
	}
	c, err := persona.ParseContext(rr.Context)
	if err != nil {
		return Record{}, err
	}
	m, err := category.Parse(rr.Category)
	if err != nil {
		return Record{}, err
	}
	if rr.Body == "" {
		return Record{}, fmt.Errorf("empty body")
	}
	return Record{
		ID:        rr.ID,
		Archetype: a,
		Context:   c,
		Category:  m,
		AdultOnly: rr.AdultOnly,
		Body:      rr.Body,
	}, nil
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	records, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	m := NewMemory(records)
	zap.S().Infow("catalog loaded", "path", path, "records", m.Len())
	return m, nil
}
