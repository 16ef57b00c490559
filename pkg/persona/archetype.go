package persona

import (
	"fmt"
	"strings"

	"promptpick/pkg/textmatch"
)

// Archetype is the fixed personality style a character speaks with.
type Archetype string

const (
	Deferential  Archetype = "deferential"
	Assertive    Archetype = "assertive"
	Withdrawn    Archetype = "withdrawn"
	Outgoing     Archetype = "outgoing"
	Lighthearted Archetype = "lighthearted"
	Formal       Archetype = "formal"
	Devoted      Archetype = "devoted"
	Utilitarian  Archetype = "utilitarian"
)

// DefaultArchetype is used when trait text matches no keyword set.
const DefaultArchetype = Outgoing

// Archetypes lists every archetype in declaration order.
var Archetypes = []Archetype{
	Deferential, Assertive, Withdrawn, Outgoing,
	Lighthearted, Formal, Devoted, Utilitarian,
}

// ==========================================
// TRAIT KEYWORDS
// ==========================================

type archetypeKeywords struct {
	Archetype Archetype
	Keywords  []string
}

// traitKeywords is checked top to bottom and the first archetype with a
// matching keyword wins. Strong, unambiguous styles come first so that a
// description like "shy but bossy" resolves to assertive rather than withdrawn.
var traitKeywords = []archetypeKeywords{
	{Assertive, []string{
		"dominant", "assertive", "bossy", "commanding", "confident", "controlling",
		"in charge", "takes charge", "leader", "domineering", "pushy", "dominante",
	}},
	{Deferential, []string{
		"submissive", "deferential", "obedient", "docile", "meek", "eager to please",
		"people pleaser", "compliant", "sumisa", "sumiso",
	}},
	{Devoted, []string{
		"romantic", "devoted", "loving", "affectionate", "clingy", "yandere",
		"hopeless romantic", "passionate", "romántica", "romántico",
	}},
	{Formal, []string{
		"serious", "formal", "stern", "reserved professional", "polite", "proper",
		"strict", "stoic", "seria", "serio",
	}},
	{Utilitarian, []string{
		"pragmatic", "practical", "logical", "analytical", "efficient", "rational",
		"no-nonsense", "realist", "pragmática", "pragmático",
	}},
	{Lighthearted, []string{
		"playful", "funny", "silly", "teasing", "goofy", "witty", "cheerful",
		"bubbly", "mischievous", "goofball", "fun-loving", "juguetona", "juguetón",
	}},
	{Withdrawn, []string{
		"shy", "introvert", "introverted", "quiet", "timid", "awkward", "reserved",
		"loner", "anxious", "antisocial", "unfriendly", "aloof", "tímida", "tímido",
	}},
	{Outgoing, []string{
		"extrovert", "extroverted", "outgoing", "social", "energetic", "talkative",
		"friendly", "sociable", "extrovertida", "extrovertido",
	}},
}

// ParseArchetype validates an explicit archetype identifier. Matching is
// case-insensitive and accepts the identifiers used by older character
// records (e.g. "dominant", "introverted").
func ParseArchetype(s string) (Archetype, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, a := range Archetypes {
		if string(a) == norm {
			return a, nil
		}
	}
	if a, ok := legacyArchetypes[norm]; ok {
		return a, nil
	}
	return "", fmt.Errorf("unknown archetype %q", s)
}

var legacyArchetypes = map[string]Archetype{
	"submissive":  Deferential,
	"dominant":    Assertive,
	"introverted": Withdrawn,
	"extroverted": Outgoing,
	"playful":     Lighthearted,
	"serious":     Formal,
	"romantic":    Devoted,
	"pragmatic":   Utilitarian,
}

// ResolveArchetype returns the archetype for either an explicit identifier
// or a free-text trait description. It never fails: unmatched text yields
// DefaultArchetype.
func ResolveArchetype(archetypeOrTraits string) Archetype {
	if a, err := ParseArchetype(archetypeOrTraits); err == nil {
		return a
	}

	lower := strings.ToLower(archetypeOrTraits)
	for _, entry := range traitKeywords {
		if _, ok := textmatch.First(lower, entry.Keywords); ok {
			return entry.Archetype
		}
	}
	return DefaultArchetype
}

func (a Archetype) String() string {
	return string(a)
}
