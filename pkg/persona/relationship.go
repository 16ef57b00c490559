package persona

import (
	"fmt"
	"strings"
)

// RelationshipContext is the normalized stage of familiarity between the
// character and the user. Values are ordered from least to most intimate.
type RelationshipContext string

const (
	NewlyMet        RelationshipContext = "newly-met"
	CasualFriend    RelationshipContext = "casual-friend"
	CloseFriend     RelationshipContext = "close-friend"
	IntimatePartner RelationshipContext = "intimate-partner"
	ExplicitAdult   RelationshipContext = "explicit-adult-mode"
)

// Contexts lists every relationship context in ascending order.
var Contexts = []RelationshipContext{
	NewlyMet, CasualFriend, CloseFriend, IntimatePartner, ExplicitAdult,
}

// stageTable maps normalized stage labels to contexts. It covers the
// canonical names, the stage labels stored by older relationship records and
// the affection level names ("Familiar Face", "Soulmate", ...).
var stageTable = map[string]RelationshipContext{
	// canonical
	"newly-met":           NewlyMet,
	"casual-friend":       CasualFriend,
	"close-friend":        CloseFriend,
	"intimate-partner":    IntimatePartner,
	"explicit-adult-mode": ExplicitAdult,

	// stage labels
	"stranger":     NewlyMet,
	"new":          NewlyMet,
	"acquaintance": NewlyMet,
	"friend":       CasualFriend,
	"casual":       CasualFriend,
	"close":        CloseFriend,
	"best-friend":  CloseFriend,
	"intimate":     IntimatePartner,
	"partner":      IntimatePartner,
	"romantic":     IntimatePartner,
	"lover":        IntimatePartner,
	"dating":       IntimatePartner,
	"nsfw":         ExplicitAdult,
	"adult":        ExplicitAdult,
	"explicit":     ExplicitAdult,

	// affection levels
	"familiar-face":   NewlyMet,
	"good-friend":     CasualFriend,
	"soulmate":        IntimatePartner,
	"special-someone": IntimatePartner,
}

// MapStage maps a relationship-stage label to a context. Unknown labels
// degrade to NewlyMet.
func MapStage(label string) RelationshipContext {
	if ctx, ok := stageTable[normalizeLabel(label)]; ok {
		return ctx
	}
	return NewlyMet
}

// ParseContext validates a canonical context name.
func ParseContext(s string) (RelationshipContext, error) {
	norm := normalizeLabel(s)
	for _, c := range Contexts {
		if string(c) == norm {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown relationship context %q", s)
}

// Rank returns the position of the context in the familiarity order, or -1.
func (c RelationshipContext) Rank() int {
	for i, v := range Contexts {
		if v == c {
			return i
		}
	}
	return -1
}

func (c RelationshipContext) String() string {
	return string(c)
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", "-", " ", "-").Replace(s)
	return s
}
