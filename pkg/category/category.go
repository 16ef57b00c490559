// Package category decides which conversational move the character should
// make next, using a tiered strategy: cache, then a model-backed classifier
// chosen by subscription tier, then a local keyword heuristic.
package category

import (
	"fmt"
	"strings"
)

// MoveCategory is the conversational function the next message should serve.
type MoveCategory string

const (
	Greeting           MoveCategory = "greeting"
	TopicOpener        MoveCategory = "topic-opener"
	ActivityProposal   MoveCategory = "activity-proposal"
	EmotionalSupport   MoveCategory = "emotional-support"
	Intensification    MoveCategory = "intensification"
	ExplicitInitiative MoveCategory = "explicit-initiative"
)

// All lists every move category.
var All = []MoveCategory{
	Greeting, TopicOpener, ActivityProposal,
	EmotionalSupport, Intensification, ExplicitInitiative,
}

// aliases accepts the snake_case names older records and model replies use.
var aliases = map[string]MoveCategory{
	"conversation_starter": TopicOpener,
	"topic_opener":         TopicOpener,
	"game_proposal":        ActivityProposal,
	"activity_proposal":    ActivityProposal,
	"emotional_support":    EmotionalSupport,
	"escalation":           Intensification,
	"sexual_initiative":    ExplicitInitiative,
	"explicit_initiative":  ExplicitInitiative,
}

// Parse validates a category name. Canonical names and legacy aliases are
// accepted case-insensitively.
func Parse(s string) (MoveCategory, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, c := range All {
		if string(c) == norm {
			return c, nil
		}
	}
	if c, ok := aliases[norm]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown move category %q", s)
}

func (c MoveCategory) String() string {
	return string(c)
}

// Tier is a user subscription tier.
type Tier string

const (
	TierFree  Tier = "free"
	TierPlus  Tier = "plus"
	TierUltra Tier = "ultra"
)

// ParseTier maps a tier label to a Tier. Unknown labels are treated as free.
func ParseTier(s string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierPlus:
		return TierPlus
	case TierUltra:
		return TierUltra
	default:
		return TierFree
	}
}

// IsPaid reports whether the tier pays for model-based classification.
func (t Tier) IsPaid() bool {
	return t == TierPlus || t == TierUltra
}
