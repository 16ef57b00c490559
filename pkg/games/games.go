// Package games suggests activities the character can propose, filtered by
// relationship intimacy and adult permission, avoiding recently used ones.
package games

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"promptpick/pkg/persona"
)

// Category groups games by tone.
type Category string

const (
	Casual       Category = "casual"
	Trivia       Category = "trivia"
	Creative     Category = "creative"
	Spicy        Category = "spicy"
	Sexual       Category = "sexual"
	Conversation Category = "conversation"
	Challenge    Category = "challenge"
)

// IntimacyTier is the minimum closeness a game needs. Tiers are ordered.
type IntimacyTier int

const (
	Acquaintance IntimacyTier = iota + 1
	Friend
	CloseFriend
	Intimate
)

func (t IntimacyTier) String() string {
	switch t {
	case Acquaintance:
		return "acquaintance"
	case Friend:
		return "friend"
	case CloseFriend:
		return "close-friend"
	case Intimate:
		return "intimate"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// TierFor maps a relationship context to the game intimacy tier.
func TierFor(c persona.RelationshipContext) IntimacyTier {
	switch c {
	case persona.CasualFriend:
		return Friend
	case persona.CloseFriend:
		return CloseFriend
	case persona.IntimatePartner, persona.ExplicitAdult:
		return Intimate
	default:
		return Acquaintance
	}
}

// Game is a dictionary entry.
type Game struct {
	ID        string
	Name      string
	Category  Category
	AdultOnly bool
	MinTier   IntimacyTier
}

// Suggestion is what callers receive: an identifier to track repeats and
// the text shown to the model.
type Suggestion struct {
	ID   string
	Name string
}

// Service samples game suggestions.
type Service interface {
	Sample(ctx context.Context, count int, adultAllowed bool, tier IntimacyTier, exclude []string) ([]Suggestion, error)
}

// CategoriesFor returns the game categories appropriate at a tier.
func CategoriesFor(tier IntimacyTier, adultAllowed bool) []Category {
	switch {
	case adultAllowed && tier >= CloseFriend:
		return []Category{Casual, Trivia, Creative, Spicy, Sexual, Conversation}
	case tier >= CloseFriend:
		return []Category{Casual, Trivia, Creative, Spicy, Conversation, Challenge}
	case tier == Friend:
		return []Category{Casual, Trivia, Creative, Conversation, Challenge}
	default:
		return []Category{Casual, Trivia, Conversation}
	}
}

// Dictionary is an in-memory Service over a fixed game list.
type Dictionary struct {
	games []Game

	mu  sync.Mutex
	rng *rand.Rand
}

// NewDictionary builds a dictionary over games. IDs are derived from names
// where missing. rng must not be nil.
func NewDictionary(games []Game, rng *rand.Rand) *Dictionary {
	out := make([]Game, len(games))
	for i, g := range games {
		if g.ID == "" {
			g.ID = Slug(g.Name)
		}
		if g.MinTier == 0 {
			g.MinTier = Acquaintance
		}
		out[i] = g
	}
	return &Dictionary{games: out, rng: rng}
}

// NewDefaultDictionary returns the built-in game dictionary.
func NewDefaultDictionary(rng *rand.Rand) *Dictionary {
	return NewDictionary(builtin, rng)
}

// Games returns a copy of the dictionary entries.
func (d *Dictionary) Games() []Game {
	return append([]Game(nil), d.games...)
}

// Sample returns up to count distinct suggestions. Excluded IDs, adult-only
// games without permission, and games above the tier are never returned;
// when too few games remain, the tier's category restriction is dropped.
func (d *Dictionary) Sample(ctx context.Context, count int, adultAllowed bool, tier IntimacyTier, exclude []string) ([]Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, nil
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	allowed := make(map[Category]struct{})
	for _, c := range CategoriesFor(tier, adultAllowed) {
		allowed[c] = struct{}{}
	}

	var eligible, relaxed []Game
	for _, g := range d.games {
		if g.AdultOnly && !adultAllowed {
			continue
		}
		if g.MinTier > tier {
			continue
		}
		if _, ok := excluded[g.ID]; ok {
			continue
		}
		relaxed = append(relaxed, g)
		if _, ok := allowed[g.Category]; ok {
			eligible = append(eligible, g)
		}
	}
	if len(eligible) < count {
		zap.S().Debugw("relaxing game categories", "tier", tier, "eligible", len(eligible), "relaxed", len(relaxed))
		eligible = relaxed
	}

	d.mu.Lock()
	d.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	d.mu.Unlock()

	if count > len(eligible) {
		count = len(eligible)
	}
	out := make([]Suggestion, count)
	for i := range out {
		out[i] = Suggestion{ID: eligible[i].ID, Name: eligible[i].Name}
	}
	return out, nil
}

// Format renders suggestions as a numbered list, one per line.
func Format(suggestions []Suggestion) string {
	lines := make([]string, len(suggestions))
	for i, s := range suggestions {
		lines[i] = fmt.Sprintf("%d. %s", i+1, s.Name)
	}
	return strings.Join(lines, "\n")
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives a stable identifier from a game name.
func Slug(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
