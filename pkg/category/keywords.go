package category

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"promptpick/pkg/textmatch"
)

const (
	// keywordWindow is how many of the most recent turns the heuristic reads.
	keywordWindow = 5
	// shortTurnRunes is the length under which a turn counts as short.
	shortTurnRunes = 30
	// shortStreakLen is how many consecutive short turns signal boredom.
	shortStreakLen = 3
	// ellipsisThreshold is how many "..." in the window signal apathy.
	ellipsisThreshold = 2
)

var explicitKeywords = []string{
	"sex", "sexual", "fuck", "fucking", "horny", "naked", "nude", "nudes",
	"cum", "dick", "cock", "pussy", "tits", "boobs", "blowjob", "strip for me",
	"take it off", "in bed with", "touch yourself",
	"sexo", "coger", "follar", "desnuda", "desnudo", "cachondo", "cachonda",
	"🍆", "🍑", "💦", "👅", "😈",
}

var affectionKeywords = []string{
	"i like you", "i love you", "love you", "miss you", "crush on you",
	"you're cute", "you are cute", "so cute", "beautiful", "gorgeous",
	"handsome", "you're pretty", "you are pretty", "you look pretty",
	"kiss", "kisses", "hug", "hugs", "cuddle", "hold you", "go on a date",
	"on a date", "a date with", "date night", "flirt", "flirting", "babe",
	"darling", "sweetheart",
	"me gustas", "te quiero", "te amo", "beso", "abrazo",
	"😍", "🥰", "😘", "💕", "💖", "💗", "❤️", "💋",
}

var boredomKeywords = []string{
	"bored", "boring", "nothing to do", "so bored", "whatever", "meh",
	"idk", "dunno", "entertain me", "aburrido", "aburrida", "me aburro",
	"🥱", "😐", "😑", "🙄",
}

var distressKeywords = []string{
	"sad", "depressed", "depression", "lonely", "alone", "anxious", "anxiety",
	"stressed", "stress", "crying", "cried", "hurt", "worried", "scared",
	"terrible", "awful", "bad day", "hate my life", "heartbroken", "miserable",
	"triste", "deprimido", "deprimida", "ansiedad", "llorando", "soledad",
	"😢", "😭", "😔", "😞", "💔", "🥺",
}

var greetingKeywords = []string{
	"hi", "hello", "hey", "heya", "hiya", "howdy", "sup", "good morning",
	"good afternoon", "good evening", "hola", "buenos días", "buenas", "👋",
}

// KeywordClassifier is the zero-cost local heuristic. It never fails and is
// deterministic for a given input.
type KeywordClassifier struct{}

// NewKeywordClassifier returns the keyword heuristic.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Classify implements Classifier. The error is always nil.
func (k *KeywordClassifier) Classify(_ context.Context, turns []string) (MoveCategory, error) {
	return k.Categorize(turns), nil
}

// Categorize applies the heuristic in priority order: explicit, affection,
// boredom (short-turn streak, repeated ellipses or boredom words), distress,
// a lone greeting, and finally the topic-opener default.
func (k *KeywordClassifier) Categorize(turns []string) MoveCategory {
	window := turns
	if len(window) > keywordWindow {
		window = window[len(window)-keywordWindow:]
	}
	text := strings.ToLower(strings.Join(window, " "))

	if kw, ok := textmatch.First(text, explicitKeywords); ok {
		zap.S().Debugw("keyword category", "category", ExplicitInitiative, "match", kw)
		return ExplicitInitiative
	}
	if kw, ok := textmatch.First(text, affectionKeywords); ok {
		zap.S().Debugw("keyword category", "category", Intensification, "match", kw)
		return Intensification
	}
	if streak := shortStreak(window); streak >= shortStreakLen {
		zap.S().Debugw("keyword category", "category", ActivityProposal, "short_streak", streak)
		return ActivityProposal
	}
	if n := strings.Count(text, "...") + strings.Count(text, "…"); n >= ellipsisThreshold {
		zap.S().Debugw("keyword category", "category", ActivityProposal, "ellipses", n)
		return ActivityProposal
	}
	if kw, ok := textmatch.First(text, boredomKeywords); ok {
		zap.S().Debugw("keyword category", "category", ActivityProposal, "match", kw)
		return ActivityProposal
	}
	if kw, ok := textmatch.First(text, distressKeywords); ok {
		zap.S().Debugw("keyword category", "category", EmotionalSupport, "match", kw)
		return EmotionalSupport
	}
	if len(turns) == 1 {
		if _, ok := textmatch.First(text, greetingKeywords); ok {
			return Greeting
		}
	}
	return TopicOpener
}

// shortStreak counts consecutive short turns ending at the most recent one.
func shortStreak(turns []string) int {
	streak := 0
	for i := len(turns) - 1; i >= 0; i-- {
		if utf8.RuneCountInString(strings.TrimSpace(turns[i])) >= shortTurnRunes {
			break
		}
		streak++
	}
	return streak
}
