package category

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Completer sends a single system+user exchange to a chat model and returns
// the reply text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// llmWindow is how many recent turns are shown to the model.
const llmWindow = 10

const llmSystemPrompt = `You classify the state of a chat between a user and a companion character.
Decide which conversational move the character should make next.

Categories:
- greeting: the conversation is just starting or the user only said hello
- topic-opener: the conversation is neutral and needs a new topic
- activity-proposal: the user is bored, terse or disengaged and a game or activity would help
- emotional-support: the user is sad, stressed, lonely or hurting
- intensification: the user is flirting or showing affection and the character can deepen the connection
- explicit-initiative: the user is being sexually explicit

Reply with exactly one category name from the list and nothing else.`

var (
	codeFenceRegex = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
	// replyNames holds canonical names and aliases, longest first, so that a
	// substring scan prefers "explicit-initiative" over shorter overlaps.
	replyNames = buildReplyNames()
)

func buildReplyNames() []string {
	var names []string
	for _, c := range All {
		names = append(names, string(c))
	}
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}

// LLMClassifier is the paid-tier classifier backed by a chat model.
type LLMClassifier struct {
	completer Completer
}

// NewLLMClassifier wraps a chat completer as a Classifier.
func NewLLMClassifier(c Completer) *LLMClassifier {
	return &LLMClassifier{completer: c}
}

// Classify implements Classifier.
func (l *LLMClassifier) Classify(ctx context.Context, turns []string) (MoveCategory, error) {
	if len(turns) == 0 {
		return "", ErrEmptyConversation
	}

	window := turns
	if len(window) > llmWindow {
		window = window[len(window)-llmWindow:]
	}

	var sb strings.Builder
	sb.WriteString("Recent user messages, oldest first:\n")
	for i, t := range window {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, strings.TrimSpace(t))
	}
	sb.WriteString("\nCategory:")

	reply, err := l.completer.Complete(ctx, llmSystemPrompt, sb.String())
	if err != nil {
		return "", err
	}
	return ParseReply(reply)
}

// ParseReply extracts a category from a model reply. An exact name (or
// alias) wins; otherwise the longest name found inside the reply is used.
func ParseReply(reply string) (MoveCategory, error) {
	text := strings.TrimSpace(reply)
	if m := codeFenceRegex.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	text = strings.Trim(text, " \t\r\n\"'`.*")

	if c, err := Parse(text); err == nil {
		return c, nil
	}

	lower := strings.ToLower(text)
	for _, name := range replyNames {
		if strings.Contains(lower, name) {
			return Parse(name)
		}
	}
	return "", fmt.Errorf("%w: %q", ErrMalformedResponse, reply)
}
