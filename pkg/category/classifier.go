package category

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoConfidentMatch is returned when a similarity classifier finds no
	// category above its threshold.
	ErrNoConfidentMatch = errors.New("no confident category match")
	// ErrMalformedResponse is returned when a model reply names no category.
	ErrMalformedResponse = errors.New("malformed classifier response")
	// ErrEmptyConversation is returned by classifiers that need at least one turn.
	ErrEmptyConversation = errors.New("empty conversation")
)

// Classifier maps recent conversation turns (oldest first) to a category.
type Classifier interface {
	Classify(ctx context.Context, turns []string) (MoveCategory, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, turns []string) (MoveCategory, error)

func (f ClassifierFunc) Classify(ctx context.Context, turns []string) (MoveCategory, error) {
	return f(ctx, turns)
}

// Chain tries each classifier in order and returns the first success. Each
// link is attempted exactly once.
type Chain []Classifier

func (c Chain) Classify(ctx context.Context, turns []string) (MoveCategory, error) {
	var errs []error
	for _, link := range c {
		if link == nil {
			continue
		}
		cat, err := link.Classify(ctx, turns)
		if err == nil {
			return cat, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", fmt.Errorf("empty classifier chain")
	}
	return "", errors.Join(errs...)
}
