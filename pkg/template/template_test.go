package template

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"promptpick/pkg/games"
	"promptpick/pkg/persona"
)

type MockGames struct {
	mock.Mock
}

func (m *MockGames) Sample(ctx context.Context, count int, adultAllowed bool, tier games.IntimacyTier, exclude []string) ([]games.Suggestion, error) {
	args := m.Called(ctx, count, adultAllowed, tier, exclude)
	s, _ := args.Get(0).([]games.Suggestion)
	return s, args.Error(1)
}

const gamesBody = "Propose one of these:\n{{GAMES_LIST}}\nKeep it short."

func TestRender_NoPlaceholderUnchanged(t *testing.T) {
	svc := new(MockGames)
	e := New(svc, 3)

	got := e.Render(context.Background(), "Just say hello.", persona.NewlyMet, false, []string{"hangman"})
	assert.Equal(t, "Just say hello.", got.Text)
	assert.Empty(t, got.GameIDs)
	svc.AssertNotCalled(t, "Sample", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRender_InjectsGames(t *testing.T) {
	svc := new(MockGames)
	exclude := []string{"hangman"}
	svc.On("Sample", mock.Anything, 3, false, games.Friend, exclude).Return([]games.Suggestion{
		{ID: "truth-or-dare", Name: "Truth or Dare"},
		{ID: "20-questions", Name: "20 Questions"},
		{ID: "hot-takes", Name: "Hot Takes"},
	}, nil).Once()

	e := New(svc, 0)
	got := e.Render(context.Background(), gamesBody, persona.CasualFriend, false, exclude)

	assert.Equal(t, "Propose one of these:\n1. Truth or Dare\n2. 20 Questions\n3. Hot Takes\nKeep it short.", got.Text)
	assert.Equal(t, []string{"truth-or-dare", "20-questions", "hot-takes"}, got.GameIDs)
	assert.Equal(t, []string{"hangman"}, exclude)
	svc.AssertExpectations(t)
}

func TestRender_DropsExcludedFromService(t *testing.T) {
	svc := new(MockGames)
	svc.On("Sample", mock.Anything, 3, true, games.Intimate, mock.Anything).Return([]games.Suggestion{
		{ID: "hangman", Name: "Hangman"},
		{ID: "hot-takes", Name: "Hot Takes"},
	}, nil)

	got := New(svc, 3).Render(context.Background(), gamesBody, persona.IntimatePartner, true, []string{"hangman"})
	assert.Equal(t, []string{"hot-takes"}, got.GameIDs)
	assert.NotContains(t, got.Text, "Hangman")
}

func TestRender_ServiceErrorFallsBack(t *testing.T) {
	svc := new(MockGames)
	svc.On("Sample", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("unavailable"))

	got := New(svc, 3).Render(context.Background(), gamesBody, persona.NewlyMet, false, nil)
	assert.NotContains(t, got.Text, GamesPlaceholder)
	assert.Contains(t, got.Text, fallbackGames)
	assert.Empty(t, got.GameIDs)
}

func TestRender_ExclusionPropertyWithDictionary(t *testing.T) {
	dict := games.NewDefaultDictionary(rand.New(rand.NewPCG(5, 5)))
	e := New(dict, 3)

	var exclude []string
	for round := 0; round < 5; round++ {
		got := e.Render(context.Background(), gamesBody, persona.CloseFriend, false, exclude)
		require.Len(t, got.GameIDs, 3)
		for _, id := range got.GameIDs {
			assert.NotContains(t, exclude, id)
		}
		exclude = append(exclude, got.GameIDs...)
		assert.Equal(t, 3, strings.Count(got.Text, "\n")-1)
	}
}
