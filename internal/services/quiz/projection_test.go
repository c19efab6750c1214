package quiz

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/NilsMeier1812/DDF5/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *models.Session {
	session := models.NewSession("session-1", time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC))
	session.Players = map[string]*models.Player{
		"Max":  {Name: "Max", Code: "1234", Lives: 3, Verified: true, Online: true, Answer: "Paris", HasAnswered: true},
		"Lena": {Name: "Lena", Code: "5678", Lives: 1, Verified: true, Answer: "Lyon", HasAnswered: true},
		"Anna": {Name: "Anna", Code: "9012", Lives: 3, Online: true, Answer: "Nice", HasAnswered: true},
	}
	session.Round = &models.Round{
		Type:            models.RoundTypeMultipleChoice,
		Question:        "Capital of France?",
		Payload:         &models.MultipleChoicePayload{Options: []string{"Nice", "Paris", "Lyon"}, AnswerKey: "Paris"},
		AnsweringOpen:   true,
		RevealedAnswers: []string{},
	}
	return session
}

func TestToPublicViewVisibility(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	names := []string{"Max", "Lena", "Anna"}

	for i := 0; i < 200; i++ {
		session := testSession()
		round := session.Round
		round.Revealed = rng.Intn(2) == 0
		round.AnsweringOpen = rng.Intn(2) == 0
		for _, name := range names {
			if rng.Intn(2) == 0 {
				round.RevealedAnswers = append(round.RevealedAnswers, name)
			}
		}

		view := ToPublicView(session)

		seen := map[string]*PublicPlayer{}
		for _, p := range view.Players {
			seen[p.Name] = p
		}

		for name, p := range session.Players {
			pp, ok := seen[name]
			if !p.Verified {
				assert.False(t, ok, "unverified %s must not be projected", name)
				continue
			}
			require.True(t, ok, "verified %s must be projected", name)

			if round.IsAnswerVisible(name) {
				assert.Equal(t, p.Answer, pp.Answer)
			} else {
				assert.Nil(t, pp.Answer, fmt.Sprintf("round %d: %s answer leaked", i, name))
			}
			assert.Equal(t, p.HasAnswered, pp.HasAnswered)
			assert.Equal(t, p.Lives, pp.Lives)
			assert.Equal(t, p.Online, pp.Online)
		}
	}
}

func TestToPublicViewHidesAnswerKeyAndCodes(t *testing.T) {
	session := testSession()

	data, err := json.Marshal(ToPublicView(session))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "1234")
	assert.NotContains(t, string(data), "9012")
	assert.NotContains(t, string(data), "Anna")
	assert.NotContains(t, string(data), `"answerKey":"Paris"`)

	session.Round.Revealed = true
	data, err = json.Marshal(ToPublicView(session))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"answerKey":"Paris"`)
}

func TestToPublicViewSortsPlayers(t *testing.T) {
	view := ToPublicView(testSession())

	require.Len(t, view.Players, 2)
	assert.Equal(t, "Lena", view.Players[0].Name)
	assert.Equal(t, "Max", view.Players[1].Name)
	assert.Equal(t, models.FirstRoundBlock, view.RoundBlock)
}

func TestToPublicViewOmitsUnverifiedNames(t *testing.T) {
	session := testSession()
	session.Round = &models.Round{
		Type:            models.RoundTypePlayerVote,
		Question:        "Who sings next?",
		Payload:         &models.PlayerVotePayload{Candidates: []string{"Anna", "Lena", "Max"}},
		RevealedAnswers: []string{"Max", "Anna"},
		TargetPlayers:   []string{"Anna", "Lena"},
	}

	view := ToPublicView(session)

	assert.Equal(t, []string{"Max"}, view.Round.RevealedAnswers)
	assert.Equal(t, []string{"Lena"}, view.Round.TargetPlayers)
	payload, ok := view.Round.Payload.(*models.PlayerVotePayload)
	require.True(t, ok)
	assert.Equal(t, []string{"Lena", "Max"}, payload.Candidates)

	encoded, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "Anna")

	// Host side still sees the full lists
	host := session.Round.Payload.(*models.PlayerVotePayload)
	assert.Len(t, host.Candidates, 3)
	assert.Len(t, session.Round.TargetPlayers, 2)
}

func TestToHostViewIsDetached(t *testing.T) {
	session := testSession()
	view := ToHostView(session)

	require.Len(t, view.Players, 3)
	assert.Equal(t, "9012", view.Players["Anna"].Code)
	assert.Equal(t, "Nice", view.Players["Anna"].Answer)

	session.Players["Max"].Lives = 0
	session.Round.RevealedAnswers = append(session.Round.RevealedAnswers, "Max")
	session.Round.AnsweringOpen = false

	assert.Equal(t, 3, view.Players["Max"].Lives)
	assert.Empty(t, view.Round.RevealedAnswers)
	assert.True(t, view.Round.AnsweringOpen)
}

func TestClampLives(t *testing.T) {
	s := &service{livesMin: 0, livesMax: 5}

	testCases := []struct {
		lives    int
		delta    int
		expected int
	}{
		{lives: 3, delta: 1, expected: 4},
		{lives: 3, delta: -3, expected: 0},
		{lives: 3, delta: -4, expected: 0},
		{lives: 5, delta: 1, expected: 5},
		{lives: 0, delta: 0, expected: 0},
		{lives: 2, delta: int(^uint(0) >> 1), expected: 5},
		{lives: 2, delta: -int(^uint(0)>>1) - 1, expected: 0},
		{lives: 9, delta: 0, expected: 5},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d%+d", tc.lives, tc.delta), func(t *testing.T) {
			assert.Equal(t, tc.expected, s.clampLives(tc.lives, tc.delta))
		})
	}
}

func TestCanonicalAnswer(t *testing.T) {
	sequence := &models.Round{Type: models.RoundTypeSequence, Payload: &models.SequencePayload{Items: []string{"a", "b"}}}
	matching := &models.Round{Type: models.RoundTypeMatching, Payload: &models.MatchingPayload{Left: []string{"a"}, Right: []string{"b"}}}
	vote := &models.Round{Type: models.RoundTypePlayerVote, Payload: &models.PlayerVotePayload{Candidates: []string{"Max"}}}
	text := &models.Round{Type: models.RoundTypeText, Payload: &models.TextPayload{}}

	testCases := []struct {
		name     string
		round    *models.Round
		answer   any
		expected any
		err      error
	}{
		{name: "sequence list", round: sequence, answer: []any{"b", "a"}, expected: []any{"b", "a"}},
		{name: "sequence scalar", round: sequence, answer: "a", err: ErrInvalidAnswer},
		{name: "matching object", round: matching, answer: map[string]any{"a": "b"}, expected: map[string]any{"a": "b"}},
		{name: "matching empty", round: matching, answer: map[string]any{}, err: ErrEmptyAnswer},
		{name: "vote candidate", round: vote, answer: "Max", expected: "Max"},
		{name: "vote stranger", round: vote, answer: "Lena", err: ErrInvalidAnswer},
		{name: "text trimmed", round: text, answer: "  Brie ", expected: "Brie"},
		{name: "text number", round: text, answer: 4.0, err: ErrInvalidAnswer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := canonicalAnswer(tc.round, tc.answer)
			if tc.err != nil {
				assert.Equal(t, tc.err, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
