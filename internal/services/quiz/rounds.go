package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/NilsMeier1812/DDF5/internal/models"
	"github.com/NilsMeier1812/DDF5/internal/services/messaging"
)

// StartRound archives the current question and replaces the round with a
// fresh one built from the default template
func (s *service) StartRound(ctx context.Context, input *StartRoundInput) (*StartRoundOutput, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	if input == nil {
		return nil, ErrInvalidRound
	}

	round, err := s.buildRound(input)
	if err != nil {
		return nil, err
	}

	archived := s.archiveCurrentQuestion()

	s.session.Round = round
	s.clearAnswers()
	s.commit()

	return &StartRoundOutput{
		Round:    round.Clone(),
		Archived: archived,
	}, nil
}

func (s *service) buildRound(input *StartRoundInput) (*models.Round, error) {
	if !input.Type.Valid() || input.Type == models.RoundTypeWaiting {
		return nil, fmt.Errorf("%w: type %q", ErrInvalidRound, input.Type)
	}

	round := models.NewRound()
	round.Type = input.Type
	round.Question = strings.TrimSpace(input.Question)
	round.AnsweringOpen = input.Type.OpensAnswering()
	round.TargetPlayers = uniqueNames(input.TargetPlayers)
	round.StartedAt = s.clock.Now()

	switch input.Type {
	case models.RoundTypeText:
		round.Payload = &models.TextPayload{AnswerKey: keyString(input.CorrectAnswer)}

	case models.RoundTypeMultipleChoice:
		if len(input.Options) == 0 {
			return nil, fmt.Errorf("%w: multiple choice needs options", ErrInvalidRound)
		}
		round.Payload = &models.MultipleChoicePayload{
			Options:   s.randomizer.Shuffled(input.Options),
			AnswerKey: keyString(input.CorrectAnswer),
		}

	case models.RoundTypeSequence:
		if len(input.Items) == 0 {
			return nil, fmt.Errorf("%w: sequence needs items", ErrInvalidRound)
		}
		round.Payload = &models.SequencePayload{
			Items:     s.randomizer.Shuffled(input.Items),
			AnswerKey: slices.Clone(input.Items),
		}

	case models.RoundTypeMatching:
		if len(input.Pairs) == 0 {
			return nil, fmt.Errorf("%w: matching needs pairs", ErrInvalidRound)
		}
		left := make([]string, 0, len(input.Pairs))
		right := make([]string, 0, len(input.Pairs))
		key := make(map[string]string, len(input.Pairs))
		for _, pair := range input.Pairs {
			left = append(left, pair.Left)
			right = append(right, pair.Right)
			key[pair.Left] = pair.Right
		}
		// One draw for the round so every player sees the same arrangement
		round.Payload = &models.MatchingPayload{
			Left:      left,
			Right:     s.randomizer.Shuffled(right),
			AnswerKey: key,
		}

	case models.RoundTypeNumericRange:
		lo := coerceNumber(input.Min, DefaultRangeMin)
		hi := coerceNumber(input.Max, DefaultRangeMax)
		if lo > hi {
			lo, hi = hi, lo
		}
		payload := &models.NumericRangePayload{Min: lo, Max: hi}
		if key, ok := toNumber(input.CorrectAnswer); ok {
			payload.AnswerKey = &key
		}
		round.Payload = payload

	case models.RoundTypePlayerVote:
		candidates := uniqueNames(input.Candidates)
		if len(candidates) == 0 {
			candidates = s.verifiedNames()
		}
		round.Payload = &models.PlayerVotePayload{Candidates: candidates}

	case models.RoundTypeInfo:
		round.Payload = &models.InfoPayload{Body: input.Body}

	case models.RoundTypeMediaStream:
		round.Payload = &models.MediaPayload{
			URL:      input.MediaURL,
			MimeType: input.MediaMimeType,
			Data:     input.MediaData,
		}
	}

	return round, nil
}

// archiveCurrentQuestion appends the current question and its non-empty
// answers to the block history. It never touches the round itself.
func (s *service) archiveCurrentQuestion() bool {
	round := s.session.Round
	if !round.Type.Archivable() {
		return false
	}

	answers := make(map[string]any)
	for name, p := range s.session.Players {
		if p.HasAnswered && !models.IsEmptyAnswer(p.Answer) {
			answers[name] = p.Answer
		}
	}

	s.session.History = append(s.session.History, &models.QuestionRecord{
		Question:   round.Question,
		Type:       round.Type,
		AnswerKey:  round.AnswerKey(),
		Answers:    answers,
		ArchivedAt: s.clock.Now(),
	})

	return true
}

func (s *service) clearAnswers() {
	for _, p := range s.session.Players {
		p.ClearAnswer()
	}
}

// CloseAnswering stops submissions. Reveal state is left alone.
func (s *service) CloseAnswering(ctx context.Context, input *CloseAnsweringInput) (*CloseAnsweringOutput, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	s.session.Round.AnsweringOpen = false
	s.commit()

	return &CloseAnsweringOutput{}, nil
}

// ReopenAnswering accepts submissions again and hides every answer
func (s *service) ReopenAnswering(ctx context.Context, input *ReopenAnsweringInput) (*ReopenAnsweringOutput, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	round := s.session.Round
	if !round.Type.Answerable() {
		return nil, ErrNotAnswerable
	}

	round.AnsweringOpen = true
	round.Revealed = false
	round.RevealedAnswers = []string{}
	s.commit()

	return &ReopenAnsweringOutput{}, nil
}

// Reveal shows every answer and closes answering, whatever the prior state
func (s *service) Reveal(ctx context.Context, input *RevealInput) (*RevealOutput, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	s.session.Round.Revealed = true
	s.session.Round.AnsweringOpen = false
	s.commit()

	return &RevealOutput{}, nil
}

// RevealSingle adds a player to the reveal list once
func (s *service) RevealSingle(ctx context.Context, input *RevealSingleInput) (*RevealSingleOutput, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	if input == nil {
		return nil, ErrUnknownPlayer
	}

	if _, ok := s.session.Players[input.Name]; !ok {
		return nil, ErrUnknownPlayer
	}

	round := s.session.Round
	if slices.Contains(round.RevealedAnswers, input.Name) {
		return &RevealSingleOutput{AlreadyRevealed: true}, nil
	}

	round.RevealedAnswers = append(round.RevealedAnswers, input.Name)
	s.commit()

	return &RevealSingleOutput{}, nil
}

// AdvanceRoundBlock closes the current round-block: the question is
// archived, the block is handed to the append-only archive with a lives
// snapshot, and the next block starts waiting
func (s *service) AdvanceRoundBlock(ctx context.Context, input *AdvanceRoundBlockInput) (*AdvanceRoundBlockOutput, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	s.archiveCurrentQuestion()

	now := s.clock.Now()
	block := &models.RoundBlock{
		SessionID: s.session.ID,
		Number:    s.session.RoundBlock,
		Timestamp: now,
		Lives:     s.session.LivesSnapshot(),
		Questions: s.session.History,
	}
	s.persister.AppendRoundBlock(block)

	s.session.History = []*models.QuestionRecord{}
	s.session.RoundBlock++

	waiting := models.NewRound()
	waiting.Question = s.blockEndedMarker(ctx, block)
	waiting.StartedAt = now
	s.session.Round = waiting
	s.clearAnswers()

	s.commit()
	s.broadcaster.NotifyRoundBlockArchived(block)

	return &AdvanceRoundBlockOutput{
		Block:          block,
		NextRoundBlock: s.session.RoundBlock,
	}, nil
}

func (s *service) blockEndedMarker(ctx context.Context, block *models.RoundBlock) string {
	output, err := s.messaging.GetBlockEndedMessage(ctx, &messaging.GetBlockEndedMessageInput{
		BlockNumber:   block.Number,
		QuestionCount: len(block.Questions),
	})
	if err != nil {
		return fmt.Sprintf("Round block %d ended.", block.Number)
	}
	return output.Message
}

// ToggleMediaVisible shows or hides the media payload for players
func (s *service) ToggleMediaVisible(ctx context.Context, input *ToggleMediaVisibleInput) (*ToggleMediaVisibleOutput, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	if input != nil {
		s.session.Round.MediaVisible = input.Visible
		s.commit()
	}

	return &ToggleMediaVisibleOutput{}, nil
}

// ToggleInputBlocked blocks or unblocks submissions without touching answering
func (s *service) ToggleInputBlocked(ctx context.Context, input *ToggleInputBlockedInput) (*ToggleInputBlockedOutput, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	if input != nil {
		s.session.Round.InputBlocked = input.Blocked
		s.commit()
	}

	return &ToggleInputBlockedOutput{}, nil
}

// SetBulkAnswers stamps answers for offline or manual play. The host
// bypasses every submission gate; unknown names are ignored.
func (s *service) SetBulkAnswers(ctx context.Context, input *SetBulkAnswersInput) (*SetBulkAnswersOutput, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	output := &SetBulkAnswersOutput{
		Applied: []string{},
		Ignored: []string{},
	}
	if input == nil {
		return output, nil
	}

	for name, answer := range input.Answers {
		p, ok := s.session.Players[name]
		if !ok {
			output.Ignored = append(output.Ignored, name)
			continue
		}

		if models.IsEmptyAnswer(answer) {
			p.ClearAnswer()
		} else {
			p.Answer = answer
			p.HasAnswered = true
		}
		output.Applied = append(output.Applied, name)
	}

	sort.Strings(output.Applied)
	sort.Strings(output.Ignored)

	if len(output.Applied) > 0 {
		s.commit()
	}

	return output, nil
}

// ModifyLives adds delta to a player's lives, clamped to the configured range
func (s *service) ModifyLives(ctx context.Context, input *ModifyLivesInput) (*ModifyLivesOutput, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	if input == nil {
		return nil, ErrUnknownPlayer
	}

	p, ok := s.session.Players[input.Name]
	if !ok {
		return nil, ErrUnknownPlayer
	}

	p.Lives = s.clampLives(p.Lives, input.Delta)
	s.commit()

	return &ModifyLivesOutput{
		Lives: p.Lives,
	}, nil
}

// clampLives applies delta without overflowing on extreme values
func (s *service) clampLives(lives, delta int) int {
	lives = min(max(lives, s.livesMin), s.livesMax)
	switch {
	case delta > s.livesMax-lives:
		return s.livesMax
	case delta < s.livesMin-lives:
		return s.livesMin
	}
	return lives + delta
}

func (s *service) verifiedNames() []string {
	names := make([]string, 0, len(s.session.Players))
	for name, p := range s.session.Players {
		if p.Verified {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func uniqueNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || slices.Contains(out, name) {
			continue
		}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func keyString(v any) string {
	switch k := v.(type) {
	case nil:
		return ""
	case string:
		return k
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// toNumber accepts the shapes a decoded JSON payload can carry
func toNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func coerceNumber(v any, fallback float64) float64 {
	if n, ok := toNumber(v); ok {
		return n
	}
	return fallback
}
