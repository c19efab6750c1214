package quiz

import (
	"context"
	"slices"
	"strings"

	"github.com/NilsMeier1812/DDF5/internal/models"
)

// Announce registers a connecting player. Unknown names get a fresh code
// the host has to hand out; verified players are logged in right away.
func (s *service) Announce(ctx context.Context, input *AnnounceInput) (*AnnounceOutput, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	if input == nil {
		return nil, ErrInvalidName
	}

	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}

	p, ok := s.session.Players[name]
	if !ok {
		p = s.newPlayer(name)
		p.Online = true
		s.session.Players[name] = p

		s.broadcaster.NotifyPlayerJoined(&PlayerJoined{Name: name, Code: p.Code})
		s.commit()

		return &AnnounceOutput{
			Name:  name,
			IsNew: true,
		}, nil
	}

	p.Online = true
	output := &AnnounceOutput{
		Name: name,
	}

	if p.Verified {
		output.LoginSucceeded = true
		if p.HasAnswered {
			output.AnswerConfirmed = true
			output.Answer = p.Answer
		}
	} else {
		s.broadcaster.NotifyPlayerJoined(&PlayerJoined{Name: name, Code: p.Code})
	}

	s.commit()

	return output, nil
}

// Login verifies a player's code. A failure changes nothing and may be
// retried freely.
func (s *service) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	if input == nil {
		return nil, ErrUnknownPlayer
	}

	name := strings.TrimSpace(input.Name)
	p, ok := s.session.Players[name]
	if !ok {
		return nil, ErrUnknownPlayer
	}

	if strings.TrimSpace(p.Code) != strings.TrimSpace(input.Code) {
		return nil, ErrWrongCode
	}

	p.Verified = true
	p.Online = true
	s.commit()

	output := &LoginOutput{
		Name: name,
	}
	if p.HasAnswered {
		output.AnswerConfirmed = true
		output.Answer = p.Answer
	}

	return output, nil
}

// HostCreatePlayer creates a player who has not connected yet. An existing
// name only repeats the code to the host.
func (s *service) HostCreatePlayer(ctx context.Context, input *HostCreatePlayerInput) (*HostCreatePlayerOutput, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	if input == nil {
		return nil, ErrInvalidName
	}

	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}

	p, ok := s.session.Players[name]
	if ok {
		s.broadcaster.NotifyPlayerJoined(&PlayerJoined{Name: name, Code: p.Code, IsManual: true})
		return &HostCreatePlayerOutput{
			Name: name,
			Code: p.Code,
		}, nil
	}

	p = s.newPlayer(name)
	s.session.Players[name] = p

	s.broadcaster.NotifyPlayerJoined(&PlayerJoined{Name: name, Code: p.Code, IsManual: true})
	s.commit()

	return &HostCreatePlayerOutput{
		Name:  name,
		Code:  p.Code,
		IsNew: true,
	}, nil
}

func (s *service) newPlayer(name string) *models.Player {
	return &models.Player{
		Name:  name,
		Code:  s.randomizer.AccessCode(),
		Lives: s.livesInitial,
	}
}

// SubmitAnswer stores an answer when every gate lets it through
func (s *service) SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	if input == nil {
		return nil, ErrUnknownPlayer
	}

	p, ok := s.session.Players[strings.TrimSpace(input.Name)]
	if !ok {
		return nil, ErrUnknownPlayer
	}

	round := s.session.Round
	switch {
	case !round.Type.Answerable():
		return nil, ErrNotAnswerable
	case !round.AnsweringOpen:
		return nil, ErrAnsweringClosed
	case !p.Verified:
		return nil, ErrNotVerified
	case p.Lives <= 0:
		return nil, ErrNoLives
	case round.InputBlocked:
		return nil, ErrInputBlocked
	case !round.Targets(p.Name):
		return nil, ErrNotTargeted
	}

	answer, err := canonicalAnswer(round, input.Answer)
	if err != nil {
		return nil, err
	}

	p.Answer = answer
	p.HasAnswered = true
	s.commit()

	return &SubmitAnswerOutput{
		Answer: answer,
	}, nil
}

// canonicalAnswer checks an answer against the round's payload
func canonicalAnswer(round *models.Round, answer any) (any, error) {
	if models.IsEmptyAnswer(answer) {
		return nil, ErrEmptyAnswer
	}

	switch p := round.Payload.(type) {
	case *models.TextPayload:
		text, ok := answer.(string)
		if !ok || strings.TrimSpace(text) == "" {
			return nil, ErrInvalidAnswer
		}
		return strings.TrimSpace(text), nil

	case *models.MultipleChoicePayload:
		choice, ok := answer.(string)
		if !ok || !slices.Contains(p.Options, choice) {
			return nil, ErrInvalidAnswer
		}
		return choice, nil

	case *models.PlayerVotePayload:
		vote, ok := answer.(string)
		if !ok || (len(p.Candidates) > 0 && !slices.Contains(p.Candidates, vote)) {
			return nil, ErrInvalidAnswer
		}
		return vote, nil

	case *models.NumericRangePayload:
		n, ok := toNumber(answer)
		if !ok || n < p.Min || n > p.Max {
			return nil, ErrInvalidAnswer
		}
		return n, nil

	case *models.SequencePayload:
		if _, ok := answer.([]any); !ok {
			return nil, ErrInvalidAnswer
		}

	case *models.MatchingPayload:
		if _, ok := answer.(map[string]any); !ok {
			return nil, ErrInvalidAnswer
		}
	}

	return answer, nil
}

// Disconnect marks a player offline once its last connection is gone
func (s *service) Disconnect(ctx context.Context, input *DisconnectInput) (*DisconnectOutput, error) {
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

	if p.Online {
		p.Online = false
		s.commit()
	}

	return &DisconnectOutput{}, nil
}
