package quiz

import (
	"slices"
	"sort"
	"time"

	"github.com/NilsMeier1812/DDF5/internal/models"
)

// PublicPlayer is a verified player as every observer sees it
type PublicPlayer struct {
	Name        string `json:"name"`
	Lives       int    `json:"lives"`
	HasAnswered bool   `json:"hasAnswered"`
	Online      bool   `json:"online"`

	// Answer is nil unless the round revealed it
	Answer any `json:"answer"`
}

// PublicRound is the round without unrevealed answer keys or hidden media
type PublicRound struct {
	Type            models.RoundType    `json:"type"`
	Question        string              `json:"question"`
	Payload         models.RoundPayload `json:"payload"`
	AnsweringOpen   bool                `json:"answeringOpen"`
	Revealed        bool                `json:"revealed"`
	RevealedAnswers []string            `json:"revealedAnswers"`
	InputBlocked    bool                `json:"inputBlocked"`
	MediaVisible    bool                `json:"mediaVisible"`
	TargetPlayers   []string            `json:"targetPlayers,omitempty"`
	StartedAt       time.Time           `json:"startedAt"`
}

// PublicView is the projection sent to every observer
type PublicView struct {
	Players    []*PublicPlayer `json:"players"`
	Round      *PublicRound    `json:"round"`
	RoundBlock int             `json:"roundBlock"`
}

// HostView is the projection sent to host observers
type HostView struct {
	SessionID  string                    `json:"sessionId"`
	Players    map[string]*models.Player `json:"players"`
	Round      *models.Round             `json:"round"`
	History    []*models.QuestionRecord  `json:"history"`
	RoundBlock int                       `json:"roundBlock"`
}

// ToPublicView projects the session for non-host observers. Unverified
// players are left out entirely.
func ToPublicView(session *models.Session) *PublicView {
	round := session.Round

	players := make([]*PublicPlayer, 0, len(session.Players))
	for _, p := range session.Players {
		if !p.Verified {
			continue
		}

		pp := &PublicPlayer{
			Name:        p.Name,
			Lives:       p.Lives,
			HasAnswered: p.HasAnswered,
			Online:      p.Online,
		}
		if round.IsAnswerVisible(p.Name) {
			pp.Answer = p.Answer
		}
		players = append(players, pp)
	}

	sort.Slice(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})

	return &PublicView{
		Players: players,
		Round: &PublicRound{
			Type:            round.Type,
			Question:        round.Question,
			Payload:         publicPayload(session),
			AnsweringOpen:   round.AnsweringOpen,
			Revealed:        round.Revealed,
			RevealedAnswers: verifiedOnly(session, round.RevealedAnswers),
			InputBlocked:    round.InputBlocked,
			MediaVisible:    round.MediaVisible,
			TargetPlayers:   verifiedOnly(session, round.TargetPlayers),
			StartedAt:       round.StartedAt,
		},
		RoundBlock: session.RoundBlock,
	}
}

// ToHostView projects the whole session, codes and unrevealed answers included
func ToHostView(session *models.Session) *HostView {
	players := make(map[string]*models.Player, len(session.Players))
	for name, p := range session.Players {
		cp := *p
		players[name] = &cp
	}

	return &HostView{
		SessionID:  session.ID,
		Players:    players,
		Round:      session.Round.Clone(),
		History:    slices.Clone(session.History),
		RoundBlock: session.RoundBlock,
	}
}

// verifiedOnly keeps the names of verified players, in order. The result
// is never nil so an empty list still encodes as [].
func verifiedOnly(session *models.Session, names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if p, ok := session.Players[name]; ok && p.Verified {
			out = append(out, name)
		}
	}
	return out
}

// publicPayload drops answer keys until the round is revealed, media
// until it is made visible and vote candidates that are not verified
func publicPayload(session *models.Session) models.RoundPayload {
	round := session.Round
	switch p := round.Payload.(type) {
	case *models.TextPayload:
		if round.Revealed {
			return p
		}
		return &models.TextPayload{}
	case *models.MultipleChoicePayload:
		if round.Revealed {
			return p
		}
		return &models.MultipleChoicePayload{Options: p.Options}
	case *models.SequencePayload:
		if round.Revealed {
			return p
		}
		return &models.SequencePayload{Items: p.Items}
	case *models.MatchingPayload:
		if round.Revealed {
			return p
		}
		return &models.MatchingPayload{Left: p.Left, Right: p.Right}
	case *models.NumericRangePayload:
		if round.Revealed {
			return p
		}
		return &models.NumericRangePayload{Min: p.Min, Max: p.Max}
	case *models.MediaPayload:
		if round.MediaVisible {
			return p
		}
		return &models.MediaPayload{}
	case *models.PlayerVotePayload:
		return &models.PlayerVotePayload{Candidates: verifiedOnly(session, p.Candidates)}
	case nil:
		return models.NewPayload(round.Type)
	}
	return round.Payload
}
