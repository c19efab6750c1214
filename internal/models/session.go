package models

import "time"

// FirstRoundBlock is the counter value of a fresh session
const FirstRoundBlock = 1

// Session is one complete game instance
type Session struct {
	// ID is the opaque, time-derived session identity
	ID string `json:"id"`

	// Players maps player name to player
	Players map[string]*Player `json:"players"`

	// Round is the single currently active round
	Round *Round `json:"round"`

	// History holds the archived questions of the current round-block
	History []*QuestionRecord `json:"history"`

	// RoundBlock is the monotonically increasing round-block counter
	RoundBlock int `json:"roundBlock"`

	// CreatedAt is when the session was created
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the session was last mutated
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSession returns an empty session with a waiting round
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:         id,
		Players:    make(map[string]*Player),
		Round:      NewRound(),
		History:    []*QuestionRecord{},
		RoundBlock: FirstRoundBlock,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Normalize fills collections a decoded document may lack
func (s *Session) Normalize() {
	if s.Players == nil {
		s.Players = make(map[string]*Player)
	}
	if s.Round == nil {
		s.Round = NewRound()
	}
	if s.Round.Payload == nil {
		s.Round.Payload = NewPayload(s.Round.Type)
	}
	if s.Round.RevealedAnswers == nil {
		s.Round.RevealedAnswers = []string{}
	}
	if s.History == nil {
		s.History = []*QuestionRecord{}
	}
	if s.RoundBlock < FirstRoundBlock {
		s.RoundBlock = FirstRoundBlock
	}
}

// Snapshot returns a copy that shares no mutable state with s, with media
// data stripped from the round. Answer values and history records are
// replaced wholesale rather than mutated, so they are shared.
func (s *Session) Snapshot() *Session {
	players := make(map[string]*Player, len(s.Players))
	for name, p := range s.Players {
		cp := *p
		players[name] = &cp
	}

	history := make([]*QuestionRecord, len(s.History))
	copy(history, s.History)

	return &Session{
		ID:         s.ID,
		Players:    players,
		Round:      s.Round.withoutMedia(),
		History:    history,
		RoundBlock: s.RoundBlock,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// LivesSnapshot returns every player's current life count
func (s *Session) LivesSnapshot() map[string]int {
	lives := make(map[string]int, len(s.Players))
	for name, p := range s.Players {
		lives[name] = p.Lives
	}
	return lives
}
