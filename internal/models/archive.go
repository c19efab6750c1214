package models

import "time"

// QuestionRecord is the history entry kept for one finished question
type QuestionRecord struct {
	// Question is the prompt text
	Question string `json:"question"`

	// Type is the round type the question was asked as
	Type RoundType `json:"type"`

	// AnswerKey is the host-declared correct value(s), unpermuted
	AnswerKey any `json:"answerKey"`

	// Answers maps player name to the non-empty answer they gave
	Answers map[string]any `json:"answers"`

	// ArchivedAt is when the question was moved into history
	ArchivedAt time.Time `json:"archivedAt"`
}

// RoundBlock is an archived group of questions. It is written once and never mutated.
type RoundBlock struct {
	// SessionID is the session the block belongs to
	SessionID string `json:"sessionId"`

	// Number is the round-block counter at close time
	Number int `json:"number"`

	// Timestamp is the wall-clock time the block was closed
	Timestamp time.Time `json:"timestamp"`

	// Lives is every player's life count at block close
	Lives map[string]int `json:"lives"`

	// Questions is the ordered history of the block
	Questions []*QuestionRecord `json:"questions"`
}
