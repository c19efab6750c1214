package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

// RoundType tags the variant of the active round
type RoundType string

const (
	// RoundTypeWaiting is the idle state between rounds
	RoundTypeWaiting RoundType = "WAITING"

	// RoundTypeText asks for a free text answer
	RoundTypeText RoundType = "TEXT"

	// RoundTypeMultipleChoice asks to pick one of several options
	RoundTypeMultipleChoice RoundType = "MULTIPLE_CHOICE"

	// RoundTypeSequence asks to put items into the right order
	RoundTypeSequence RoundType = "SEQUENCE"

	// RoundTypeMatching asks to pair left items with right items
	RoundTypeMatching RoundType = "MATCHING"

	// RoundTypeNumericRange asks for a number within bounds
	RoundTypeNumericRange RoundType = "NUMERIC_RANGE"

	// RoundTypePlayerVote asks to vote for another player
	RoundTypePlayerVote RoundType = "PLAYER_VOTE"

	// RoundTypeInfo is an announcement without answers
	RoundTypeInfo RoundType = "INFO"

	// RoundTypeMediaStream shows media without answers
	RoundTypeMediaStream RoundType = "MEDIA_STREAM"
)

// ErrUnknownRoundType is returned when a round type tag is not recognised
var ErrUnknownRoundType = errors.New("unknown round type")

// Valid reports whether t is a known round type
func (t RoundType) Valid() bool {
	switch t {
	case RoundTypeWaiting, RoundTypeText, RoundTypeMultipleChoice, RoundTypeSequence,
		RoundTypeMatching, RoundTypeNumericRange, RoundTypePlayerVote, RoundTypeInfo,
		RoundTypeMediaStream:
		return true
	}
	return false
}

// Answerable reports whether players can submit answers for this type at all
func (t RoundType) Answerable() bool {
	switch t {
	case RoundTypeWaiting, RoundTypeInfo, RoundTypeMediaStream:
		return false
	}
	return true
}

// OpensAnswering reports whether a freshly started round of this type accepts answers
func (t RoundType) OpensAnswering() bool {
	return t != RoundTypeInfo && t != RoundTypeMediaStream
}

// Archivable reports whether a round of this type leaves a history record
func (t RoundType) Archivable() bool {
	return t != RoundTypeWaiting && t != RoundTypeInfo
}

// RoundPayload is the type-specific part of a round
type RoundPayload interface {
	// Type returns the round type the payload belongs to
	Type() RoundType

	// Key returns the unpermuted answer key, or nil when the type has none
	Key() any
}

// WaitingPayload carries nothing
type WaitingPayload struct{}

// TextPayload holds the expected free text answer
type TextPayload struct {
	AnswerKey string `json:"answerKey,omitempty"`
}

// MultipleChoicePayload holds the served (permuted) options and the unpermuted key
type MultipleChoicePayload struct {
	Options   []string `json:"options"`
	AnswerKey string   `json:"answerKey"`
}

// SequencePayload holds the served order and the host order as key.
// The two orders are drawn independently.
type SequencePayload struct {
	Items     []string `json:"items"`
	AnswerKey []string `json:"answerKey"`
}

// MatchingPayload keeps the left side in host order; the right side is one
// permutation shared by every player.
type MatchingPayload struct {
	Left      []string          `json:"left"`
	Right     []string          `json:"right"`
	AnswerKey map[string]string `json:"answerKey"`
}

// NumericRangePayload holds the coerced bounds and the optional exact key
type NumericRangePayload struct {
	Min       float64  `json:"min"`
	Max       float64  `json:"max"`
	AnswerKey *float64 `json:"answerKey,omitempty"`
}

// PlayerVotePayload lists who can be voted for
type PlayerVotePayload struct {
	Candidates []string `json:"candidates"`
}

// InfoPayload is an announcement body
type InfoPayload struct {
	Body string `json:"body,omitempty"`
}

// MediaPayload is a media item. Data is never persisted.
type MediaPayload struct {
	URL      string `json:"url,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

func (p *WaitingPayload) Type() RoundType        { return RoundTypeWaiting }
func (p *TextPayload) Type() RoundType           { return RoundTypeText }
func (p *MultipleChoicePayload) Type() RoundType { return RoundTypeMultipleChoice }
func (p *SequencePayload) Type() RoundType       { return RoundTypeSequence }
func (p *MatchingPayload) Type() RoundType       { return RoundTypeMatching }
func (p *NumericRangePayload) Type() RoundType   { return RoundTypeNumericRange }
func (p *PlayerVotePayload) Type() RoundType     { return RoundTypePlayerVote }
func (p *InfoPayload) Type() RoundType           { return RoundTypeInfo }
func (p *MediaPayload) Type() RoundType          { return RoundTypeMediaStream }

func (p *WaitingPayload) Key() any { return nil }

func (p *TextPayload) Key() any {
	if p.AnswerKey == "" {
		return nil
	}
	return p.AnswerKey
}

func (p *MultipleChoicePayload) Key() any { return p.AnswerKey }
func (p *SequencePayload) Key() any       { return p.AnswerKey }
func (p *MatchingPayload) Key() any       { return p.AnswerKey }

func (p *NumericRangePayload) Key() any {
	if p.AnswerKey == nil {
		return nil
	}
	return *p.AnswerKey
}

func (p *PlayerVotePayload) Key() any { return nil }
func (p *InfoPayload) Key() any       { return nil }
func (p *MediaPayload) Key() any      { return nil }

// NewPayload returns the zero payload for a round type, or nil for unknown types
func NewPayload(t RoundType) RoundPayload {
	switch t {
	case RoundTypeWaiting:
		return &WaitingPayload{}
	case RoundTypeText:
		return &TextPayload{}
	case RoundTypeMultipleChoice:
		return &MultipleChoicePayload{Options: []string{}}
	case RoundTypeSequence:
		return &SequencePayload{Items: []string{}, AnswerKey: []string{}}
	case RoundTypeMatching:
		return &MatchingPayload{Left: []string{}, Right: []string{}, AnswerKey: map[string]string{}}
	case RoundTypeNumericRange:
		return &NumericRangePayload{}
	case RoundTypePlayerVote:
		return &PlayerVotePayload{Candidates: []string{}}
	case RoundTypeInfo:
		return &InfoPayload{}
	case RoundTypeMediaStream:
		return &MediaPayload{}
	}
	return nil
}

// DecodePayload decodes raw JSON into the payload variant for t
func DecodePayload(t RoundType, raw json.RawMessage) (RoundPayload, error) {
	payload := NewPayload(t)
	if payload == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoundType, t)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return payload, nil
	}
	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", t, err)
	}
	return payload, nil
}

// Round is the single currently active question or prompt
type Round struct {
	// Type tags the payload variant
	Type RoundType `json:"type"`

	// Question is the prompt text
	Question string `json:"question"`

	// Payload is the type-specific content
	Payload RoundPayload `json:"-"`

	// AnsweringOpen gates submissions
	AnsweringOpen bool `json:"answeringOpen"`

	// Revealed makes every answer visible. Independent of AnsweringOpen.
	Revealed bool `json:"revealed"`

	// RevealedAnswers lists players whose answer is visible before a full reveal
	RevealedAnswers []string `json:"revealedAnswers"`

	// InputBlocked rejects submissions regardless of AnsweringOpen
	InputBlocked bool `json:"inputBlocked"`

	// MediaVisible controls whether players see the media payload
	MediaVisible bool `json:"mediaVisible"`

	// TargetPlayers restricts answering to a subset; empty means everyone
	TargetPlayers []string `json:"targetPlayers,omitempty"`

	// StartedAt is when the round was started
	StartedAt time.Time `json:"startedAt"`
}

// NewRound returns the default template every round is built from
func NewRound() *Round {
	return &Round{
		Type:            RoundTypeWaiting,
		Payload:         &WaitingPayload{},
		RevealedAnswers: []string{},
	}
}

// IsAnswerVisible reports whether name's answer may be shown to everyone
func (r *Round) IsAnswerVisible(name string) bool {
	return r.Revealed || slices.Contains(r.RevealedAnswers, name)
}

// Targets reports whether name may answer this round
func (r *Round) Targets(name string) bool {
	return len(r.TargetPlayers) == 0 || slices.Contains(r.TargetPlayers, name)
}

// AnswerKey returns the payload's answer key
func (r *Round) AnswerKey() any {
	if r.Payload == nil {
		return nil
	}
	return r.Payload.Key()
}

// Clone returns a copy whose reveal and target lists are not shared with r.
// Payloads are never mutated after a round starts, so they are shared.
func (r *Round) Clone() *Round {
	cp := *r
	cp.RevealedAnswers = slices.Clone(r.RevealedAnswers)
	cp.TargetPlayers = slices.Clone(r.TargetPlayers)
	return &cp
}

func (r *Round) withoutMedia() *Round {
	cp := r.Clone()
	if media, ok := r.Payload.(*MediaPayload); ok {
		cp.Payload = &MediaPayload{URL: media.URL, MimeType: media.MimeType}
	}
	return cp
}

// MarshalJSON writes the payload next to the common fields
func (r Round) MarshalJSON() ([]byte, error) {
	type alias Round
	return json.Marshal(struct {
		alias
		Payload RoundPayload `json:"payload"`
	}{
		alias:   alias(r),
		Payload: r.Payload,
	})
}

// UnmarshalJSON decodes the payload variant selected by the type tag
func (r *Round) UnmarshalJSON(data []byte) error {
	type alias Round
	aux := struct {
		*alias
		Payload json.RawMessage `json:"payload"`
	}{
		alias: (*alias)(r),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.Type == "" {
		r.Type = RoundTypeWaiting
	}

	payload, err := DecodePayload(r.Type, aux.Payload)
	if err != nil {
		return err
	}
	r.Payload = payload
	return nil
}
