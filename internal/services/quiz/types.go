package quiz

import (
	"github.com/NilsMeier1812/DDF5/internal/common/clock"
	"github.com/NilsMeier1812/DDF5/internal/common/uuid"
	"github.com/NilsMeier1812/DDF5/internal/models"
	"github.com/NilsMeier1812/DDF5/internal/random"
	sessionRepo "github.com/NilsMeier1812/DDF5/internal/repositories/session"
	"github.com/NilsMeier1812/DDF5/internal/services/messaging"
)

const (
	// DefaultHostPassword is used when no host password is configured
	DefaultHostPassword = "admin"

	// DefaultLivesMin is the lower life clamp
	DefaultLivesMin = 0

	// DefaultLivesMax is the upper life clamp
	DefaultLivesMax = 5

	// DefaultLivesInitial is the life count of a new player
	DefaultLivesInitial = 3

	// DefaultRangeMin is the lower numeric bound when none is given
	DefaultRangeMin = 0.0

	// DefaultRangeMax is the upper numeric bound when none is given
	DefaultRangeMax = 100.0
)

// Config holds configuration for the quiz service
type Config struct {
	// HostPassword is the fixed host credential
	HostPassword string

	// Lives clamp and starting value. All zero selects the defaults.
	LivesMin     int
	LivesMax     int
	LivesInitial int

	// Repository dependencies, read only during Bootstrap
	SessionRepo sessionRepo.Repository

	// Service dependencies
	Persister     Persister
	Broadcaster   Broadcaster
	Randomizer    random.Randomizer
	Messaging     messaging.Service
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// BootstrapInput contains parameters for loading the active session
type BootstrapInput struct {
}

// BootstrapOutput contains the result of bootstrapping
type BootstrapOutput struct {
	// SessionID is the identity of the now active session
	SessionID string

	// Recovered is true when the session was loaded from the store
	Recovered bool
}

// ResetSessionInput contains parameters for a session reset
type ResetSessionInput struct {
}

// ResetSessionOutput contains the result of a session reset
type ResetSessionOutput struct {
	// SessionID is the identity of the new session
	SessionID string

	// RetiredSessionID is the identity of the replaced session, if any
	RetiredSessionID string
}

// MatchingPair is one host-supplied left/right pair
type MatchingPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// StartRoundInput describes the round the host wants to start. Only the
// fields of the selected type are used.
type StartRoundInput struct {
	Type     models.RoundType `json:"type"`
	Question string           `json:"question"`

	// Options are the choices of a MULTIPLE_CHOICE round, in host order
	Options []string `json:"options,omitempty"`

	// CorrectAnswer is the answer key for TEXT, MULTIPLE_CHOICE and NUMERIC_RANGE
	CorrectAnswer any `json:"correctAnswer,omitempty"`

	// Items are the SEQUENCE items in the correct order
	Items []string `json:"items,omitempty"`

	// Pairs are the correct MATCHING pairs
	Pairs []MatchingPair `json:"pairs,omitempty"`

	// Min and Max bound a NUMERIC_RANGE round; non-numeric values fall back to defaults
	Min any `json:"min,omitempty"`
	Max any `json:"max,omitempty"`

	// Candidates for a PLAYER_VOTE round; empty means every verified player
	Candidates []string `json:"candidates,omitempty"`

	// TargetPlayers restricts who may answer; empty means everyone
	TargetPlayers []string `json:"targetPlayers,omitempty"`

	// Body is the INFO announcement text
	Body string `json:"body,omitempty"`

	// Media fields of a MEDIA_STREAM round
	MediaURL      string `json:"mediaUrl,omitempty"`
	MediaMimeType string `json:"mimeType,omitempty"`
	MediaData     string `json:"mediaData,omitempty"`
}

// StartRoundOutput contains the result of starting a round
type StartRoundOutput struct {
	// Round is the round now active
	Round *models.Round

	// Archived is true when the previous question was moved into history
	Archived bool
}

type CloseAnsweringInput struct {
}

type CloseAnsweringOutput struct {
}

type ReopenAnsweringInput struct {
}

type ReopenAnsweringOutput struct {
}

type RevealInput struct {
}

type RevealOutput struct {
}

// RevealSingleInput names the player whose answer is revealed
type RevealSingleInput struct {
	Name string
}

// RevealSingleOutput contains the result of a single reveal
type RevealSingleOutput struct {
	// AlreadyRevealed is true when the name was already on the reveal list
	AlreadyRevealed bool
}

type AdvanceRoundBlockInput struct {
}

// AdvanceRoundBlockOutput contains the archived round-block
type AdvanceRoundBlockOutput struct {
	// Block is the round-block handed to the archive
	Block *models.RoundBlock

	// NextRoundBlock is the counter value after advancing
	NextRoundBlock int
}

type ToggleMediaVisibleInput struct {
	Visible bool
}

type ToggleMediaVisibleOutput struct {
}

type ToggleInputBlockedInput struct {
	Blocked bool
}

type ToggleInputBlockedOutput struct {
}

// SetBulkAnswersInput maps player name to answer. An empty answer clears it.
type SetBulkAnswersInput struct {
	Answers map[string]any
}

// SetBulkAnswersOutput contains the result of stamping answers
type SetBulkAnswersOutput struct {
	// Applied lists the known players that were updated, sorted
	Applied []string

	// Ignored lists names not in the roster, sorted
	Ignored []string
}

// ModifyLivesInput contains the life adjustment
type ModifyLivesInput struct {
	Name  string `json:"name"`
	Delta int    `json:"delta"`
}

// ModifyLivesOutput contains the clamped result
type ModifyLivesOutput struct {
	Lives int
}

// AnnounceInput contains the name a client connects as
type AnnounceInput struct {
	Name string
}

// AnnounceOutput tells the transport what to reply to the connecting client
type AnnounceOutput struct {
	// Name is the trimmed roster key
	Name string

	// IsNew is true when the player was created by this call
	IsNew bool

	// LoginSucceeded is true when a verified player reconnects
	LoginSucceeded bool

	// AnswerConfirmed is true when the reconnecting player already answered
	AnswerConfirmed bool

	// Answer is the stored answer when AnswerConfirmed is set
	Answer any
}

// LoginInput contains the submitted credentials
type LoginInput struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// LoginOutput tells the transport what to reply after a successful login
type LoginOutput struct {
	Name            string
	AnswerConfirmed bool
	Answer          any
}

type HostCreatePlayerInput struct {
	Name string
}

// HostCreatePlayerOutput contains the created player's code
type HostCreatePlayerOutput struct {
	Name  string
	Code  string
	IsNew bool
}

// SubmitAnswerInput contains a player's answer
type SubmitAnswerInput struct {
	Name   string `json:"name"`
	Answer any    `json:"answer"`
}

// SubmitAnswerOutput contains the stored answer
type SubmitAnswerOutput struct {
	Answer any
}

type DisconnectInput struct {
	Name string
}

type DisconnectOutput struct {
}

type HostLoginInput struct {
	Password string
}

// HostLoginOutput carries the host projection for the new host observer
type HostLoginOutput struct {
	View *HostView
}

type GetPublicViewInput struct {
}

type GetHostViewInput struct {
}

// PlayerJoined is the host notice carrying a player's code. It is never
// sent to non-host observers.
type PlayerJoined struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	IsManual bool   `json:"isManual"`
}
