package messaging

import (
	"math/rand"

	"github.com/NilsMeier1812/DDF5/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"
)

// LoginFailureReason is the machine-readable reason sent with a failed login
type LoginFailureReason string

const (
	// ReasonUnknownPlayer means no player with that name exists
	ReasonUnknownPlayer LoginFailureReason = "unknown_player"

	// ReasonWrongCode means the code did not match
	ReasonWrongCode LoginFailureReason = "wrong_code"

	// ReasonNotReady means the session is still loading
	ReasonNotReady LoginFailureReason = "not_ready"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Optional random source for testing
	Rand *rand.Rand

	// Tone used when an input does not ask for one
	DefaultTone MessageTone
}

// GetBlockEndedMessageInput contains parameters for the block-ended marker
type GetBlockEndedMessageInput struct {
	// BlockNumber is the number of the block that just closed
	BlockNumber int

	// QuestionCount is how many questions the block archived
	QuestionCount int

	// Tone is the preferred tone (optional)
	Tone MessageTone
}

// GetBlockEndedMessageOutput contains the block-ended marker
type GetBlockEndedMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetLoginFailedMessageInput contains the failure reason
type GetLoginFailedMessageInput struct {
	Reason LoginFailureReason
}

// GetLoginFailedMessageOutput contains the failure text
type GetLoginFailedMessageOutput struct {
	Message string
}

// GetPlayerJoinedMessageInput describes a join the host must act on
type GetPlayerJoinedMessageInput struct {
	Name     string
	Code     string
	IsManual bool
}

// GetPlayerJoinedMessageOutput contains the host notice
type GetPlayerJoinedMessageOutput struct {
	Message string
}

// GetBlockSummaryMessageInput contains the archived block to summarise
type GetBlockSummaryMessageInput struct {
	Block *models.RoundBlock
}

// GetBlockSummaryMessageOutput contains the summary text
type GetBlockSummaryMessageOutput struct {
	Title   string
	Message string
}
