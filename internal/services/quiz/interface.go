package quiz

//go:generate mockgen -package=mocks -destination=mocks/mock_broadcaster.go github.com/NilsMeier1812/DDF5/internal/services/quiz Broadcaster

import (
	"context"
	"time"

	"github.com/NilsMeier1812/DDF5/internal/models"
)

// Service defines the quiz session operations. Implementations are not safe
// for concurrent use: a single event loop must be the only caller.
type Service interface {
	// Bootstrap loads the active session from the store or starts a fresh one
	Bootstrap(ctx context.Context, input *BootstrapInput) (*BootstrapOutput, error)

	// ResetSession retires the current session and starts an empty one
	ResetSession(ctx context.Context, input *ResetSessionInput) (*ResetSessionOutput, error)

	// StartRound archives the current question and replaces the round
	StartRound(ctx context.Context, input *StartRoundInput) (*StartRoundOutput, error)

	// CloseAnswering stops submissions without revealing
	CloseAnswering(ctx context.Context, input *CloseAnsweringInput) (*CloseAnsweringOutput, error)

	// ReopenAnswering accepts submissions again and hides answers
	ReopenAnswering(ctx context.Context, input *ReopenAnsweringInput) (*ReopenAnsweringOutput, error)

	// Reveal makes every answer visible and closes answering
	Reveal(ctx context.Context, input *RevealInput) (*RevealOutput, error)

	// RevealSingle makes one player's answer visible
	RevealSingle(ctx context.Context, input *RevealSingleInput) (*RevealSingleOutput, error)

	// AdvanceRoundBlock archives the current round-block and starts the next
	AdvanceRoundBlock(ctx context.Context, input *AdvanceRoundBlockInput) (*AdvanceRoundBlockOutput, error)

	// ToggleMediaVisible shows or hides the media payload for players
	ToggleMediaVisible(ctx context.Context, input *ToggleMediaVisibleInput) (*ToggleMediaVisibleOutput, error)

	// ToggleInputBlocked blocks or unblocks submissions
	ToggleInputBlocked(ctx context.Context, input *ToggleInputBlockedInput) (*ToggleInputBlockedOutput, error)

	// SetBulkAnswers stamps answers on behalf of players
	SetBulkAnswers(ctx context.Context, input *SetBulkAnswersInput) (*SetBulkAnswersOutput, error)

	// ModifyLives adjusts a player's lives within the configured range
	ModifyLives(ctx context.Context, input *ModifyLivesInput) (*ModifyLivesOutput, error)

	// Announce registers a connecting player by name
	Announce(ctx context.Context, input *AnnounceInput) (*AnnounceOutput, error)

	// Login verifies a player's access code
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// HostCreatePlayer creates a player that has not connected yet
	HostCreatePlayer(ctx context.Context, input *HostCreatePlayerInput) (*HostCreatePlayerOutput, error)

	// SubmitAnswer stores a player's answer for the current round
	SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error)

	// Disconnect marks a player as offline
	Disconnect(ctx context.Context, input *DisconnectInput) (*DisconnectOutput, error)

	// HostLogin checks the host password
	HostLogin(ctx context.Context, input *HostLoginInput) (*HostLoginOutput, error)

	// GetPublicView returns the current public projection
	GetPublicView(ctx context.Context, input *GetPublicViewInput) (*PublicView, error)

	// GetHostView returns the current host projection
	GetHostView(ctx context.Context, input *GetHostViewInput) (*HostView, error)
}

// Broadcaster pushes projections and host notices to connected observers.
// Views are handed over and never touched by the service afterwards.
type Broadcaster interface {
	// PublishPublic sends the public projection to every observer
	PublishPublic(view *PublicView)

	// PublishHost sends the host projection to host observers only
	PublishHost(view *HostView)

	// NotifyPlayerJoined tells the host which code a player received
	NotifyPlayerJoined(event *PlayerJoined)

	// NotifyRoundBlockArchived tells the host a round-block was archived
	NotifyRoundBlockArchived(block *models.RoundBlock)
}

// Persister performs best-effort store writes. Calls must not block and
// never report failure to the caller.
type Persister interface {
	SaveSession(snapshot *models.Session)
	SetActiveSession(sessionID string)
	RetireSession(sessionID string, retiredAt time.Time)
	AppendRoundBlock(block *models.RoundBlock)
}
