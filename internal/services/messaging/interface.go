package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetBlockEndedMessage returns the marker shown while waiting after a round-block closes
	GetBlockEndedMessage(ctx context.Context, input *GetBlockEndedMessageInput) (*GetBlockEndedMessageOutput, error)

	// GetLoginFailedMessage returns a user-friendly text for a login failure reason
	GetLoginFailedMessage(ctx context.Context, input *GetLoginFailedMessageInput) (*GetLoginFailedMessageOutput, error)

	// GetPlayerJoinedMessage returns the host notice carrying a player's access code
	GetPlayerJoinedMessage(ctx context.Context, input *GetPlayerJoinedMessageInput) (*GetPlayerJoinedMessageOutput, error)

	// GetBlockSummaryMessage returns a standings summary of an archived round-block
	GetBlockSummaryMessage(ctx context.Context, input *GetBlockSummaryMessageInput) (*GetBlockSummaryMessageOutput, error)
}
