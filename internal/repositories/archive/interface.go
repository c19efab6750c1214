package archive

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/NilsMeier1812/DDF5/internal/repositories/archive Repository

import (
	"context"
)

// Repository defines the interface for the append-only round-block archive
type Repository interface {
	// AppendRoundBlock appends an archived round-block to its session's collection
	AppendRoundBlock(ctx context.Context, input *AppendRoundBlockInput) error

	// ListRoundBlocks retrieves every archived round-block of a session in block order
	ListRoundBlocks(ctx context.Context, input *ListRoundBlocksInput) (*ListRoundBlocksOutput, error)
}
