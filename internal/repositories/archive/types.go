package archive

import "github.com/NilsMeier1812/DDF5/internal/models"

// AppendRoundBlockInput contains the block to append. Block.SessionID selects the collection.
type AppendRoundBlockInput struct {
	Block *models.RoundBlock
}

// ListRoundBlocksInput contains parameters for listing archived blocks
type ListRoundBlocksInput struct {
	SessionID string
}

// ListRoundBlocksOutput contains the archived blocks ordered by block number
type ListRoundBlocksOutput struct {
	Blocks []*models.RoundBlock
}
