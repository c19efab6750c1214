package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/NilsMeier1812/DDF5/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Default prefix for every key written by this repository
	defaultKeyPrefix = "quiz:"

	sessionKeyPrefix = "session:"
	blocksKeySuffix  = ":blocks"
)

// Config holds configuration for the Redis archive repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// KeyPrefix namespaces all keys; defaults to "quiz:"
	KeyPrefix string
}

// redisRepository implements the Repository interface with one Redis list per session.
// Lists are only ever pushed to, never rewritten.
type redisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a new Redis-backed archive repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	return &redisRepository{
		client: cfg.RedisClient,
		prefix: prefix,
	}, nil
}

func (r *redisRepository) blocksKey(sessionID string) string {
	return fmt.Sprintf("%s%s%s%s", r.prefix, sessionKeyPrefix, sessionID, blocksKeySuffix)
}

// AppendRoundBlock appends an archived round-block to its session's collection
func (r *redisRepository) AppendRoundBlock(ctx context.Context, input *AppendRoundBlockInput) error {
	if input == nil || input.Block == nil {
		return errors.New("input and block cannot be nil")
	}

	if input.Block.SessionID == "" {
		return errors.New("block session ID cannot be empty")
	}

	blockJSON, err := json.Marshal(input.Block)
	if err != nil {
		return fmt.Errorf("failed to marshal round block: %w", err)
	}

	if err := r.client.RPush(ctx, r.blocksKey(input.Block.SessionID), blockJSON).Err(); err != nil {
		return fmt.Errorf("failed to append round block: %w", err)
	}

	return nil
}

// ListRoundBlocks retrieves every archived round-block of a session in block order
func (r *redisRepository) ListRoundBlocks(ctx context.Context, input *ListRoundBlocksInput) (*ListRoundBlocksOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	entries, err := r.client.LRange(ctx, r.blocksKey(input.SessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list round blocks: %w", err)
	}

	blocks := make([]*models.RoundBlock, 0, len(entries))
	for i, entry := range entries {
		var block models.RoundBlock
		if err := json.Unmarshal([]byte(entry), &block); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round block %d: %w", i, err)
		}
		blocks = append(blocks, &block)
	}

	// Append order already matches block order; the sort guards against
	// blocks written by an older process for the same session.
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Number < blocks[j].Number
	})

	return &ListRoundBlocksOutput{
		Blocks: blocks,
	}, nil
}
