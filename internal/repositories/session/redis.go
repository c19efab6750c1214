package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NilsMeier1812/DDF5/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Default prefix for every key written by this repository
	defaultKeyPrefix = "quiz:"

	activeSessionKey  = "active_session"
	sessionKeyPrefix  = "session:"
	retiredSessionKey = "retired_sessions"
)

var (
	// ErrSessionNotFound is returned when a session document does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrPointerNotFound is returned when no active session pointer is stored
	ErrPointerNotFound = errors.New("active session pointer not found")
)

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// KeyPrefix namespaces all keys; defaults to "quiz:"
	KeyPrefix string
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a new Redis-backed session repository.
// The connection is not tested here; a degraded store must not prevent startup.
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

func (r *redisRepository) sessionKey(sessionID string) string {
	return fmt.Sprintf("%s%s%s", r.prefix, sessionKeyPrefix, sessionID)
}

// GetActiveSessionID reads the active session pointer
func (r *redisRepository) GetActiveSessionID(ctx context.Context, input *GetActiveSessionIDInput) (*GetActiveSessionIDOutput, error) {
	sessionID, err := r.client.Get(ctx, r.prefix+activeSessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrPointerNotFound
		}
		return nil, fmt.Errorf("failed to get active session pointer: %w", err)
	}

	if sessionID == "" {
		return nil, ErrPointerNotFound
	}

	return &GetActiveSessionIDOutput{
		SessionID: sessionID,
	}, nil
}

// SetActiveSessionID replaces the active session pointer
func (r *redisRepository) SetActiveSessionID(ctx context.Context, input *SetActiveSessionIDInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	if err := r.client.Set(ctx, r.prefix+activeSessionKey, input.SessionID, 0).Err(); err != nil {
		return fmt.Errorf("failed to set active session pointer: %w", err)
	}

	return nil
}

// GetSession retrieves a session document by ID
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionJSON, err := r.client.Get(ctx, r.sessionKey(input.SessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	session.Normalize()

	return &session, nil
}

// SaveSession overwrites a session document
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if input.Session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, r.sessionKey(input.Session.ID), sessionJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// RetireSession records that a session is no longer active
func (r *redisRepository) RetireSession(ctx context.Context, input *RetireSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	err := r.client.ZAdd(ctx, r.prefix+retiredSessionKey, redis.Z{
		Score:  float64(input.RetiredAt.UnixNano()),
		Member: input.SessionID,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to retire session: %w", err)
	}

	return nil
}

// GetRetiredSessions lists retired session IDs, oldest first
func (r *redisRepository) GetRetiredSessions(ctx context.Context, input *GetRetiredSessionsInput) (*GetRetiredSessionsOutput, error) {
	sessionIDs, err := r.client.ZRange(ctx, r.prefix+retiredSessionKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get retired sessions: %w", err)
	}

	return &GetRetiredSessionsOutput{
		SessionIDs: sessionIDs,
	}, nil
}
