package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/NilsMeier1812/DDF5/internal/repositories/session Repository

import (
	"context"

	"github.com/NilsMeier1812/DDF5/internal/models"
)

// Repository defines the interface for session document persistence
type Repository interface {
	// GetActiveSessionID reads the active session pointer
	GetActiveSessionID(ctx context.Context, input *GetActiveSessionIDInput) (*GetActiveSessionIDOutput, error)

	// SetActiveSessionID replaces the active session pointer
	SetActiveSessionID(ctx context.Context, input *SetActiveSessionIDInput) error

	// GetSession retrieves a session document by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// SaveSession overwrites a session document
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// RetireSession records that a session is no longer active
	RetireSession(ctx context.Context, input *RetireSessionInput) error

	// GetRetiredSessions lists retired session IDs, oldest first
	GetRetiredSessions(ctx context.Context, input *GetRetiredSessionsInput) (*GetRetiredSessionsOutput, error)
}
