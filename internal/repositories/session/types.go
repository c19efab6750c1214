package session

import (
	"time"

	"github.com/NilsMeier1812/DDF5/internal/models"
)

type GetActiveSessionIDInput struct {
}

type GetActiveSessionIDOutput struct {
	SessionID string
}

type SetActiveSessionIDInput struct {
	SessionID string
}

type GetSessionInput struct {
	SessionID string
}

// SaveSessionInput carries a session the caller no longer mutates,
// usually a models.Session Snapshot
type SaveSessionInput struct {
	Session *models.Session
}

type RetireSessionInput struct {
	SessionID string
	RetiredAt time.Time
}

type GetRetiredSessionsInput struct {
}

type GetRetiredSessionsOutput struct {
	SessionIDs []string
}
