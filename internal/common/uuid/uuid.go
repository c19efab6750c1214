package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/NilsMeier1812/DDF5/internal/common/uuid UUID

// UUID generates session identities
type UUID interface {
	NewUUID() string
}

// DefaultUUID implements the UUID interface using time-ordered (v7) UUIDs,
// so ids sort by creation and stay unique across process restarts.
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new UUIDv7, falling back to a random v4 if the
// v7 generator fails.
func (d *DefaultUUID) NewUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
