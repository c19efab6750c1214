package quiz

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/NilsMeier1812/DDF5/internal/common/clock"
	"github.com/NilsMeier1812/DDF5/internal/common/uuid"
	"github.com/NilsMeier1812/DDF5/internal/models"
	"github.com/NilsMeier1812/DDF5/internal/random"
	sessionRepo "github.com/NilsMeier1812/DDF5/internal/repositories/session"
	"github.com/NilsMeier1812/DDF5/internal/services/messaging"
)

// service implements the Service interface. It owns the session; the
// event loop calling it is the only goroutine that touches it.
type service struct {
	session *models.Session
	ready   bool

	hostPassword string
	livesMin     int
	livesMax     int
	livesInitial int

	sessionRepo   sessionRepo.Repository
	persister     Persister
	broadcaster   Broadcaster
	randomizer    random.Randomizer
	messaging     messaging.Service
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

// New creates a new quiz service. It is not ready until Bootstrap returns.
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.Persister == nil {
		return nil, ErrNilPersister
	}

	if cfg.Broadcaster == nil {
		return nil, ErrNilBroadcaster
	}

	if cfg.Randomizer == nil {
		return nil, ErrNilRandomizer
	}

	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	livesMin, livesMax, livesInitial := cfg.LivesMin, cfg.LivesMax, cfg.LivesInitial
	if livesMin == 0 && livesMax == 0 && livesInitial == 0 {
		livesMin, livesMax, livesInitial = DefaultLivesMin, DefaultLivesMax, DefaultLivesInitial
	}
	if livesMin > livesMax || livesInitial < livesMin || livesInitial > livesMax {
		return nil, ErrInvalidLivesRange
	}

	password := cfg.HostPassword
	if password == "" {
		password = DefaultHostPassword
	}

	return &service{
		hostPassword:  password,
		livesMin:      livesMin,
		livesMax:      livesMax,
		livesInitial:  livesInitial,
		sessionRepo:   cfg.SessionRepo,
		persister:     cfg.Persister,
		broadcaster:   cfg.Broadcaster,
		randomizer:    cfg.Randomizer,
		messaging:     cfg.Messaging,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
	}, nil
}

func (s *service) checkReady() error {
	if !s.ready || s.session == nil {
		return ErrNotReady
	}
	return nil
}

// persistBestEffort hands a snapshot to the persister without waiting for
// the write. A lost write is an accepted durability gap.
func (s *service) persistBestEffort() {
	s.session.UpdatedAt = s.clock.Now()
	s.persister.SaveSession(s.session.Snapshot())
}

// publish pushes both projections, recomputed from the current state
func (s *service) publish() {
	s.broadcaster.PublishPublic(ToPublicView(s.session))
	s.broadcaster.PublishHost(ToHostView(s.session))
}

// commit finishes every state change: persist, then broadcast
func (s *service) commit() {
	s.persistBestEffort()
	s.publish()
}

// HostLogin checks the host password
func (s *service) HostLogin(ctx context.Context, input *HostLoginInput) (*HostLoginOutput, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	if input == nil || subtle.ConstantTimeCompare([]byte(input.Password), []byte(s.hostPassword)) != 1 {
		return nil, ErrInvalidHostPassword
	}

	return &HostLoginOutput{
		View: ToHostView(s.session),
	}, nil
}

// GetPublicView returns the current public projection
func (s *service) GetPublicView(ctx context.Context, input *GetPublicViewInput) (*PublicView, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}
	return ToPublicView(s.session), nil
}

// GetHostView returns the current host projection
func (s *service) GetHostView(ctx context.Context, input *GetHostViewInput) (*HostView, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}
	return ToHostView(s.session), nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	return name, nil
}
