package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/NilsMeier1812/DDF5/internal/models"
	sessionRepo "github.com/NilsMeier1812/DDF5/internal/repositories/session"
	"github.com/rs/zerolog/log"
)

// Bootstrap loads the session the store points at. Any failure falls back
// to a fresh session; the store is never consulted again while running.
func (s *service) Bootstrap(ctx context.Context, input *BootstrapInput) (*BootstrapOutput, error) {
	pointerID, loaded, err := s.loadActiveSession(ctx)
	if errors.Is(err, sessionRepo.ErrSessionNotFound) {
		// The pointer was written but the document never was
		s.recreateSession(pointerID)
		return &BootstrapOutput{
			SessionID: pointerID,
		}, nil
	}
	if err != nil {
		log.Warn().Err(err).Msg("bootstrap: starting a fresh session")

		s.resetSession()
		return &BootstrapOutput{
			SessionID: s.session.ID,
		}, nil
	}

	// Transport liveness does not survive a restart
	for _, p := range loaded.Players {
		p.Online = false
	}

	s.session = loaded
	s.ready = true

	log.Info().
		Str("session_id", loaded.ID).
		Int("players", len(loaded.Players)).
		Int("round_block", loaded.RoundBlock).
		Msg("bootstrap: recovered session")

	return &BootstrapOutput{
		SessionID: loaded.ID,
		Recovered: true,
	}, nil
}

func (s *service) loadActiveSession(ctx context.Context) (string, *models.Session, error) {
	pointer, err := s.sessionRepo.GetActiveSessionID(ctx, &sessionRepo.GetActiveSessionIDInput{})
	if err != nil {
		return "", nil, err
	}

	loaded, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: pointer.SessionID,
	})
	if err != nil {
		return pointer.SessionID, nil, fmt.Errorf("failed to load session %s: %w", pointer.SessionID, err)
	}

	if loaded.ID != pointer.SessionID {
		return pointer.SessionID, nil, fmt.Errorf("session document %s does not match pointer %s", loaded.ID, pointer.SessionID)
	}

	return pointer.SessionID, loaded, nil
}

// recreateSession starts an empty session under an identity the pointer
// already references
func (s *service) recreateSession(sessionID string) {
	s.session = models.NewSession(sessionID, s.clock.Now())
	s.ready = true
	s.persister.SaveSession(s.session.Snapshot())

	log.Warn().Str("session_id", sessionID).Msg("bootstrap: session document missing, recreated empty")
}

// ResetSession retires the current session and starts an empty one
func (s *service) ResetSession(ctx context.Context, input *ResetSessionInput) (*ResetSessionOutput, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	retired := s.resetSession()

	return &ResetSessionOutput{
		SessionID:        s.session.ID,
		RetiredSessionID: retired,
	}, nil
}

// resetSession replaces the owned session and returns the retired ID.
// The pointer write is queued before the document so a crash in between
// leaves a pointer that loads as a fresh session.
func (s *service) resetSession() string {
	now := s.clock.Now()

	var retired string
	if s.session != nil {
		retired = s.session.ID
	}

	s.session = models.NewSession(s.uuidGenerator.NewUUID(), now)
	s.ready = true

	s.persister.SetActiveSession(s.session.ID)
	s.persister.SaveSession(s.session.Snapshot())
	if retired != "" {
		s.persister.RetireSession(retired, now)
	}

	log.Info().
		Str("session_id", s.session.ID).
		Str("retired_session_id", retired).
		Msg("session reset")

	s.publish()

	return retired
}
