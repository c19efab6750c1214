package session

import (
	"context"
	"testing"
	"time"

	"github.com/NilsMeier1812/DDF5/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
	s.testNow = time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestNewRedisValidatesConfig() {
	_, err := NewRedis(nil)
	s.Error(err)

	_, err = NewRedis(&Config{})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestActiveSessionPointer() {
	_, err := s.repo.GetActiveSessionID(s.ctx, &GetActiveSessionIDInput{})
	s.ErrorIs(err, ErrPointerNotFound)

	err = s.repo.SetActiveSessionID(s.ctx, &SetActiveSessionIDInput{SessionID: "session-1"})
	s.Require().NoError(err)

	output, err := s.repo.GetActiveSessionID(s.ctx, &GetActiveSessionIDInput{})
	s.Require().NoError(err)
	s.Equal("session-1", output.SessionID)

	// The pointer lives under the configured prefix
	stored, err := s.mr.Get("quiz:active_session")
	s.Require().NoError(err)
	s.Equal("session-1", stored)
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetSession() {
	session := models.NewSession("session-1", s.testNow)
	session.Players["Max"] = &models.Player{
		Name:        "Max",
		Code:        "4821",
		Lives:       2,
		Verified:    true,
		Online:      true,
		Answer:      "Paris",
		HasAnswered: true,
	}
	session.Round.Type = models.RoundTypeMultipleChoice
	session.Round.Question = "Capital of France?"
	session.Round.Payload = &models.MultipleChoicePayload{
		Options:   []string{"Nice", "Paris", "Lyon"},
		AnswerKey: "Paris",
	}
	session.History = append(session.History, &models.QuestionRecord{
		Question:  "Warmup",
		Type:      models.RoundTypeText,
		AnswerKey: "yes",
		Answers:   map[string]any{"Max": "yes"},
	})
	session.RoundBlock = 3

	err := s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: session})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)

	s.Equal("session-1", retrieved.ID)
	s.Equal(3, retrieved.RoundBlock)
	s.Require().Contains(retrieved.Players, "Max")
	s.Equal("4821", retrieved.Players["Max"].Code)
	s.Equal("Paris", retrieved.Players["Max"].Answer)
	s.True(retrieved.Players["Max"].Verified)
	s.Equal(models.RoundTypeMultipleChoice, retrieved.Round.Type)

	payload, ok := retrieved.Round.Payload.(*models.MultipleChoicePayload)
	s.Require().True(ok)
	s.Equal([]string{"Nice", "Paris", "Lyon"}, payload.Options)
	s.Equal("Paris", payload.AnswerKey)

	s.Require().Len(retrieved.History, 1)
	s.Equal("Warmup", retrieved.History[0].Question)
	s.Equal(s.testNow.Unix(), retrieved.CreatedAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestGetSessionNotFound() {
	_, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "missing"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestGetSessionCorruptDocument() {
	s.Require().NoError(s.mr.Set("quiz:session:broken", "{not json"))

	_, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "broken"})
	s.Error(err)
	s.NotErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestSaveSessionRequiresID() {
	err := s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: &models.Session{}})
	s.Error(err)

	err = s.repo.SaveSession(s.ctx, nil)
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestRetiredSessionsOrderedByTime() {
	err := s.repo.RetireSession(s.ctx, &RetireSessionInput{SessionID: "second", RetiredAt: s.testNow.Add(time.Hour)})
	s.Require().NoError(err)
	err = s.repo.RetireSession(s.ctx, &RetireSessionInput{SessionID: "first", RetiredAt: s.testNow})
	s.Require().NoError(err)

	output, err := s.repo.GetRetiredSessions(s.ctx, &GetRetiredSessionsInput{})
	s.Require().NoError(err)
	s.Equal([]string{"first", "second"}, output.SessionIDs)
}

func (s *RedisRepositoryTestSuite) TestStoreUnavailable() {
	s.mr.Close()

	_, err := s.repo.GetActiveSessionID(s.ctx, &GetActiveSessionIDInput{})
	s.Error(err)
	s.NotErrorIs(err, ErrPointerNotFound)
}
