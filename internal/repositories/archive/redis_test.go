package archive

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
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
		KeyPrefix:   "test:",
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
	s.testNow = time.Date(2026, 10, 15, 21, 30, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) block(number int) *models.RoundBlock {
	return &models.RoundBlock{
		SessionID: "session-1",
		Number:    number,
		Timestamp: s.testNow,
		Lives:     map[string]int{"Max": 3, "Anna": 1},
		Questions: []*models.QuestionRecord{
			{
				Question:  "Capital of France?",
				Type:      models.RoundTypeMultipleChoice,
				AnswerKey: "Paris",
				Answers:   map[string]any{"Max": "Paris"},
			},
		},
	}
}

func (s *RedisRepositoryTestSuite) TestAppendAndList() {
	s.Require().NoError(s.repo.AppendRoundBlock(s.ctx, &AppendRoundBlockInput{Block: s.block(1)}))
	s.Require().NoError(s.repo.AppendRoundBlock(s.ctx, &AppendRoundBlockInput{Block: s.block(2)}))

	output, err := s.repo.ListRoundBlocks(s.ctx, &ListRoundBlocksInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Require().Len(output.Blocks, 2)

	s.Equal(1, output.Blocks[0].Number)
	s.Equal(2, output.Blocks[1].Number)
	s.Equal(map[string]int{"Max": 3, "Anna": 1}, output.Blocks[0].Lives)
	s.Require().Len(output.Blocks[0].Questions, 1)
	s.Equal("Paris", output.Blocks[0].Questions[0].Answers["Max"])
	s.Equal(s.testNow.Unix(), output.Blocks[0].Timestamp.Unix())

	// Stored as a list under the session's archive key
	items, err := s.mr.List("test:session:session-1:blocks")
	s.Require().NoError(err)
	s.Len(items, 2)
}

func (s *RedisRepositoryTestSuite) TestListIsolatedPerSession() {
	s.Require().NoError(s.repo.AppendRoundBlock(s.ctx, &AppendRoundBlockInput{Block: s.block(1)}))

	output, err := s.repo.ListRoundBlocks(s.ctx, &ListRoundBlocksInput{SessionID: "other-session"})
	s.Require().NoError(err)
	s.Empty(output.Blocks)
}

func (s *RedisRepositoryTestSuite) TestAppendValidatesInput() {
	s.Error(s.repo.AppendRoundBlock(s.ctx, nil))
	s.Error(s.repo.AppendRoundBlock(s.ctx, &AppendRoundBlockInput{Block: &models.RoundBlock{Number: 1}}))
}
