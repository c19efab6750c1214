package messaging

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/NilsMeier1812/DDF5/internal/models"
	"github.com/stretchr/testify/suite"
)

type MessagingServiceTestSuite struct {
	suite.Suite
	service Service
	ctx     context.Context
}

func (s *MessagingServiceTestSuite) SetupTest() {
	svc, err := NewService(&ServiceConfig{
		Rand: rand.New(rand.NewSource(1)),
	})
	s.Require().NoError(err)
	s.service = svc
	s.ctx = context.Background()
}

func TestMessagingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MessagingServiceTestSuite))
}

func (s *MessagingServiceTestSuite) TestBlockEndedMentionsBlockNumber() {
	for i := 0; i < 20; i++ {
		output, err := s.service.GetBlockEndedMessage(s.ctx, &GetBlockEndedMessageInput{BlockNumber: 4})
		s.Require().NoError(err)
		s.Contains(output.Message, "Round block 4")
		s.Equal(ToneFunny, output.Tone)
	}
}

func (s *MessagingServiceTestSuite) TestBlockEndedNeutralTone() {
	output, err := s.service.GetBlockEndedMessage(s.ctx, &GetBlockEndedMessageInput{
		BlockNumber:   2,
		QuestionCount: 5,
		Tone:          ToneNeutral,
	})
	s.Require().NoError(err)
	s.Equal("Round block 2 ended. (5 questions archived)", output.Message)
}

func (s *MessagingServiceTestSuite) TestLoginFailedReasons() {
	wrong, err := s.service.GetLoginFailedMessage(s.ctx, &GetLoginFailedMessageInput{Reason: ReasonWrongCode})
	s.Require().NoError(err)
	unknown, err := s.service.GetLoginFailedMessage(s.ctx, &GetLoginFailedMessageInput{Reason: ReasonUnknownPlayer})
	s.Require().NoError(err)

	s.NotEmpty(wrong.Message)
	s.NotEqual(wrong.Message, unknown.Message)
}

func (s *MessagingServiceTestSuite) TestPlayerJoinedCarriesCode() {
	output, err := s.service.GetPlayerJoinedMessage(s.ctx, &GetPlayerJoinedMessageInput{Name: "Max", Code: "4821"})
	s.Require().NoError(err)
	s.Equal("Max joined. Access code: 4821", output.Message)

	manual, err := s.service.GetPlayerJoinedMessage(s.ctx, &GetPlayerJoinedMessageInput{Name: "Anna", Code: "1000", IsManual: true})
	s.Require().NoError(err)
	s.Contains(manual.Message, "added by the host")
}

func (s *MessagingServiceTestSuite) TestBlockSummaryOrdersByLives() {
	output, err := s.service.GetBlockSummaryMessage(s.ctx, &GetBlockSummaryMessageInput{
		Block: &models.RoundBlock{
			Number:    3,
			Timestamp: time.Date(2026, 10, 15, 22, 0, 0, 0, time.UTC),
			Lives:     map[string]int{"Anna": 1, "Max": 3, "Ben": 0},
			Questions: []*models.QuestionRecord{{Question: "q1"}, {Question: "q2"}},
		},
	})
	s.Require().NoError(err)
	s.Equal("Round block 3", output.Title)
	s.Equal("2 questions played.\nMax: ♥♥♥\nAnna: ♥\nBen: out", output.Message)
}

func (s *MessagingServiceTestSuite) TestNilInput() {
	_, err := s.service.GetBlockEndedMessage(s.ctx, nil)
	s.Error(err)
	_, err = s.service.GetBlockSummaryMessage(s.ctx, &GetBlockSummaryMessageInput{})
	s.Error(err)
}
