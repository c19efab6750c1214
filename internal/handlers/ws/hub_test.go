package ws_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NilsMeier1812/DDF5/internal/common/clock"
	"github.com/NilsMeier1812/DDF5/internal/common/uuid"
	"github.com/NilsMeier1812/DDF5/internal/handlers/ws"
	"github.com/NilsMeier1812/DDF5/internal/random"
	"github.com/NilsMeier1812/DDF5/internal/repositories/archive"
	"github.com/NilsMeier1812/DDF5/internal/repositories/session"
	"github.com/NilsMeier1812/DDF5/internal/services/messaging"
	"github.com/NilsMeier1812/DDF5/internal/services/persist"
	"github.com/NilsMeier1812/DDF5/internal/services/quiz"
	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

const readTimeout = 2 * time.Second

// publicView decodes the parts of quiz.PublicView the tests look at; round
// payloads are interface values and do not decode generically.
type publicView struct {
	Players []struct {
		Name   string `json:"name"`
		Answer any    `json:"answer"`
	} `json:"players"`
	Round struct {
		Type     string `json:"type"`
		Revealed bool   `json:"revealed"`
	} `json:"round"`
}

type HubTestSuite struct {
	suite.Suite

	mr     *miniredis.Miniredis
	client *redis.Client
	writer *persist.Writer
	hub    *ws.Hub
	server *httptest.Server

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
}

func (s *HubTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	sessionRepo, err := session.NewRedis(&session.Config{RedisClient: s.client})
	s.Require().NoError(err)
	archiveRepo, err := archive.NewRedis(&archive.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.writer, err = persist.New(&persist.Config{SessionRepo: sessionRepo, ArchiveRepo: archiveRepo})
	s.Require().NoError(err)

	msgService, err := messaging.NewService(&messaging.ServiceConfig{DefaultTone: messaging.ToneNeutral})
	s.Require().NoError(err)

	s.hub = ws.NewHub(&ws.Config{Messaging: msgService})

	service, err := quiz.New(&quiz.Config{
		SessionRepo:   sessionRepo,
		Persister:     s.writer,
		Broadcaster:   s.hub,
		Randomizer:    random.New(&random.Config{Seed: 7}),
		Messaging:     msgService,
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)

	s.ctx, s.cancel = context.WithCancel(context.Background())
	_, err = service.Bootstrap(s.ctx, &quiz.BootstrapInput{})
	s.Require().NoError(err)

	s.stopped = make(chan struct{}, 2)
	go func() {
		s.writer.Run(s.ctx)
		s.stopped <- struct{}{}
	}()
	go func() {
		s.hub.Run(s.ctx, service)
		s.stopped <- struct{}{}
	}()

	router := httprouter.New()
	router.GET("/ws", s.hub.Handler())
	s.server = httptest.NewServer(router)
}

func (s *HubTestSuite) TearDownTest() {
	s.server.Close()
	s.cancel()
	<-s.stopped
	<-s.stopped
	s.client.Close()
	s.mr.Close()
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubTestSuite))
}

// dial connects and consumes the initial public state
func (s *HubTestSuite) dial() *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	s.T().Cleanup(func() { conn.Close() })

	s.expect(conn, ws.EventPublicStateUpdate)
	return conn
}

func (s *HubTestSuite) send(conn *websocket.Conn, eventType string, payload any) {
	msg := map[string]any{"type": eventType}
	if payload != nil {
		msg["payload"] = payload
	}
	s.Require().NoError(conn.WriteJSON(msg))
}

// expect reads until a message of eventType arrives and returns its payload
func (s *HubTestSuite) expect(conn *websocket.Conn, eventType string) json.RawMessage {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(readTimeout)))
	for {
		var msg struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		err := conn.ReadJSON(&msg)
		s.Require().NoError(err, "waiting for %s", eventType)
		if msg.Type == eventType {
			return msg.Payload
		}
	}
}

// startRound starts a round and waits until conn sees it
func (s *HubTestSuite) startRound(host, conn *websocket.Conn, roundType, question string) {
	s.send(host, ws.EventHostStartRound, map[string]any{"type": roundType, "question": question})

	deadline := time.Now().Add(readTimeout)
	for time.Now().Before(deadline) {
		var view publicView
		s.Require().NoError(json.Unmarshal(s.expect(conn, ws.EventPublicStateUpdate), &view))
		if view.Round.Type == roundType {
			return
		}
	}
	s.Fail("round never started")
}

func (s *HubTestSuite) hostConn() *websocket.Conn {
	conn := s.dial()
	s.send(conn, ws.EventHostLogin, quiz.DefaultHostPassword)
	s.expect(conn, ws.EventHostLoginSucceeded)
	return conn
}

// join announces name on a new connection and logs it in with the code the host sees
func (s *HubTestSuite) join(host *websocket.Conn, name string) *websocket.Conn {
	conn := s.dial()
	s.send(conn, ws.EventPlayerAnnounce, name)

	var joined quiz.PlayerJoined
	s.Require().NoError(json.Unmarshal(s.expect(host, ws.EventHostPlayerJoined), &joined))
	s.Require().Equal(name, joined.Name)

	s.send(conn, ws.EventPlayerLogin, map[string]string{"name": name, "code": joined.Code})
	s.expect(conn, ws.EventLoginSucceeded)
	return conn
}

func (s *HubTestSuite) TestHostLogin() {
	conn := s.dial()

	s.send(conn, ws.EventHostLogin, "wrong")
	s.expect(conn, ws.EventHostLoginFailed)

	s.send(conn, ws.EventHostLogin, quiz.DefaultHostPassword)
	payload := s.expect(conn, ws.EventHostLoginSucceeded)

	var view quiz.HostView
	s.Require().NoError(json.Unmarshal(payload, &view))
	s.NotEmpty(view.SessionID)
}

func (s *HubTestSuite) TestHostEventsRequireHostConnection() {
	host := s.hostConn()
	player := s.dial()

	s.send(player, ws.EventHostCreatePlayer, "Eve")
	// A reply on the same connection proves the previous event was handled
	s.send(player, ws.EventPlayerLogin, map[string]string{"name": "Nobody", "code": "0000"})
	s.expect(player, ws.EventLoginFailed)

	s.send(host, ws.EventHostCreatePlayer, "Zed")

	var joined quiz.PlayerJoined
	s.Require().NoError(json.Unmarshal(s.expect(host, ws.EventHostPlayerJoined), &joined))
	s.Equal("Zed", joined.Name)
	s.True(joined.IsManual)
}

func (s *HubTestSuite) TestLoginFailureReasons() {
	host := s.hostConn()
	s.join(host, "Anna")

	conn := s.dial()

	s.send(conn, ws.EventPlayerLogin, map[string]string{"name": "Anna", "code": "not-the-code"})
	var failed ws.LoginFailedPayload
	s.Require().NoError(json.Unmarshal(s.expect(conn, ws.EventLoginFailed), &failed))
	s.Equal(string(messaging.ReasonWrongCode), failed.Reason)
	s.NotEmpty(failed.Message)

	s.send(conn, ws.EventPlayerLogin, map[string]string{"name": "Ghost", "code": "1234"})
	s.Require().NoError(json.Unmarshal(s.expect(conn, ws.EventLoginFailed), &failed))
	s.Equal(string(messaging.ReasonUnknownPlayer), failed.Reason)
}

func (s *HubTestSuite) TestAnswerFlow() {
	host := s.hostConn()
	anna := s.join(host, "Anna")

	s.startRound(host, anna, "TEXT", "Capital of France?")

	s.send(anna, ws.EventPlayerSubmitAnswer, map[string]any{"name": "Anna", "answer": " Paris "})
	var confirmed ws.AnswerConfirmedPayload
	s.Require().NoError(json.Unmarshal(s.expect(anna, ws.EventAnswerConfirmed), &confirmed))
	s.Equal("Paris", confirmed.Answer)

	s.send(host, ws.EventHostReveal, nil)

	// Wait for the state where the answer is visible
	deadline := time.Now().Add(readTimeout)
	for time.Now().Before(deadline) {
		var view publicView
		s.Require().NoError(json.Unmarshal(s.expect(anna, ws.EventPublicStateUpdate), &view))
		if view.Round.Revealed {
			s.Require().Len(view.Players, 1)
			s.Equal("Paris", view.Players[0].Answer)
			return
		}
	}
	s.Fail("reveal never arrived")
}

func (s *HubTestSuite) TestSubmitForAnotherPlayerIsIgnored() {
	host := s.hostConn()
	anna := s.join(host, "Anna")
	s.join(host, "Bob")

	s.startRound(host, anna, "TEXT", "Q")

	s.send(anna, ws.EventPlayerSubmitAnswer, map[string]any{"name": "Bob", "answer": "sneaky"})
	s.send(anna, ws.EventPlayerSubmitAnswer, map[string]any{"name": "Anna", "answer": "honest"})

	var confirmed ws.AnswerConfirmedPayload
	s.Require().NoError(json.Unmarshal(s.expect(anna, ws.EventAnswerConfirmed), &confirmed))
	s.Equal("honest", confirmed.Answer)

	s.send(host, ws.EventHostLogin, quiz.DefaultHostPassword)
	var view quiz.HostView
	s.Require().NoError(json.Unmarshal(s.expect(host, ws.EventHostLoginSucceeded), &view))
	s.False(view.Players["Bob"].HasAnswered)
	s.True(view.Players["Anna"].HasAnswered)
}

func (s *HubTestSuite) TestReconnectConfirmsAnswer() {
	host := s.hostConn()
	anna := s.join(host, "Anna")

	s.startRound(host, anna, "TEXT", "Q")
	s.send(anna, ws.EventPlayerSubmitAnswer, map[string]any{"name": "Anna", "answer": "42"})
	s.expect(anna, ws.EventAnswerConfirmed)

	again := s.dial()
	s.send(again, ws.EventPlayerAnnounce, "Anna")
	s.expect(again, ws.EventLoginSucceeded)

	var confirmed ws.AnswerConfirmedPayload
	s.Require().NoError(json.Unmarshal(s.expect(again, ws.EventAnswerConfirmed), &confirmed))
	s.Equal("42", confirmed.Answer)
}

func (s *HubTestSuite) TestLastConnectionClosingMarksPlayerOffline() {
	host := s.hostConn()
	anna := s.join(host, "Anna")

	s.Require().NoError(anna.Close())

	deadline := time.Now().Add(readTimeout)
	for time.Now().Before(deadline) {
		var view quiz.HostView
		s.Require().NoError(json.Unmarshal(s.expect(host, ws.EventHostStateUpdate), &view))
		if player, ok := view.Players["Anna"]; ok && !player.Online {
			return
		}
	}
	s.Fail("player never went offline")
}

func (s *HubTestSuite) TestConnectedCount() {
	s.dial()
	s.dial()

	s.Eventually(func() bool {
		return s.hub.Connected() == 2
	}, readTimeout, 10*time.Millisecond)
}
