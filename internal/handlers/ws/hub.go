package ws

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/NilsMeier1812/DDF5/internal/models"
	"github.com/NilsMeier1812/DDF5/internal/services/messaging"
	"github.com/NilsMeier1812/DDF5/internal/services/quiz"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// DefaultMessageRate is the sustained inbound messages per second per connection
	DefaultMessageRate = 10

	// DefaultMessageBurst is the inbound burst allowed per connection
	DefaultMessageBurst = 20
)

var (
	errNotHost  = errors.New("connection is not a host")
	errNotBound = errors.New("connection is not bound to that player")
)

// Config holds configuration for the hub
type Config struct {
	// Messaging provides login failure texts; optional
	Messaging messaging.Service

	// Per-connection inbound rate limit; zero selects the defaults
	MessageRate  float64
	MessageBurst int
}

type inboundMessage struct {
	client *Client
	msg    ClientMessage
}

// Hub serialises every client event onto one goroutine, which is the only
// caller of the quiz service. It also delivers what the service publishes.
type Hub struct {
	service   quiz.Service
	messaging messaging.Service

	clients  map[*Client]bool
	names    map[string]map[*Client]bool
	detached []*Client

	register chan *Client
	unreg    chan *Client
	inbound  chan inboundMessage
	done     chan struct{}

	messageRate  rate.Limit
	messageBurst int
	connected    atomic.Int64
}

// NewHub creates a hub. Run must be started before clients connect.
func NewHub(cfg *Config) *Hub {
	h := &Hub{
		clients:      make(map[*Client]bool),
		names:        make(map[string]map[*Client]bool),
		register:     make(chan *Client),
		unreg:        make(chan *Client),
		inbound:      make(chan inboundMessage),
		done:         make(chan struct{}),
		messageRate:  DefaultMessageRate,
		messageBurst: DefaultMessageBurst,
	}

	if cfg != nil {
		h.messaging = cfg.Messaging
		if cfg.MessageRate > 0 {
			h.messageRate = rate.Limit(cfg.MessageRate)
		}
		if cfg.MessageBurst > 0 {
			h.messageBurst = cfg.MessageBurst
		}
	}

	return h
}

// Connected returns the number of open connections
func (h *Hub) Connected() int64 {
	return h.connected.Load()
}

// Run processes events one at a time until ctx is done
func (h *Hub) Run(ctx context.Context, service quiz.Service) {
	h.service = service
	defer close(h.done)

	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.connected.Add(1)
			h.sendInitialState(ctx, c)

		case c := <-h.unreg:
			h.detach(c)

		case in := <-h.inbound:
			if h.clients[in.client] {
				h.handle(ctx, in.client, in.msg)
			}

		case <-ctx.Done():
			h.closeAll()
			return
		}

		h.releaseDetached(ctx)
	}
}

func (h *Hub) sendInitialState(ctx context.Context, c *Client) {
	view, err := h.service.GetPublicView(ctx, &quiz.GetPublicViewInput{})
	if err != nil {
		return
	}
	h.deliver(c, ServerMessage{Type: EventPublicStateUpdate, Payload: view})
}

func (h *Hub) handle(ctx context.Context, c *Client, msg ClientMessage) {
	var err error

	switch msg.Type {
	case EventHostLogin:
		err = h.handleHostLogin(ctx, c, msg.Payload)
	case EventPlayerAnnounce:
		err = h.handleAnnounce(ctx, c, msg.Payload)
	case EventPlayerLogin:
		err = h.handleLogin(ctx, c, msg.Payload)
	case EventPlayerSubmitAnswer:
		err = h.handleSubmitAnswer(ctx, c, msg.Payload)
	default:
		err = h.handleHostEvent(ctx, c, msg)
	}

	if err != nil {
		log.Debug().Err(err).Str("type", msg.Type).Msg("ws: event rejected")
	}
}

func (h *Hub) handleHostLogin(ctx context.Context, c *Client, payload json.RawMessage) error {
	password, err := decode[string](payload)
	if err != nil {
		return err
	}

	output, err := h.service.HostLogin(ctx, &quiz.HostLoginInput{Password: password})
	if errors.Is(err, quiz.ErrInvalidHostPassword) {
		h.deliver(c, ServerMessage{Type: EventHostLoginFailed})
		return err
	}
	if err != nil {
		return err
	}

	c.host = true
	h.deliver(c, ServerMessage{Type: EventHostLoginSucceeded, Payload: output.View})

	log.Info().Msg("ws: host logged in")
	return nil
}

func (h *Hub) handleAnnounce(ctx context.Context, c *Client, payload json.RawMessage) error {
	name, err := decode[string](payload)
	if err != nil {
		return err
	}

	output, err := h.service.Announce(ctx, &quiz.AnnounceInput{Name: name})
	if err != nil {
		return err
	}

	h.bind(ctx, c, output.Name)

	if output.LoginSucceeded {
		h.deliver(c, ServerMessage{Type: EventLoginSucceeded, Payload: LoginSucceededPayload{Name: output.Name}})
	}
	if output.AnswerConfirmed {
		h.deliver(c, ServerMessage{Type: EventAnswerConfirmed, Payload: AnswerConfirmedPayload{Answer: output.Answer}})
	}

	return nil
}

func (h *Hub) handleLogin(ctx context.Context, c *Client, payload json.RawMessage) error {
	input, err := decode[loginPayload](payload)
	if err != nil {
		return err
	}

	output, err := h.service.Login(ctx, &quiz.LoginInput{Name: input.Name, Code: input.Code})
	switch {
	case errors.Is(err, quiz.ErrUnknownPlayer):
		h.replyLoginFailed(ctx, c, messaging.ReasonUnknownPlayer)
		return err
	case errors.Is(err, quiz.ErrWrongCode):
		h.replyLoginFailed(ctx, c, messaging.ReasonWrongCode)
		return err
	case err != nil:
		return err
	}

	h.bind(ctx, c, output.Name)

	h.deliver(c, ServerMessage{Type: EventLoginSucceeded, Payload: LoginSucceededPayload{Name: output.Name}})
	if output.AnswerConfirmed {
		h.deliver(c, ServerMessage{Type: EventAnswerConfirmed, Payload: AnswerConfirmedPayload{Answer: output.Answer}})
	}

	return nil
}

func (h *Hub) replyLoginFailed(ctx context.Context, c *Client, reason messaging.LoginFailureReason) {
	payload := LoginFailedPayload{Reason: string(reason)}

	if h.messaging != nil {
		output, err := h.messaging.GetLoginFailedMessage(ctx, &messaging.GetLoginFailedMessageInput{Reason: reason})
		if err == nil {
			payload.Message = output.Message
		}
	}

	h.deliver(c, ServerMessage{Type: EventLoginFailed, Payload: payload})
}

func (h *Hub) handleSubmitAnswer(ctx context.Context, c *Client, payload json.RawMessage) error {
	input, err := decode[submitAnswerPayload](payload)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = c.name
	}
	if name == "" || name != c.name {
		return errNotBound
	}

	// Rejections are silent for the submitting client
	output, err := h.service.SubmitAnswer(ctx, &quiz.SubmitAnswerInput{Name: name, Answer: input.Answer})
	if err != nil {
		return err
	}

	h.deliver(c, ServerMessage{Type: EventAnswerConfirmed, Payload: AnswerConfirmedPayload{Answer: output.Answer}})
	return nil
}

func (h *Hub) handleHostEvent(ctx context.Context, c *Client, msg ClientMessage) error {
	if !isHostEvent(msg.Type) {
		return errors.New("unknown event type")
	}

	if !c.host {
		return errNotHost
	}

	var err error
	switch msg.Type {
	case EventHostCreatePlayer:
		var name string
		if name, err = decode[string](msg.Payload); err == nil {
			_, err = h.service.HostCreatePlayer(ctx, &quiz.HostCreatePlayerInput{Name: name})
		}

	case EventHostStartRound:
		var input quiz.StartRoundInput
		if input, err = decode[quiz.StartRoundInput](msg.Payload); err == nil {
			_, err = h.service.StartRound(ctx, &input)
		}

	case EventHostCloseAnswering:
		_, err = h.service.CloseAnswering(ctx, &quiz.CloseAnsweringInput{})

	case EventHostReopenAnswering:
		_, err = h.service.ReopenAnswering(ctx, &quiz.ReopenAnsweringInput{})

	case EventHostReveal:
		_, err = h.service.Reveal(ctx, &quiz.RevealInput{})

	case EventHostRevealSingle:
		var name string
		if name, err = decode[string](msg.Payload); err == nil {
			_, err = h.service.RevealSingle(ctx, &quiz.RevealSingleInput{Name: name})
		}

	case EventHostModifyLives:
		var input quiz.ModifyLivesInput
		if input, err = decode[quiz.ModifyLivesInput](msg.Payload); err == nil {
			_, err = h.service.ModifyLives(ctx, &input)
		}

	case EventHostAdvanceRoundBlock:
		_, err = h.service.AdvanceRoundBlock(ctx, &quiz.AdvanceRoundBlockInput{})

	case EventHostResetAll:
		if _, err = h.service.ResetSession(ctx, &quiz.ResetSessionInput{}); err == nil {
			h.unbindAll()
		}

	case EventHostSetBulkAnswers:
		var answers map[string]any
		if answers, err = decode[map[string]any](msg.Payload); err == nil {
			_, err = h.service.SetBulkAnswers(ctx, &quiz.SetBulkAnswersInput{Answers: answers})
		}

	case EventHostToggleMediaVisible:
		var visible bool
		if visible, err = decode[bool](msg.Payload); err == nil {
			_, err = h.service.ToggleMediaVisible(ctx, &quiz.ToggleMediaVisibleInput{Visible: visible})
		}

	case EventHostToggleInputBlocked:
		var blocked bool
		if blocked, err = decode[bool](msg.Payload); err == nil {
			_, err = h.service.ToggleInputBlocked(ctx, &quiz.ToggleInputBlockedInput{Blocked: blocked})
		}
	}

	return err
}

func isHostEvent(eventType string) bool {
	switch eventType {
	case EventHostCreatePlayer, EventHostStartRound, EventHostCloseAnswering,
		EventHostReopenAnswering, EventHostReveal, EventHostRevealSingle,
		EventHostModifyLives, EventHostAdvanceRoundBlock, EventHostResetAll,
		EventHostSetBulkAnswers, EventHostToggleMediaVisible, EventHostToggleInputBlocked:
		return true
	}
	return false
}

func decode[T any](payload json.RawMessage) (T, error) {
	var v T
	if len(payload) == 0 {
		return v, errors.New("missing payload")
	}
	err := json.Unmarshal(payload, &v)
	return v, err
}

// bind attaches a connection to a player name for liveness tracking
func (h *Hub) bind(ctx context.Context, c *Client, name string) {
	if c.name == name {
		return
	}
	h.unbind(ctx, c)

	set, ok := h.names[name]
	if !ok {
		set = make(map[*Client]bool)
		h.names[name] = set
	}
	set[c] = true
	c.name = name
}

// unbind detaches a connection; the player goes offline with its last one
func (h *Hub) unbind(ctx context.Context, c *Client) {
	if c.name == "" {
		return
	}

	name := c.name
	c.name = ""

	set := h.names[name]
	delete(set, c)
	if len(set) > 0 {
		return
	}
	delete(h.names, name)

	if _, err := h.service.Disconnect(ctx, &quiz.DisconnectInput{Name: name}); err != nil {
		log.Debug().Err(err).Str("player", name).Msg("ws: disconnect rejected")
	}
}

// unbindAll forgets every binding after a reset; the old names are gone
func (h *Hub) unbindAll() {
	for c := range h.clients {
		c.name = ""
	}
	h.names = make(map[string]map[*Client]bool)
}

// deliver never blocks the event loop; a client that cannot keep up is dropped
func (h *Hub) deliver(c *Client, msg any) {
	if !h.clients[c] {
		return
	}

	select {
	case c.send <- msg:
	default:
		log.Warn().Str("player", c.name).Msg("ws: client too slow, dropping connection")
		h.detach(c)
	}
}

// detach stops delivery to c. Player liveness is updated later by
// releaseDetached so the service is never re-entered while it publishes.
func (h *Hub) detach(c *Client) {
	if !h.clients[c] {
		return
	}

	delete(h.clients, c)
	close(c.send)
	h.connected.Add(-1)
	h.detached = append(h.detached, c)
}

func (h *Hub) releaseDetached(ctx context.Context) {
	for len(h.detached) > 0 {
		c := h.detached[0]
		h.detached = h.detached[1:]
		h.unbind(ctx, c)
	}
}

func (h *Hub) closeAll() {
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		h.connected.Add(-1)
	}
	h.detached = nil
}

// PublishPublic implements quiz.Broadcaster
func (h *Hub) PublishPublic(view *quiz.PublicView) {
	msg := ServerMessage{Type: EventPublicStateUpdate, Payload: view}
	for c := range h.clients {
		h.deliver(c, msg)
	}
}

// PublishHost implements quiz.Broadcaster
func (h *Hub) PublishHost(view *quiz.HostView) {
	h.toHosts(ServerMessage{Type: EventHostStateUpdate, Payload: view})
}

// NotifyPlayerJoined implements quiz.Broadcaster
func (h *Hub) NotifyPlayerJoined(event *quiz.PlayerJoined) {
	h.toHosts(ServerMessage{Type: EventHostPlayerJoined, Payload: event})
}

// NotifyRoundBlockArchived implements quiz.Broadcaster
func (h *Hub) NotifyRoundBlockArchived(block *models.RoundBlock) {
	h.toHosts(ServerMessage{Type: EventHostRoundBlockArchived, Payload: block})
}

func (h *Hub) toHosts(msg ServerMessage) {
	for c := range h.clients {
		if c.host {
			h.deliver(c, msg)
		}
	}
}
