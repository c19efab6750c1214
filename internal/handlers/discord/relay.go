package discord

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/NilsMeier1812/DDF5/internal/models"
	"github.com/NilsMeier1812/DDF5/internal/services/messaging"
	"github.com/NilsMeier1812/DDF5/internal/services/quiz"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_poster.go github.com/NilsMeier1812/DDF5/internal/handlers/discord Poster

// DefaultQueueSize is used when RelayConfig.QueueSize is not set
const DefaultQueueSize = 64

var (
	ErrNilRelayConfig = errors.New("relay config cannot be nil")
	ErrNilNext        = errors.New("next broadcaster cannot be nil")
	ErrNilPoster      = errors.New("poster cannot be nil")
	ErrNilMessaging   = errors.New("messaging service cannot be nil")
	ErrEmptyChannel   = errors.New("channel ID cannot be empty")
)

// Poster sends messages to a Discord channel. *discordgo.Session implements it.
type Poster interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// RelayConfig holds configuration for the relay
type RelayConfig struct {
	// Next receives every broadcast unchanged
	Next quiz.Broadcaster

	Poster    Poster
	ChannelID string
	Messaging messaging.Service

	// QueueSize bounds the number of pending posts
	QueueSize int
}

type post struct {
	content string
	embed   *discordgo.MessageEmbed
}

// Relay forwards broadcasts to Next and mirrors host notices to a Discord
// channel. Posting happens on the Run goroutine; the broadcast methods never block.
type Relay struct {
	next      quiz.Broadcaster
	poster    Poster
	channelID string
	messaging messaging.Service

	outbox  chan post
	dropped atomic.Int64

	mu       sync.RWMutex
	hostView *quiz.HostView
}

// NewRelay creates a relay
func NewRelay(cfg *RelayConfig) (*Relay, error) {
	if cfg == nil {
		return nil, ErrNilRelayConfig
	}
	if cfg.Next == nil {
		return nil, ErrNilNext
	}
	if cfg.Poster == nil {
		return nil, ErrNilPoster
	}
	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}
	if cfg.ChannelID == "" {
		return nil, ErrEmptyChannel
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	return &Relay{
		next:      cfg.Next,
		poster:    cfg.Poster,
		channelID: cfg.ChannelID,
		messaging: cfg.Messaging,
		outbox:    make(chan post, queueSize),
	}, nil
}

// Run posts queued messages until ctx is done
func (r *Relay) Run(ctx context.Context) {
	for {
		select {
		case p := <-r.outbox:
			r.send(p)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Relay) send(p post) {
	var err error
	if p.embed != nil {
		_, err = r.poster.ChannelMessageSendEmbed(r.channelID, p.embed)
	} else {
		_, err = r.poster.ChannelMessageSend(r.channelID, p.content)
	}

	if err != nil {
		log.Warn().Err(err).Str("channel", r.channelID).Msg("discord: post failed")
	}
}

func (r *Relay) enqueue(p post) {
	select {
	case r.outbox <- p:
	default:
		r.dropped.Add(1)
		log.Warn().Msg("discord: outbox full, dropping post")
	}
}

// Dropped returns the number of posts dropped because the outbox was full
func (r *Relay) Dropped() int64 {
	return r.dropped.Load()
}

// HostView returns the most recent host view, or nil before the first one
func (r *Relay) HostView() *quiz.HostView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hostView
}

// PublishPublic implements quiz.Broadcaster
func (r *Relay) PublishPublic(view *quiz.PublicView) {
	r.next.PublishPublic(view)
}

// PublishHost implements quiz.Broadcaster. Views are detached copies, so the
// one kept here is safe to read from the command goroutine.
func (r *Relay) PublishHost(view *quiz.HostView) {
	r.mu.Lock()
	r.hostView = view
	r.mu.Unlock()

	r.next.PublishHost(view)
}

// NotifyPlayerJoined implements quiz.Broadcaster
func (r *Relay) NotifyPlayerJoined(event *quiz.PlayerJoined) {
	r.next.NotifyPlayerJoined(event)

	output, err := r.messaging.GetPlayerJoinedMessage(context.Background(), &messaging.GetPlayerJoinedMessageInput{
		Name:     event.Name,
		Code:     event.Code,
		IsManual: event.IsManual,
	})
	if err != nil {
		log.Warn().Err(err).Str("player", event.Name).Msg("discord: failed to build join message")
		return
	}

	r.enqueue(post{content: output.Message})
}

// NotifyRoundBlockArchived implements quiz.Broadcaster
func (r *Relay) NotifyRoundBlockArchived(block *models.RoundBlock) {
	r.next.NotifyRoundBlockArchived(block)

	output, err := r.messaging.GetBlockSummaryMessage(context.Background(), &messaging.GetBlockSummaryMessageInput{
		Block: block,
	})
	if err != nil {
		log.Warn().Err(err).Int("block", block.Number).Msg("discord: failed to build block summary")
		return
	}

	r.enqueue(post{embed: renderBlockSummary(output.Title, output.Message)})
}
