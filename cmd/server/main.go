package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/NilsMeier1812/DDF5/internal/common/clock"
	"github.com/NilsMeier1812/DDF5/internal/common/uuid"
	"github.com/NilsMeier1812/DDF5/internal/config"
	"github.com/NilsMeier1812/DDF5/internal/handlers/discord"
	"github.com/NilsMeier1812/DDF5/internal/handlers/web"
	"github.com/NilsMeier1812/DDF5/internal/handlers/ws"
	"github.com/NilsMeier1812/DDF5/internal/random"
	"github.com/NilsMeier1812/DDF5/internal/repositories/archive"
	"github.com/NilsMeier1812/DDF5/internal/repositories/session"
	"github.com/NilsMeier1812/DDF5/internal/services/messaging"
	"github.com/NilsMeier1812/DDF5/internal/services/persist"
	"github.com/NilsMeier1812/DDF5/internal/services/quiz"
)

const releaseVersion = "0.1.0"

func main() {
	// A missing .env file is fine; flags and the environment still apply
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &config.Config{}
	if err := config.NewCommand(cfg, releaseVersion, run).ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("quizhost stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	config.SetupLogging(cfg, os.Stdout)
	log.Info().Str("version", releaseVersion).Msg("starting quizhost")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		// The quiz runs from memory; writes are retried by the next mutation
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, continuing without persistence")
	}
	pingCancel()

	// Initialize repositories
	sessionRepo, err := session.NewRedis(&session.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}

	archiveRepo, err := archive.NewRedis(&archive.Config{RedisClient: redisClient})
	if err != nil {
		return err
	}

	writer, err := persist.New(&persist.Config{
		SessionRepo: sessionRepo,
		ArchiveRepo: archiveRepo,
		QueueSize:   cfg.PersistQueue,
	})
	if err != nil {
		return err
	}

	// The writer outlives ctx so it can drain queued writes on shutdown
	writerCtx, stopWriter := context.WithCancel(context.Background())
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		writer.Run(writerCtx)
	}()
	defer func() {
		stopWriter()
		<-writerDone
		log.Info().Int64("dropped", writer.Dropped()).Int64("failed", writer.Failures()).Msg("persistence drained")
	}()

	msgService, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		return err
	}

	hub := ws.NewHub(&ws.Config{
		Messaging:    msgService,
		MessageRate:  cfg.MessageRate,
		MessageBurst: cfg.MessageBurst,
	})

	var broadcaster quiz.Broadcaster = hub
	var relay *discord.Relay
	var bot *discord.Bot
	if cfg.DiscordEnabled() {
		bot, err = discord.New(&discord.Config{
			Token:         cfg.DiscordToken,
			ApplicationID: cfg.DiscordAppID,
			GuildID:       cfg.DiscordGuild,
		})
		if err != nil {
			return err
		}

		relay, err = discord.NewRelay(&discord.RelayConfig{
			Next:      hub,
			Poster:    bot.Session(),
			ChannelID: cfg.DiscordChannel,
			Messaging: msgService,
		})
		if err != nil {
			return err
		}
		broadcaster = relay
	}

	service, err := quiz.New(&quiz.Config{
		HostPassword:  cfg.HostPassword,
		LivesMin:      cfg.LivesMin,
		LivesMax:      cfg.LivesMax,
		LivesInitial:  cfg.LivesInitial,
		SessionRepo:   sessionRepo,
		Persister:     writer,
		Broadcaster:   broadcaster,
		Randomizer:    random.New(&random.Config{}),
		Messaging:     msgService,
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		return err
	}

	if _, err := service.Bootstrap(ctx, &quiz.BootstrapInput{}); err != nil {
		return err
	}

	if relay != nil {
		go relay.Run(ctx)

		if err := bot.Start(discord.NewQuizCommand(relay)); err != nil {
			log.Warn().Err(err).Msg("discord gateway unavailable, slash commands disabled")
		} else {
			defer func() {
				if err := bot.Stop(); err != nil {
					log.Warn().Err(err).Msg("failed to stop discord bot")
				}
			}()
		}
	}

	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		hub.Run(ctx, service)
	}()

	server, err := web.New(&web.Config{
		Bind:        cfg.Bind,
		Port:        cfg.Port,
		PublicURL:   cfg.PublicURL,
		Version:     releaseVersion,
		Websocket:   hub.Handler(),
		Connections: hub,
		Writes:      writer,
	})
	if err != nil {
		cancel()
		<-hubDone
		return err
	}

	serveErr := server.ListenAndServe(ctx)

	cancel()
	<-hubDone

	log.Info().Msg("quizhost stopped")
	return serveErr
}
