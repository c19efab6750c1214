package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable that mirrors a flag
const EnvPrefix = "QUIZHOST"

// Config is the server configuration, filled from flags and QUIZHOST_* env
type Config struct {
	Bind      string
	Port      int
	PublicURL string

	HostPassword string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LivesMin     int
	LivesMax     int
	LivesInitial int

	PersistQueue int

	MessageRate  float64
	MessageBurst int

	DiscordToken   string
	DiscordChannel string
	DiscordAppID   string
	DiscordGuild   string

	Verbose bool
}

// Validate checks values that flags alone cannot constrain
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if c.LivesMin < 0 || c.LivesMin > c.LivesMax {
		return fmt.Errorf("invalid lives range: %d-%d", c.LivesMin, c.LivesMax)
	}
	if c.LivesInitial < c.LivesMin || c.LivesInitial > c.LivesMax {
		return fmt.Errorf("initial lives %d outside %d-%d", c.LivesInitial, c.LivesMin, c.LivesMax)
	}
	if c.PersistQueue < 1 {
		return errors.New("--persist-queue must be positive")
	}
	if c.MessageRate <= 0 || c.MessageBurst < 1 {
		return errors.New("--message-rate and --message-burst must be positive")
	}
	if (c.DiscordToken == "") != (c.DiscordChannel == "") {
		return errors.New("both --discord-token and --discord-channel must be provided together")
	}
	return nil
}

// DiscordEnabled reports whether the Discord relay should run
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannel != ""
}

// NewCommand builds the root command. run is called with a validated config.
func NewCommand(cfg *Config, version string, run func(ctx context.Context, cfg *Config) error) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:     "quizhost",
		Short:   "Real-time moderated quiz server for a live host and a room of players.",
		Args:    cobra.ExactArgs(0),
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: QUIZHOST_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", 3000, "port to listen on (env: QUIZHOST_PORT)")
	fs.StringVar(&cfg.PublicURL, "public-url", "", "external base URL used in join links (env: QUIZHOST_PUBLIC_URL)")
	fs.StringVar(&cfg.HostPassword, "host-password", "admin", "password for the host console (env: QUIZHOST_HOST_PASSWORD)")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", "localhost:6379", "redis address (env: QUIZHOST_REDIS_ADDR)")
	fs.StringVar(&cfg.RedisPassword, "redis-password", "", "redis password (env: QUIZHOST_REDIS_PASSWORD)")
	fs.IntVar(&cfg.RedisDB, "redis-db", 0, "redis database (env: QUIZHOST_REDIS_DB)")
	fs.IntVar(&cfg.LivesMin, "lives-min", 0, "lowest life count (env: QUIZHOST_LIVES_MIN)")
	fs.IntVar(&cfg.LivesMax, "lives-max", 5, "highest life count (env: QUIZHOST_LIVES_MAX)")
	fs.IntVar(&cfg.LivesInitial, "lives-initial", 3, "life count of new players (env: QUIZHOST_LIVES_INITIAL)")
	fs.IntVar(&cfg.PersistQueue, "persist-queue", 256, "pending store writes before new ones are dropped (env: QUIZHOST_PERSIST_QUEUE)")
	fs.Float64Var(&cfg.MessageRate, "message-rate", 10, "sustained messages per second per connection (env: QUIZHOST_MESSAGE_RATE)")
	fs.IntVar(&cfg.MessageBurst, "message-burst", 20, "message burst per connection (env: QUIZHOST_MESSAGE_BURST)")
	fs.StringVar(&cfg.DiscordToken, "discord-token", "", "bot token for the host channel relay (env: QUIZHOST_DISCORD_TOKEN)")
	fs.StringVar(&cfg.DiscordChannel, "discord-channel", "", "channel receiving codes and block summaries (env: QUIZHOST_DISCORD_CHANNEL)")
	fs.StringVar(&cfg.DiscordAppID, "discord-app-id", "", "application ID for slash commands (env: QUIZHOST_DISCORD_APP_ID)")
	fs.StringVar(&cfg.DiscordGuild, "discord-guild", "", "register slash commands in this guild only (env: QUIZHOST_DISCORD_GUILD)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "log every event (env: QUIZHOST_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("quizhost v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
