package discord

import (
	"github.com/NilsMeier1812/DDF5/internal/services/quiz"
	"github.com/bwmarrin/discordgo"
)

const (
	subcommandStatus = "status"
	subcommandCodes  = "codes"

	noSessionMessage = "No session is running yet."
)

// HostViewSource provides the latest host view
type HostViewSource interface {
	HostView() *quiz.HostView
}

// QuizCommand is the /quiz command: session status and player codes for the host
type QuizCommand struct {
	BaseCommand
	source HostViewSource
}

// NewQuizCommand creates the /quiz command backed by source
func NewQuizCommand(source HostViewSource) *QuizCommand {
	permissions := int64(discordgo.PermissionAdministrator)

	return &QuizCommand{
		BaseCommand: BaseCommand{
			Name:        "quiz",
			Description: "Inspect the running quiz session",
			Permissions: &permissions,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandStatus,
					Description: "Show the current round and every player's lives",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandCodes,
					Description: "Privately list every player's access code",
				},
			},
		},
		source: source,
	}
}

// Handle processes the /quiz command
func (c *QuizCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return RespondWithEphemeralMessage(s, i, "Pick a subcommand.")
	}

	view := c.source.HostView()
	if view == nil {
		return RespondWithEphemeralMessage(s, i, noSessionMessage)
	}

	switch options[0].Name {
	case subcommandStatus:
		title, description, fields := renderStatus(view)
		return RespondWithEmbed(s, i, title, description, fields)
	case subcommandCodes:
		return RespondWithEphemeralMessage(s, i, renderCodes(view))
	default:
		return RespondWithEphemeralMessage(s, i, "Unknown subcommand.")
	}
}
