package discord

import (
	"fmt"
	"slices"
	"strings"

	"github.com/NilsMeier1812/DDF5/internal/models"
	"github.com/NilsMeier1812/DDF5/internal/services/quiz"
	"github.com/bwmarrin/discordgo"
)

const (
	colorInfo    = 0x00ff00
	colorArchive = 0x3498db
)

func sortedNames(players map[string]*models.Player) []string {
	names := make([]string, 0, len(players))
	for name := range players {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// renderStatus renders the session overview as embed title, description
// and fields
func renderStatus(view *quiz.HostView) (string, string, []*discordgo.MessageEmbedField) {
	round := "Waiting"
	if view.Round != nil && view.Round.Type != models.RoundTypeWaiting {
		round = fmt.Sprintf("%s: %s", view.Round.Type, view.Round.Question)
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Round", Value: round},
		{Name: "Block", Value: fmt.Sprintf("%d", view.RoundBlock), Inline: true},
		{Name: "Questions", Value: fmt.Sprintf("%d", len(view.History)), Inline: true},
	}

	var lines []string
	for _, name := range sortedNames(view.Players) {
		player := view.Players[name]

		lives := strings.Repeat("♥", player.Lives)
		if player.Lives == 0 {
			lives = "out"
		}

		var flags []string
		if player.Online {
			flags = append(flags, "online")
		}
		if !player.Verified {
			flags = append(flags, "not logged in")
		}
		if player.HasAnswered {
			flags = append(flags, "answered")
		}

		line := fmt.Sprintf("%s: %s", name, lives)
		if len(flags) > 0 {
			line += " (" + strings.Join(flags, ", ") + ")"
		}
		lines = append(lines, line)
	}

	players := "Nobody has joined yet."
	if len(lines) > 0 {
		players = strings.Join(lines, "\n")
	}
	fields = append(fields, &discordgo.MessageEmbedField{Name: "Players", Value: players})

	return "Quiz session", fmt.Sprintf("Session `%s`", view.SessionID), fields
}

// renderCodes lists access codes, one player per line
func renderCodes(view *quiz.HostView) string {
	if len(view.Players) == 0 {
		return "Nobody has joined yet."
	}

	var sb strings.Builder
	for _, name := range sortedNames(view.Players) {
		fmt.Fprintf(&sb, "%s: `%s`\n", name, view.Players[name].Code)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// renderBlockSummary renders an archived round-block announcement
func renderBlockSummary(title, message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       colorArchive,
	}
}
