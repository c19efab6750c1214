package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages
	rand *rand.Rand

	defaultTone MessageTone
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	random := rand.New(rand.NewSource(time.Now().UnixNano()))
	tone := ToneFunny

	if config != nil {
		if config.Rand != nil {
			random = config.Rand
		}
		if config.DefaultTone != "" {
			tone = config.DefaultTone
		}
	}

	return &service{
		rand:        random,
		defaultTone: tone,
	}, nil
}

// GetBlockEndedMessage returns the marker shown while waiting after a round-block closes
func (s *service) GetBlockEndedMessage(ctx context.Context, input *GetBlockEndedMessageInput) (*GetBlockEndedMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.Tone
	if tone == "" {
		tone = s.defaultTone
	}

	var templates []string
	switch tone {
	case ToneNeutral:
		templates = []string{
			"Round block %d ended.",
		}
	default:
		templates = []string{
			"Round block %d ended. Catch your breath!",
			"Round block %d is in the books. Refill your drinks.",
			"That was round block %d. The host is plotting the next one.",
			"Round block %d ended. Nobody panic, there's more.",
		}
	}

	message := fmt.Sprintf(templates[s.rand.Intn(len(templates))], input.BlockNumber)
	if input.QuestionCount > 0 {
		message = fmt.Sprintf("%s (%d questions archived)", message, input.QuestionCount)
	}

	return &GetBlockEndedMessageOutput{
		Message: message,
		Tone:    tone,
	}, nil
}

// GetLoginFailedMessage returns a user-friendly text for a login failure reason
func (s *service) GetLoginFailedMessage(ctx context.Context, input *GetLoginFailedMessageInput) (*GetLoginFailedMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var message string
	switch input.Reason {
	case ReasonUnknownPlayer:
		message = "Nobody with that name has joined yet. Check your link."
	case ReasonWrongCode:
		message = "That code doesn't match. Ask the host for yours."
	case ReasonNotReady:
		message = "The game is still loading. Try again in a moment."
	default:
		message = "Login failed."
	}

	return &GetLoginFailedMessageOutput{
		Message: message,
	}, nil
}

// GetPlayerJoinedMessage returns the host notice carrying a player's access code
func (s *service) GetPlayerJoinedMessage(ctx context.Context, input *GetPlayerJoinedMessageInput) (*GetPlayerJoinedMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	verb := "joined"
	if input.IsManual {
		verb = "was added by the host"
	}

	return &GetPlayerJoinedMessageOutput{
		Message: fmt.Sprintf("%s %s. Access code: %s", input.Name, verb, input.Code),
	}, nil
}

// GetBlockSummaryMessage returns a standings summary of an archived round-block
func (s *service) GetBlockSummaryMessage(ctx context.Context, input *GetBlockSummaryMessageInput) (*GetBlockSummaryMessageOutput, error) {
	if input == nil || input.Block == nil {
		return nil, errors.New("input and block cannot be nil")
	}

	block := input.Block

	names := make([]string, 0, len(block.Lives))
	for name := range block.Lives {
		names = append(names, name)
	}

	// Most lives first, then by name for a stable order
	sort.Slice(names, func(i, j int) bool {
		li, lj := block.Lives[names[i]], block.Lives[names[j]]
		if li != lj {
			return li > lj
		}
		return names[i] < names[j]
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d questions played.\n", len(block.Questions))
	for _, name := range names {
		fmt.Fprintf(&sb, "%s: %s\n", name, livesBar(block.Lives[name]))
	}

	return &GetBlockSummaryMessageOutput{
		Title:   fmt.Sprintf("Round block %d", block.Number),
		Message: strings.TrimSuffix(sb.String(), "\n"),
	}, nil
}

func livesBar(lives int) string {
	if lives <= 0 {
		return "out"
	}
	return strings.Repeat("♥", lives)
}
