package ws

import "encoding/json"

// Inbound event types
const (
	EventHostLogin              = "hostLogin"
	EventHostCreatePlayer       = "hostCreatePlayer"
	EventHostStartRound         = "hostStartRound"
	EventHostCloseAnswering     = "hostCloseAnswering"
	EventHostReopenAnswering    = "hostReopenAnswering"
	EventHostReveal             = "hostReveal"
	EventHostRevealSingle       = "hostRevealSingle"
	EventHostModifyLives        = "hostModifyLives"
	EventHostAdvanceRoundBlock  = "hostAdvanceRoundBlock"
	EventHostResetAll           = "hostResetAll"
	EventHostSetBulkAnswers     = "hostSetBulkAnswers"
	EventHostToggleMediaVisible = "hostToggleMediaVisible"
	EventHostToggleInputBlocked = "hostToggleInputBlocked"
	EventPlayerAnnounce         = "playerAnnounce"
	EventPlayerLogin            = "playerLogin"
	EventPlayerSubmitAnswer     = "playerSubmitAnswer"
)

// Outbound event types
const (
	EventPublicStateUpdate      = "publicStateUpdate"
	EventHostStateUpdate        = "hostStateUpdate"
	EventLoginSucceeded         = "loginSucceeded"
	EventLoginFailed            = "loginFailed"
	EventAnswerConfirmed        = "answerConfirmed"
	EventHostLoginSucceeded     = "hostLoginSucceeded"
	EventHostLoginFailed        = "hostLoginFailed"
	EventHostPlayerJoined       = "hostPlayerJoined"
	EventHostRoundBlockArchived = "hostRoundBlockArchived"
)

// ClientMessage is what clients send. Payload is decoded per Type.
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage is what the hub sends
type ServerMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// LoginSucceededPayload confirms which player the connection is bound to
type LoginSucceededPayload struct {
	Name string `json:"name"`
}

// LoginFailedPayload carries a machine-readable reason and a display text
type LoginFailedPayload struct {
	Reason  string `json:"reason"`
	Message string `json:"message,omitempty"`
}

// AnswerConfirmedPayload echoes the stored answer
type AnswerConfirmedPayload struct {
	Answer any `json:"answer"`
}

type loginPayload struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type submitAnswerPayload struct {
	Name   string `json:"name"`
	Answer any    `json:"answer"`
}
