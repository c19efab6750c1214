package models

// Player represents a participant identified by name within a session
type Player struct {
	// Name is the unique, case-sensitive key chosen by the joining client
	Name string `json:"name"`

	// Code is the 4-digit access code handed out by the host
	Code string `json:"code"`

	// Lives is the remaining life count, clamped to the configured range
	Lives int `json:"lives"`

	// Verified becomes true after the first correct code submission
	Verified bool `json:"verified"`

	// Online is true while a live transport connection is attached
	Online bool `json:"online"`

	// Answer is the opaque answer for the current round (string, number, list or object)
	Answer any `json:"answer"`

	// HasAnswered indicates an answer was stored for the current round
	HasAnswered bool `json:"hasAnswered"`
}

// ClearAnswer forgets the answer for the current round
func (p *Player) ClearAnswer() {
	p.Answer = nil
	p.HasAnswered = false
}

// IsEmptyAnswer reports whether an answer value carries nothing worth recording
func IsEmptyAnswer(answer any) bool {
	switch v := answer.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	case map[string]string:
		return len(v) == 0
	}
	return false
}
