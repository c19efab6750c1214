package quiz

// QuizError is a custom error type for rejected quiz operations
type QuizError string

// Error implements the error interface
func (e QuizError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNotReady            QuizError = "session is not ready"
	ErrUnknownPlayer       QuizError = "unknown player"
	ErrWrongCode           QuizError = "wrong access code"
	ErrInvalidName         QuizError = "player name cannot be empty"
	ErrInvalidRound        QuizError = "invalid round"
	ErrNotAnswerable       QuizError = "round does not take answers"
	ErrAnsweringClosed     QuizError = "answering is closed"
	ErrNotVerified         QuizError = "player is not verified"
	ErrNoLives             QuizError = "player has no lives left"
	ErrInputBlocked        QuizError = "input is blocked"
	ErrNotTargeted         QuizError = "player is not targeted by this round"
	ErrEmptyAnswer         QuizError = "answer cannot be empty"
	ErrInvalidAnswer       QuizError = "answer does not fit the round"
	ErrInvalidHostPassword QuizError = "invalid host password"
	ErrNilConfig           QuizError = "config cannot be nil"
	ErrNilSessionRepo      QuizError = "session repository cannot be nil"
	ErrNilPersister        QuizError = "persister cannot be nil"
	ErrNilBroadcaster      QuizError = "broadcaster cannot be nil"
	ErrNilRandomizer       QuizError = "randomizer cannot be nil"
	ErrNilMessaging        QuizError = "messaging service cannot be nil"
	ErrNilClock            QuizError = "clock cannot be nil"
	ErrNilUUIDGenerator    QuizError = "UUID generator cannot be nil"
	ErrInvalidLivesRange   QuizError = "invalid lives range"
)
