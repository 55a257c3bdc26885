package game

import (
	"errors"
	"strings"
)

// Sentinel kinds for sequencing contract violations. These mean the caller
// invoked an operation the state machine does not allow in the current
// phase; a presentation layer obeying the machine never triggers them.
var (
	ErrPlayerCount = errors.New("player count must be 4 or 5")
	ErrBadPhase    = errors.New("operation not allowed in current phase")
	ErrSeatRange   = errors.New("dealer index out of range")
)

// ValidationError carries the full list of user-input validation messages
// for a rejected operation. It is recoverable: the caller fixes the input
// and resubmits; game state is untouched.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// IsValidation reports whether err is a recoverable input-validation
// failure, as opposed to a sequencing contract violation.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
