package rounds

import "errors"

// Sentinel kinds for contract violations: calls and results reaching Scores
// must already have passed validation, so a missing entry is a programmer
// error, not user input.
var (
	ErrMissingCall   = errors.New("missing call for player")
	ErrMissingResult = errors.New("missing result for player")
)
