package session

import "errors"

// Sentinel kinds for session errors.
var (
	ErrNoActiveGame = errors.New("no active game in session")
	ErrNoStakes     = errors.New("game has no stakes configured")
	ErrNotComplete  = errors.New("game is not completed")
)
