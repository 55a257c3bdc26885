package repository

import "errors"

// Sentinel kinds for game store errors.
var (
	ErrNotFound = errors.New("game not found")
)
