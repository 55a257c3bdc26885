// Package repository defines the game store interface and errors.
//
// A Game is the unit of storage, keyed by its ID; implementations persist
// the aggregate whole and return copies the caller may freely mutate.
package repository

import (
	"context"
	"time"

	"github.com/okian/callbreak/internal/domain/model"
)

// Store provides read/write access to persisted games.
type Store interface {
	// Save upserts a game by its ID.
	Save(ctx context.Context, g *model.Game) error

	// FindByID returns the game with the given ID.
	// Returns ErrNotFound if no such game exists.
	FindByID(ctx context.Context, id string) (*model.Game, error)

	// ActiveGame returns the single in-progress game, if any.
	// Returns ErrNotFound when no game is in progress.
	ActiveGame(ctx context.Context) (*model.Game, error)

	// CompletedGames returns completed games, most recently completed first.
	CompletedGames(ctx context.Context) ([]*model.Game, error)

	// AllGames returns every game, newest first by completion date falling
	// back to creation date.
	AllGames(ctx context.Context) ([]*model.Game, error)

	// Delete removes a game by ID. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every stored game.
	DeleteAll(ctx context.Context) error
}

// completedOrCreated is the sort key for history listings: completion date
// when present, creation date otherwise.
func completedOrCreated(g *model.Game) time.Time {
	if g.CompletedAt != nil {
		return *g.CompletedAt
	}
	return g.CreatedAt
}
