// Package session holds the single active game of a local play session and
// drives it through the state machine. Every operation applies a pure
// transition first and persists the new snapshot afterwards; a failed save
// is logged as a warning and counted, never rolled back — the in-memory
// state stays authoritative for the session.
package session

import (
	"context"
	"fmt"
	"sync"

	repository "github.com/okian/callbreak/internal/adapters/repository"
	"github.com/okian/callbreak/internal/config"
	"github.com/okian/callbreak/internal/domain/game"
	"github.com/okian/callbreak/internal/domain/model"
	"github.com/okian/callbreak/internal/domain/stakes"
	"github.com/okian/callbreak/pkg/logger"
	"github.com/okian/callbreak/pkg/metrics"
)

// Session owns the single current game. There is exactly one mutable game
// per session; the mutex only guards against a UI calling from multiple
// goroutines, not concurrent writers.
type Session struct {
	mu       sync.RWMutex
	store    repository.Store
	log      logger.Logger
	currency string
	history  int
	current  *model.Game
}

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithStore sets the persistence collaborator.
func WithStore(s repository.Store) Option {
	return func(se *Session) {
		if s != nil {
			se.store = s
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l logger.Logger) Option {
	return func(se *Session) {
		if l != nil {
			se.log = l
		}
	}
}

// WithDefaultCurrency sets the currency substituted into stakes tables that
// do not name one.
func WithDefaultCurrency(currency string) Option {
	return func(se *Session) {
		if currency != "" {
			se.currency = currency
		}
	}
}

// WithHistoryLimit caps how many completed games History returns. Zero means
// no cap.
func WithHistoryLimit(n int) Option {
	return func(se *Session) {
		if n > 0 {
			se.history = n
		}
	}
}

// New creates a Session with an in-memory store unless configured otherwise.
func New(opts ...Option) *Session {
	s := &Session{
		store:    repository.NewMemoryStore(),
		log:      logger.Get().Named("session"),
		currency: "$",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromConfig builds a Session wired per cfg: the log level is applied to the
// global logger, the configured store backend is constructed, and the default
// currency and history limit are carried. Extra options override cfg.
func FromConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Session, error) {
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return nil, err
	}
	store, err := repository.NewFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithStore(store),
		WithDefaultCurrency(cfg.DefaultCurrency),
		WithHistoryLimit(cfg.HistoryLimit),
	}
	return New(append(base, opts...)...), nil
}

// Current returns a copy of the session's game, or nil when none is loaded.
func (s *Session) Current() *model.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	return s.current.Clone()
}

// NewGame begins setup for a fresh game. Nothing is persisted until the
// game starts, matching the setup flow where a half-configured game is
// abandoned by simply navigating away.
func (s *Session) NewGame(ctx context.Context, playerCount int) (*model.Game, error) {
	g, err := game.New(playerCount)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.current = g
	s.mu.Unlock()
	return g.Clone(), nil
}

// SetPlayers replaces the player list during setup.
func (s *Session) SetPlayers(ctx context.Context, players []model.Player) (*model.Game, error) {
	return s.apply(ctx, false, func(g *model.Game) (*model.Game, error) {
		return game.SetPlayers(g, players)
	})
}

// ReorderSeating applies a new seating order during setup.
func (s *Session) ReorderSeating(ctx context.Context, ordered []model.Player) (*model.Game, error) {
	return s.apply(ctx, false, func(g *model.Game) (*model.Game, error) {
		return game.ReorderSeating(g, ordered)
	})
}

// SetInitialDealer fixes the round-1 dealer during setup.
func (s *Session) SetInitialDealer(ctx context.Context, dealerIndex int) (*model.Game, error) {
	return s.apply(ctx, false, func(g *model.Game) (*model.Game, error) {
		return game.SetInitialDealer(g, dealerIndex)
	})
}

// SetStakes attaches a stakes table during setup. A table without a currency
// gets the session's default.
func (s *Session) SetStakes(ctx context.Context, cfg model.StakesConfig) (*model.Game, error) {
	if cfg.Currency == "" {
		cfg.Currency = s.currency
	}
	return s.apply(ctx, false, func(g *model.Game) (*model.Game, error) {
		return game.SetStakes(g, cfg)
	})
}

// Start begins play and persists the game for the first time.
func (s *Session) Start(ctx context.Context) (*model.Game, error) {
	g, err := s.apply(ctx, true, game.Start)
	if err == nil {
		metrics.RecordGameStarted()
		metrics.UpdateActiveGames(1)
	}
	return g, err
}

// EnterCalls records the current round's calls.
func (s *Session) EnterCalls(ctx context.Context, calls []model.PlayerCall) (*model.Game, error) {
	g, err := s.apply(ctx, true, func(g *model.Game) (*model.Game, error) {
		return game.EnterCalls(g, calls)
	})
	if game.IsValidation(err) {
		metrics.RecordValidationFailure()
	}
	return g, err
}

// EnterResults records the current round's results and scores the round.
func (s *Session) EnterResults(ctx context.Context, results []model.PlayerResult) (*model.Game, error) {
	g, err := s.apply(ctx, true, func(g *model.Game) (*model.Game, error) {
		return game.EnterResults(g, results)
	})
	if err == nil {
		metrics.RecordRoundCompleted()
	}
	if game.IsValidation(err) {
		metrics.RecordValidationFailure()
	}
	return g, err
}

// Advance moves to the next round, or completes the game after round 5.
func (s *Session) Advance(ctx context.Context) (*model.Game, error) {
	g, err := s.apply(ctx, true, game.Advance)
	if err == nil && g.Status == model.StatusCompleted {
		metrics.RecordGameCompleted()
		metrics.UpdateActiveGames(0)
	}
	return g, err
}

// End completes the game early.
func (s *Session) End(ctx context.Context) (*model.Game, error) {
	g, err := s.apply(ctx, true, game.End)
	if err == nil {
		metrics.RecordGameCompleted()
		metrics.UpdateActiveGames(0)
	}
	return g, err
}

// Restart replaces the session's game with a fresh one reusing the current
// players, dealer, and stakes. The previous game must already be persisted;
// the new game is saved immediately.
func (s *Session) Restart(ctx context.Context) (*model.Game, error) {
	g, err := s.apply(ctx, true, func(g *model.Game) (*model.Game, error) {
		return game.Restart(g), nil
	})
	if err == nil {
		metrics.RecordGameStarted()
		metrics.UpdateActiveGames(1)
	}
	return g, err
}

// LoadActive loads the persisted in-progress game into the session.
// Returns repository.ErrNotFound when there is none.
func (s *Session) LoadActive(ctx context.Context) (*model.Game, error) {
	g, err := s.store.ActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.current = g
	s.mu.Unlock()
	metrics.UpdateActiveGames(1)
	return g.Clone(), nil
}

// History returns completed games, most recent first, capped at the
// configured history limit.
func (s *Session) History(ctx context.Context) ([]*model.Game, error) {
	games, err := s.store.CompletedGames(ctx)
	if err != nil {
		return nil, err
	}
	if s.history > 0 && len(games) > s.history {
		games = games[:s.history]
	}
	return games, nil
}

// AllGames returns every persisted game, newest first.
func (s *Session) AllGames(ctx context.Context) ([]*model.Game, error) {
	return s.store.AllGames(ctx)
}

// DeleteActive removes the session game's persisted record and clears the
// in-memory state.
func (s *Session) DeleteActive(ctx context.Context) error {
	s.mu.Lock()
	g := s.current
	s.mu.Unlock()
	if g == nil {
		return ErrNoActiveGame
	}
	if err := s.store.Delete(ctx, g.ID); err != nil {
		return fmt.Errorf("delete game %s: %w", g.ID, err)
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	metrics.UpdateActiveGames(0)
	return nil
}

// Payouts settles the completed session game against its stakes table.
func (s *Session) Payouts(ctx context.Context) ([]stakes.PlayerPayout, error) {
	s.mu.RLock()
	g := s.current
	s.mu.RUnlock()
	if g == nil {
		return nil, ErrNoActiveGame
	}
	if g.Status != model.StatusCompleted {
		return nil, ErrNotComplete
	}
	if g.Stakes == nil {
		return nil, ErrNoStakes
	}
	if len(g.Rounds) == 0 {
		return nil, ErrNotComplete
	}
	final := g.Rounds[len(g.Rounds)-1].Scores
	return stakes.Payouts(final, *g.Stakes), nil
}

// apply runs a transition against the session game and swaps in the result.
// With persist set, the new snapshot is saved; a save failure only warns.
func (s *Session) apply(ctx context.Context, persist bool, fn func(*model.Game) (*model.Game, error)) (*model.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoActiveGame
	}
	next, err := fn(s.current)
	if err != nil {
		return nil, err
	}
	s.current = next

	if persist {
		if err := s.store.Save(ctx, next); err != nil {
			metrics.RecordSaveFailure()
			s.log.Warn(ctx, "failed to save game; progress may be lost",
				logger.String("game_id", next.ID), logger.Error(err))
		}
	}
	return next.Clone(), nil
}
