// Package game is the Call Break state machine: pure transitions from a
// Game value plus an input to a new Game value or an error. The caller (a
// session layer) holds the single current instance; transitions never
// mutate their input.
//
// Game status moves setup -> in-progress -> completed. Within in-progress
// each round cycles pending -> calls-entered -> completed before the next
// round is appended. Recoverable input problems come back as
// *ValidationError; out-of-sequence calls come back wrapping ErrBadPhase.
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/callbreak/internal/domain/model"
	"github.com/okian/callbreak/internal/domain/rounds"
	"github.com/okian/callbreak/internal/domain/seating"
	"github.com/okian/callbreak/internal/domain/validate"
)

// New creates a game in setup with blank players at sequential seats.
func New(playerCount int) (*model.Game, error) {
	if playerCount < model.MinPlayers || playerCount > model.MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", ErrPlayerCount, playerCount)
	}

	players := make([]model.Player, 0, playerCount)
	for i := 0; i < playerCount; i++ {
		players = append(players, model.Player{
			ID:              fmt.Sprintf("player-%d", i),
			Name:            "",
			SeatingPosition: i,
		})
	}

	return &model.Game{
		ID:                 uuid.NewString(),
		CreatedAt:          time.Now(),
		Status:             model.StatusSetup,
		Players:            players,
		Rounds:             []model.Round{},
		CurrentRound:       1,
		InitialDealerIndex: 0,
	}, nil
}

// SetPlayers replaces the player list during setup. Blocking name problems
// reject the change; duplicate-name warnings pass through (the caller may
// still surface them via validate.PlayerNames).
func SetPlayers(g *model.Game, players []model.Player) (*model.Game, error) {
	if g.Status != model.StatusSetup {
		return nil, fmt.Errorf("set players: %w (status %s)", ErrBadPhase, g.Status)
	}
	if len(players) != len(g.Players) {
		return nil, fmt.Errorf("set players: %w", ErrPlayerCount)
	}

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	if res := validate.PlayerNames(names); !res.Valid {
		return nil, &ValidationError{Messages: res.Errors}
	}

	next := g.Clone()
	next.Players = append([]model.Player(nil), players...)
	return next, nil
}

// ReorderSeating replaces the seating order during setup, renumbering
// SeatingPosition densely from the given order.
func ReorderSeating(g *model.Game, ordered []model.Player) (*model.Game, error) {
	if g.Status != model.StatusSetup {
		return nil, fmt.Errorf("reorder seating: %w (status %s)", ErrBadPhase, g.Status)
	}
	if len(ordered) != len(g.Players) {
		return nil, fmt.Errorf("reorder seating: %w", ErrPlayerCount)
	}

	next := g.Clone()
	next.Players = make([]model.Player, len(ordered))
	for i, p := range ordered {
		p.SeatingPosition = i
		next.Players[i] = p
	}
	return next, nil
}

// SetInitialDealer fixes the round-1 dealer seat during setup.
func SetInitialDealer(g *model.Game, dealerIndex int) (*model.Game, error) {
	if g.Status != model.StatusSetup {
		return nil, fmt.Errorf("set initial dealer: %w (status %s)", ErrBadPhase, g.Status)
	}
	if dealerIndex < 0 || dealerIndex >= len(g.Players) {
		return nil, fmt.Errorf("set initial dealer: %w: %d", ErrSeatRange, dealerIndex)
	}

	next := g.Clone()
	next.InitialDealerIndex = dealerIndex
	return next, nil
}

// SetStakes attaches an optional stakes table during setup. The table needs
// one amount per non-winner and no negative amounts.
func SetStakes(g *model.Game, cfg model.StakesConfig) (*model.Game, error) {
	if g.Status != model.StatusSetup {
		return nil, fmt.Errorf("set stakes: %w (status %s)", ErrBadPhase, g.Status)
	}

	var msgs []string
	if want := len(g.Players) - 1; len(cfg.Amounts) != want {
		msgs = append(msgs, fmt.Sprintf("Expected %d stake amounts, got %d", want, len(cfg.Amounts)))
	}
	for i, a := range cfg.Amounts {
		if a < 0 {
			msgs = append(msgs, fmt.Sprintf("Stake amount %d cannot be negative", i+1))
		}
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	next := g.Clone()
	amounts := append([]float64(nil), cfg.Amounts...)
	next.Stakes = &model.StakesConfig{Currency: cfg.Currency, Amounts: amounts}
	return next, nil
}

// Start moves the game from setup to in-progress and creates round 1 with
// the fixed initial dealer.
func Start(g *model.Game) (*model.Game, error) {
	if g.Status != model.StatusSetup {
		return nil, fmt.Errorf("start: %w (status %s)", ErrBadPhase, g.Status)
	}

	next := g.Clone()
	next.Status = model.StatusInProgress
	next.CurrentRound = 1
	next.Rounds = []model.Round{rounds.New(1, next.InitialDealerIndex)}
	return next, nil
}

// EnterCalls records a full set of calls on the current round. Only legal
// while the round is pending.
func EnterCalls(g *model.Game, calls []model.PlayerCall) (*model.Game, error) {
	round := g.CurrentRoundRecord()
	if g.Status != model.StatusInProgress || round == nil || round.Status != model.RoundPending {
		return nil, fmt.Errorf("enter calls: %w", ErrBadPhase)
	}

	if res := validate.Calls(calls, len(g.Players)); !res.Valid {
		return nil, &ValidationError{Messages: res.Errors}
	}

	next := g.Clone()
	r := next.CurrentRoundRecord()
	r.Calls = append([]model.PlayerCall(nil), calls...)
	r.Status = model.RoundCallsEntered
	return next, nil
}

// EnterResults records a full set of trick results on the current round,
// computes its scores from all earlier rounds' cumulative totals, and marks
// the round completed. Only legal after calls have been entered.
func EnterResults(g *model.Game, results []model.PlayerResult) (*model.Game, error) {
	round := g.CurrentRoundRecord()
	if g.Status != model.StatusInProgress || round == nil || round.Status != model.RoundCallsEntered {
		return nil, fmt.Errorf("enter results: %w", ErrBadPhase)
	}

	if res := validate.Results(results, len(g.Players)); !res.Valid {
		return nil, &ValidationError{Messages: res.Errors}
	}

	previous := rounds.CumulativeScores(g.Rounds[:g.CurrentRound-1])
	scores, err := rounds.Scores(g.Players, round.Calls, results, previous)
	if err != nil {
		return nil, fmt.Errorf("enter results: %w", err)
	}

	next := g.Clone()
	r := next.CurrentRoundRecord()
	r.Results = append([]model.PlayerResult(nil), results...)
	r.Scores = scores
	r.Status = model.RoundCompleted
	return next, nil
}

// Advance closes out a completed round: after the final round it completes
// the game and stamps CompletedAt; otherwise it appends the next pending
// round with the dealer rotated one seat.
func Advance(g *model.Game) (*model.Game, error) {
	round := g.CurrentRoundRecord()
	if g.Status != model.StatusInProgress || round == nil || round.Status != model.RoundCompleted {
		return nil, fmt.Errorf("advance: %w", ErrBadPhase)
	}

	next := g.Clone()
	if next.CurrentRound == model.TotalRounds {
		now := time.Now()
		next.Status = model.StatusCompleted
		next.CompletedAt = &now
		return next, nil
	}

	next.CurrentRound++
	dealer := seating.DealerForRound(next.InitialDealerIndex, next.CurrentRound, len(next.Players))
	next.Rounds = append(next.Rounds, rounds.New(next.CurrentRound, dealer))
	return next, nil
}

// Restart produces a brand-new in-progress game reusing the players,
// initial dealer, and stakes of the given one. The old game is expected to
// already be persisted separately by the caller.
func Restart(g *model.Game) *model.Game {
	fresh := &model.Game{
		ID:                 uuid.NewString(),
		CreatedAt:          time.Now(),
		Status:             model.StatusInProgress,
		Players:            append([]model.Player(nil), g.Players...),
		Rounds:             []model.Round{rounds.New(1, g.InitialDealerIndex)},
		CurrentRound:       1,
		InitialDealerIndex: g.InitialDealerIndex,
	}
	if g.Stakes != nil {
		fresh.Stakes = &model.StakesConfig{
			Currency: g.Stakes.Currency,
			Amounts:  append([]float64(nil), g.Stakes.Amounts...),
		}
	}
	return fresh
}

// End completes an in-progress game early, stamping CompletedAt.
func End(g *model.Game) (*model.Game, error) {
	if g.Status != model.StatusInProgress {
		return nil, fmt.Errorf("end: %w (status %s)", ErrBadPhase, g.Status)
	}

	next := g.Clone()
	now := time.Now()
	next.Status = model.StatusCompleted
	next.CompletedAt = &now
	return next, nil
}
