// Package model contains domain models passed between layers.
package model

import "time"

// Game limits fixed by the rules of Call Break.
const (
	TotalRounds    = 5  // a game is always five rounds
	TricksPerRound = 13 // full 13-card deal, 13 tricks contested
	MinCall        = 1
	MaxCall        = 13
	MinPlayers     = 4
	MaxPlayers     = 5
)

// GameStatus tracks a game through its lifecycle. Transitions are linear:
// setup -> in-progress -> completed, never backward.
type GameStatus string

const (
	StatusSetup      GameStatus = "setup"
	StatusInProgress GameStatus = "in-progress"
	StatusCompleted  GameStatus = "completed"
)

// RoundStatus tracks a round within a game. The state machine moves
// pending -> calls-entered -> completed; results-entered exists in the
// persisted schema but is never produced (kept for record compatibility).
type RoundStatus string

const (
	RoundPending        RoundStatus = "pending"
	RoundCallsEntered   RoundStatus = "calls-entered"
	RoundResultsEntered RoundStatus = "results-entered"
	RoundCompleted      RoundStatus = "completed"
)

// Player is a seat at the table. Identity is ID; SeatingPosition is a dense
// 0-based index into the seating order, unique within a game.
type Player struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	SeatingPosition int    `json:"seatingPosition"`
}

// StakesConfig is an optional payment table. Amounts has length
// playerCount-1, ordered from what the lowest-ranked finisher pays down to
// what 2nd place pays.
type StakesConfig struct {
	Currency string    `json:"currency"`
	Amounts  []float64 `json:"amounts"`
}

// PlayerCall is a player's bid for tricks in a round.
type PlayerCall struct {
	PlayerID string `json:"playerId"`
	Call     int    `json:"call"`
}

// PlayerResult is the tricks a player actually won in a round. Results for a
// round must sum to exactly TricksPerRound.
type PlayerResult struct {
	PlayerID  string `json:"playerId"`
	TricksWon int    `json:"tricksWon"`
}

// RoundScore is derived from a round's calls and results at the moment the
// results are validated, and immutable thereafter.
type RoundScore struct {
	PlayerID        string  `json:"playerId"`
	PlayerName      string  `json:"playerName"`
	Call            int     `json:"call"`
	Result          int     `json:"result"`
	RoundScore      float64 `json:"roundScore"`
	CumulativeScore float64 `json:"cumulativeScore"`
	CallMet         bool    `json:"callMet"`
	ExtraTricks     int     `json:"extraTricks"`
}

// Round is one deal-and-play cycle. A round is created pending with empty
// collections and replaced by value as calls then results arrive.
type Round struct {
	RoundNumber int            `json:"roundNumber"`
	DealerIndex int            `json:"dealerIndex"`
	Status      RoundStatus    `json:"status"`
	Calls       []PlayerCall   `json:"calls"`
	Results     []PlayerResult `json:"results"`
	Scores      []RoundScore   `json:"scores"`
}

// Game is the root aggregate and the unit of persistence, keyed by ID.
type Game struct {
	ID                 string        `json:"id"`
	CreatedAt          time.Time     `json:"createdAt"`
	CompletedAt        *time.Time    `json:"completedAt,omitempty"`
	Status             GameStatus    `json:"status"`
	Players            []Player      `json:"players"`
	Rounds             []Round       `json:"rounds"`
	CurrentRound       int           `json:"currentRound"`
	InitialDealerIndex int           `json:"initialDealerIndex"`
	Stakes             *StakesConfig `json:"stakes,omitempty"`
}

// CurrentRoundRecord returns the record for the game's current round, or nil
// if no round has been created yet.
func (g *Game) CurrentRoundRecord() *Round {
	idx := g.CurrentRound - 1
	if idx < 0 || idx >= len(g.Rounds) {
		return nil
	}
	return &g.Rounds[idx]
}

// Dealer returns the player dealing the current round, or nil before the
// first round exists.
func (g *Game) Dealer() *Player {
	r := g.CurrentRoundRecord()
	if r == nil {
		return nil
	}
	if r.DealerIndex < 0 || r.DealerIndex >= len(g.Players) {
		return nil
	}
	return &g.Players[r.DealerIndex]
}

// Complete reports whether the game has finished all rounds.
func (g *Game) Complete() bool {
	return g.Status == StatusCompleted
}

// Winner returns the player with the highest cumulative score in the last
// scored round, or nil if the game is not completed or nothing was scored.
func (g *Game) Winner() *Player {
	if g.Status != StatusCompleted || len(g.Rounds) == 0 {
		return nil
	}
	last := g.Rounds[len(g.Rounds)-1]
	if len(last.Scores) == 0 {
		return nil
	}
	best := last.Scores[0]
	for _, s := range last.Scores[1:] {
		if s.CumulativeScore > best.CumulativeScore {
			best = s
		}
	}
	for i := range g.Players {
		if g.Players[i].ID == best.PlayerID {
			return &g.Players[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the game so callers can mutate the copy
// without sharing round or score slices with the original.
func (g *Game) Clone() *Game {
	out := *g
	if g.CompletedAt != nil {
		t := *g.CompletedAt
		out.CompletedAt = &t
	}
	if g.Stakes != nil {
		s := StakesConfig{Currency: g.Stakes.Currency}
		s.Amounts = append([]float64(nil), g.Stakes.Amounts...)
		out.Stakes = &s
	}
	out.Players = append([]Player(nil), g.Players...)
	out.Rounds = make([]Round, len(g.Rounds))
	for i, r := range g.Rounds {
		cp := r
		cp.Calls = append([]PlayerCall(nil), r.Calls...)
		cp.Results = append([]PlayerResult(nil), r.Results...)
		cp.Scores = append([]RoundScore(nil), r.Scores...)
		out.Rounds[i] = cp
	}
	return &out
}
