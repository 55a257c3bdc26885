// Package rounds builds round records and assembles per-player scores from
// calls, results, and prior cumulative totals.
package rounds

import (
	"fmt"

	"github.com/okian/callbreak/internal/domain/model"
	"github.com/okian/callbreak/internal/domain/scoring"
)

// New creates a fresh pending round with empty collections.
func New(roundNumber, dealerIndex int) model.Round {
	return model.Round{
		RoundNumber: roundNumber,
		DealerIndex: dealerIndex,
		Status:      model.RoundPending,
		Calls:       []model.PlayerCall{},
		Results:     []model.PlayerResult{},
		Scores:      []model.RoundScore{},
	}
}

// Scores assembles a RoundScore for every player from that round's calls and
// results plus the previous cumulative totals (missing players default to 0).
// Calls and results are expected to have passed validation already; a player
// without a call or result here is a contract violation, reported as an
// error wrapping ErrMissingCall or ErrMissingResult.
func Scores(
	players []model.Player,
	calls []model.PlayerCall,
	results []model.PlayerResult,
	previousCumulative map[string]float64,
) ([]model.RoundScore, error) {
	callByPlayer := make(map[string]int, len(calls))
	for _, c := range calls {
		callByPlayer[c.PlayerID] = c.Call
	}
	resultByPlayer := make(map[string]int, len(results))
	for _, r := range results {
		resultByPlayer[r.PlayerID] = r.TricksWon
	}

	out := make([]model.RoundScore, 0, len(players))
	for _, p := range players {
		call, ok := callByPlayer[p.ID]
		if !ok {
			return nil, fmt.Errorf("player %q (%s): %w", p.Name, p.ID, ErrMissingCall)
		}
		result, ok := resultByPlayer[p.ID]
		if !ok {
			return nil, fmt.Errorf("player %q (%s): %w", p.Name, p.ID, ErrMissingResult)
		}

		roundScore := scoring.RoundScore(call, result)
		cumulative := scoring.CumulativeScore(previousCumulative[p.ID], roundScore)

		extra := result - call
		if extra < 0 {
			extra = 0
		}

		out = append(out, model.RoundScore{
			PlayerID:        p.ID,
			PlayerName:      p.Name,
			Call:            call,
			Result:          result,
			RoundScore:      roundScore,
			CumulativeScore: cumulative,
			CallMet:         result == call,
			ExtraTricks:     extra,
		})
	}
	return out, nil
}

// CumulativeScores folds completed rounds in order into a map of player ID
// to latest cumulative score; the last write per player wins.
func CumulativeScores(priorRounds []model.Round) map[string]float64 {
	scores := make(map[string]float64)
	for _, round := range priorRounds {
		for _, s := range round.Scores {
			scores[s.PlayerID] = s.CumulativeScore
		}
	}
	return scores
}
