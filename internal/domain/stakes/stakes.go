// Package stakes converts final standings into money payouts under an
// optional stakes table.
package stakes

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/callbreak/internal/domain/model"
)

// PlayerPayout is one player's line in the final settlement. AmountPaid is
// negative for a paying player and positive for the winner.
type PlayerPayout struct {
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Rank       int     `json:"rank"`
	Score      float64 `json:"score"`
	AmountPaid float64 `json:"amountPaid"`
}

// Payouts ranks players by cumulative score (descending) and settles the
// stakes table. Rank r pays cfg.Amounts[N-r], so the lowest-ranked finisher
// pays the first configured amount; the winner collects the whole pot, which
// makes the settlement zero-sum. Ties keep the input order (the sort is
// stable; no explicit tiebreak rule exists).
func Payouts(finalScores []model.RoundScore, cfg model.StakesConfig) []PlayerPayout {
	sorted := append([]model.RoundScore(nil), finalScores...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CumulativeScore > sorted[j].CumulativeScore
	})

	payouts := make([]PlayerPayout, 0, len(sorted))
	totalPot := 0.0

	for i, s := range sorted {
		rank := i + 1
		p := PlayerPayout{
			PlayerID:   s.PlayerID,
			PlayerName: s.PlayerName,
			Rank:       rank,
			Score:      s.CumulativeScore,
		}
		if rank > 1 {
			// Reverse order into the table: last place pays the most.
			idx := len(sorted) - rank
			amount := 0.0
			if idx >= 0 && idx < len(cfg.Amounts) {
				amount = cfg.Amounts[idx]
			}
			totalPot += amount
			p.AmountPaid = -amount
		}
		payouts = append(payouts, p)
	}

	if len(payouts) > 0 {
		payouts[0].AmountPaid = totalPot
	}
	return payouts
}

// FormatMoney renders a signed amount with the currency symbol before the
// number, e.g. "+$30.00" or "-Rs5.00".
func FormatMoney(amount float64, currency string) string {
	sign := "+"
	if amount < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%s%.2f", sign, currency, math.Abs(amount))
}
