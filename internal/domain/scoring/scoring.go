// Package scoring computes round and cumulative Call Break scores.
package scoring

import (
	"math"
	"strconv"
)

// Scoring constants.
const (
	overtrickBonus = 0.1 // bonus per trick won above the call
	// carryThreshold is the fractional-part count (in 0.01 units) at which
	// accumulated overtrick bonus rolls over into whole base points: 13
	// overtricks' worth of bonus converts to 1.0.
	carryThreshold = 13
	centsPerPoint  = 100
)

// RoundScore computes a player's score for one round.
//
// Rules:
//   - result < call: the bid failed, full penalty of -call
//   - result == call: the bid was met exactly, +call
//   - result > call: +call plus overtrickBonus per extra trick
func RoundScore(call, result int) float64 {
	if result < call {
		return -float64(call)
	}
	if result == call {
		return float64(call)
	}
	return float64(call) + float64(result-call)*overtrickBonus
}

// CumulativeScore adds a round score to the previous cumulative total and
// normalizes the fractional part. The fractional part (in 0.01 units) counts
// accumulated overtrick bonus; once it reaches carryThreshold, each complete
// multiple of 0.13 converts to 1.0 of base score with the remainder kept.
// Example: 8.13 + 0.02 sums to 8.15 and normalizes to 9.02.
func CumulativeScore(previousCumulative, roundScore float64) float64 {
	return normalize(previousCumulative + roundScore)
}

// normalize rounds to 2 decimal places (avoiding binary float drift) and
// applies the fractional carry.
func normalize(score float64) float64 {
	rounded := math.Round(score*centsPerPoint) / centsPerPoint

	base := math.Floor(rounded)
	cents := int(math.Round((rounded - base) * centsPerPoint))

	if cents >= carryThreshold {
		carried := cents / carryThreshold
		remaining := cents % carryThreshold
		return base + float64(carried) + float64(remaining)/centsPerPoint
	}
	return rounded
}

// FormatScore renders a score with a fixed single decimal digit, e.g. "3.0",
// "-5.0", "4.2".
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}
