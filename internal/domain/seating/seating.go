// Package seating computes dealer rotation and bidding order from seat
// positions. Everything here is pure modular arithmetic over the dense
// 0-based seating index; nothing depends on mutable game state.
package seating

// NextDealerIndex rotates the deal one seat clockwise.
func NextDealerIndex(currentDealerIndex, playerCount int) int {
	return (currentDealerIndex + 1) % playerCount
}

// DealerForRound returns the dealer seat for a round. Round 1 always uses
// the game's fixed initial dealer; each later round rotates one seat
// clockwise, purely as a function of the round number.
func DealerForRound(initialDealerIndex, roundNumber, playerCount int) int {
	rotations := roundNumber - 1
	return (initialDealerIndex + rotations) % playerCount
}

// CallingOrder returns the seats in bidding order: the seat after the dealer
// calls first, play continues clockwise, and the dealer calls last. The
// result is a permutation of [0, playerCount).
func CallingOrder(dealerIndex, playerCount int) []int {
	order := make([]int, 0, playerCount)
	for i := 0; i < playerCount; i++ {
		order = append(order, (dealerIndex+1+i)%playerCount)
	}
	return order
}

// CurrentCaller returns the seat that should call next given how many calls
// are already in. ok is false once every seat has called.
func CurrentCaller(dealerIndex, playerCount, callsMade int) (seat int, ok bool) {
	if callsMade >= playerCount {
		return 0, false
	}
	return CallingOrder(dealerIndex, playerCount)[callsMade], true
}

// CanPlayerCall reports whether the given seat is the current caller.
func CanPlayerCall(seatingPosition, dealerIndex, playerCount, callsMade int) bool {
	seat, ok := CurrentCaller(dealerIndex, playerCount, callsMade)
	return ok && seat == seatingPosition
}
