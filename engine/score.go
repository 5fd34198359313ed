package engine

import "math"

// Score is a position evaluation in centi-pawns from white's perspective, i.e.
// positive favours white. The two infinities are proven wins/losses.
type Score float64

var (
	// White has a forced win (black is mated).
	PosInf = Score(math.Inf(1))
	// Black has a forced win (white is mated).
	NegInf = Score(math.Inf(-1))
)

const DrawScore Score = 0

// Worst possible score for the given side, used to seed best-so-far.
func worstScore(maximizing bool) Score {
	if maximizing {
		return NegInf
	}
	return PosInf
}

// The sentinel for mating the opponent.
func mateScore(maximizing bool) Score {
	if maximizing {
		return PosInf
	}
	return NegInf
}

func maxScore(a, b Score) Score {
	if a > b {
		return a
	}
	return b
}

func minScore(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}

// IsMate reports whether s is one of the proven win/loss sentinels.
func (s Score) IsMate() bool {
	return math.IsInf(float64(s), 0)
}

// Pawns returns the score scaled down by a thousand, the way the engine has always
// reported its evaluation in the logs.
func (s Score) Pawns() float64 {
	return float64(s) / 1000
}
