package engine

import (
	"fmt"
	"math"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/pkg/errors"
)

type Phase uint8

const (
	Middlegame Phase = iota
	Endgame
	NPhases
)

func (p Phase) String() string {
	if p == Endgame {
		return "endgame"
	}
	return "middlegame"
}

const NSquares = 64

// Piece-square bonuses from the simplified evaluation function
// (https://www.chessprogramming.org/Simplified_Evaluation_Function).
// Tables are laid out the way they read on a diagram, rank 8 first. Black looks a
// square up directly (square 0 = a1 lands on the top row, black's far rank); white
// looks it up back to front.

var pawnMiddlegamePosVals = [NSquares]float64{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0}

// Passed-pawn pressure matters more than structure once the pieces are off.
var pawnEndgamePosVals = [NSquares]float64{
	0, 0, 0, 0, 0, 0, 0, 0,
	80, 80, 80, 80, 80, 80, 80, 80,
	50, 50, 50, 50, 50, 50, 50, 50,
	30, 30, 30, 30, 30, 30, 30, 30,
	20, 20, 20, 20, 20, 20, 20, 20,
	10, 10, 10, 10, 10, 10, 10, 10,
	10, 10, 10, 10, 10, 10, 10, 10,
	0, 0, 0, 0, 0, 0, 0, 0}

var knightPosVals = [NSquares]float64{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50}

var bishopPosVals = [NSquares]float64{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20}

var rookPosVals = [NSquares]float64{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0}

var queenPosVals = [NSquares]float64{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20}

var kingMiddlegamePosVals = [NSquares]float64{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20}

var kingEndgamePosVals = [NSquares]float64{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50}

// Only pawns and kings change tables between phases.
var defaultPosVals = [NPhases][dragon.King + 1]*[NSquares]float64{
	Middlegame: {
		dragon.Pawn:   &pawnMiddlegamePosVals,
		dragon.Knight: &knightPosVals,
		dragon.Bishop: &bishopPosVals,
		dragon.Rook:   &rookPosVals,
		dragon.Queen:  &queenPosVals,
		dragon.King:   &kingMiddlegamePosVals},
	Endgame: {
		dragon.Pawn:   &pawnEndgamePosVals,
		dragon.Knight: &knightPosVals,
		dragon.Bishop: &bishopPosVals,
		dragon.Rook:   &rookPosVals,
		dragon.Queen:  &queenPosVals,
		dragon.King:   &kingEndgamePosVals},
}

var pieceNames = [dragon.King + 1]string{
	dragon.Nothing: "nothing",
	dragon.Pawn:    "pawn",
	dragon.Knight:  "knight",
	dragon.Bishop:  "bishop",
	dragon.Rook:    "rook",
	dragon.Queen:   "queen",
	dragon.King:    "king"}

// Config key for a table override, e.g. "pawn_eg".
func tableKey(piece dragon.Piece, phase Phase) string {
	if phase == Endgame {
		return pieceNames[piece] + "_eg"
	}
	return pieceNames[piece] + "_mg"
}

// Per-colour lookup: squareTables[phase][color][piece][square], already mirrored
// so evaluation is a straight index.
type squareTables [NPhases][NColors][dragon.King + 1][NSquares]Score

// buildSquareTables lays out the default tables, replacing any given in
// overrides. Overrides must be 64 finite values and name a real piece/phase.
func buildSquareTables(overrides map[string][]float64) (*squareTables, error) {
	known := make(map[string]bool, 2*len(pieceNames))
	var tables squareTables

	for phase := Middlegame; phase < NPhases; phase++ {
		for piece := dragon.Piece(dragon.Pawn); piece <= dragon.King; piece++ {
			key := tableKey(piece, phase)
			known[key] = true

			posVals := defaultPosVals[phase][piece][:]
			if override, ok := overrides[key]; ok {
				if err := checkTable(key, override); err != nil {
					return nil, err
				}
				posVals = override
			}

			for sq := 0; sq < NSquares; sq++ {
				tables[phase][White][piece][sq] = Score(posVals[NSquares-1-sq])
				tables[phase][Black][piece][sq] = Score(posVals[sq])
			}
		}
	}

	for key := range overrides {
		if !known[key] {
			return nil, errors.Wrapf(ErrInvalidConfig, "unknown piece-square table %q", key)
		}
	}

	return &tables, nil
}

func checkTable(key string, posVals []float64) error {
	if len(posVals) != NSquares {
		return errors.Wrapf(ErrInvalidConfig, "piece-square table %q has %d entries, want %d", key, len(posVals), NSquares)
	}
	for i, v := range posVals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrap(ErrInvalidConfig, fmt.Sprintf("piece-square table %q entry %d is not finite", key, i))
		}
	}
	return nil
}
