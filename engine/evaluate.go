package engine

import (
	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/pkg/errors"
)

// PhaseRule picks how a position is classed as endgame.
type PhaseRule string

const (
	// Both sides are down to EndgameThreshold of non-king material (middlegame values).
	PhaseMaterial PhaseRule = "material"
	// No queens left on the board.
	PhaseNoQueens PhaseRule = "no-queens"
	// Queens gone and at most three rooks/minors each, or at most one each with
	// at most two queens in total.
	PhaseMinorCount PhaseRule = "minor-count"
)

type PieceValues struct {
	Pawn   float64 `yaml:"pawn" validate:"gt=0"`
	Knight float64 `yaml:"knight" validate:"gt=0"`
	Bishop float64 `yaml:"bishop" validate:"gt=0"`
	Rook   float64 `yaml:"rook" validate:"gt=0"`
	Queen  float64 `yaml:"queen" validate:"gt=0"`
}

func (pv *PieceValues) byPiece() [dragon.King + 1]Score {
	return [dragon.King + 1]Score{
		dragon.Pawn:   Score(pv.Pawn),
		dragon.Knight: Score(pv.Knight),
		dragon.Bishop: Score(pv.Bishop),
		dragon.Rook:   Score(pv.Rook),
		dragon.Queen:  Score(pv.Queen)}
}

type EvalConfig struct {
	Middlegame PieceValues `yaml:"middlegame"`
	Endgame    PieceValues `yaml:"endgame"`
	PhaseRule  PhaseRule   `yaml:"phase_rule" validate:"oneof=material no-queens minor-count"`
	// Only used by PhaseMaterial.
	EndgameThreshold float64 `yaml:"endgame_threshold" validate:"gte=0"`
	// Endgame bonus split across the pieces of each type a side has; 0 disables it.
	ScarcityBonus float64 `yaml:"scarcity_bonus" validate:"gte=0"`
	// Replacement piece-square tables keyed "<piece>_mg" / "<piece>_eg".
	Tables map[string][]float64 `yaml:"tables,omitempty"`
}

// Evaluator is the static evaluation: material plus piece-square bonuses, with
// separate middlegame and endgame values and tables.
type Evaluator struct {
	values    [NPhases][dragon.King + 1]Score
	phaseRule PhaseRule
	threshold Score
	scarcity  Score
	tables    *squareTables
}

func NewEvaluator(cfg EvalConfig) (*Evaluator, error) {
	tables, err := buildSquareTables(cfg.Tables)
	if err != nil {
		return nil, err
	}

	switch cfg.PhaseRule {
	case PhaseMaterial, PhaseNoQueens, PhaseMinorCount:
	default:
		return nil, errors.Wrapf(ErrInvalidConfig, "unknown phase rule %q", cfg.PhaseRule)
	}

	return &Evaluator{
		values:    [NPhases][dragon.King + 1]Score{cfg.Middlegame.byPiece(), cfg.Endgame.byPiece()},
		phaseRule: cfg.PhaseRule,
		threshold: Score(cfg.EndgameThreshold),
		scarcity:  Score(cfg.ScarcityBonus),
		tables:    tables,
	}, nil
}

type pieceCounts [NColors][dragon.King + 1]int

// Evaluate returns the static eval from white's perspective. No mate or draw
// detection here - that is the search's job.
func (e *Evaluator) Evaluate(board Board) Score {
	var pieces [NSquares]dragon.Piece
	var colors [NSquares]Color
	var counts pieceCounts

	for sq := uint8(0); sq < NSquares; sq++ {
		piece, color := board.PieceAt(sq)
		pieces[sq], colors[sq] = piece, color
		counts[color][piece]++
	}

	phase := e.phase(&counts)
	values := &e.values[phase]
	posVals := &e.tables[phase]

	var totals [NColors]Score
	for sq := 0; sq < NSquares; sq++ {
		piece := pieces[sq]
		if piece == dragon.Nothing {
			continue
		}
		color := colors[sq]

		totals[color] += values[piece] + posVals[color][piece][sq]

		if phase == Endgame && e.scarcity != 0 {
			totals[color] += e.scarcity / Score(counts[color][piece])
		}
	}

	return totals[White] - totals[Black]
}

// PhaseOf reports which set of values and tables Evaluate would use.
func (e *Evaluator) PhaseOf(board Board) Phase {
	var counts pieceCounts
	for sq := uint8(0); sq < NSquares; sq++ {
		piece, color := board.PieceAt(sq)
		counts[color][piece]++
	}
	return e.phase(&counts)
}

func (e *Evaluator) phase(counts *pieceCounts) Phase {
	var endgame bool

	switch e.phaseRule {
	case PhaseMaterial:
		endgame = e.nonKingMaterial(&counts[White]) <= e.threshold &&
			e.nonKingMaterial(&counts[Black]) <= e.threshold

	case PhaseNoQueens:
		endgame = counts[White][dragon.Queen]+counts[Black][dragon.Queen] == 0

	case PhaseMinorCount:
		queens := counts[White][dragon.Queen] + counts[Black][dragon.Queen]
		wPieces := rooksAndMinors(&counts[White])
		bPieces := rooksAndMinors(&counts[Black])
		endgame = (queens == 0 && wPieces <= 3 && bPieces <= 3) ||
			(wPieces <= 1 && bPieces <= 1 && queens <= 2)
	}

	if endgame {
		return Endgame
	}
	return Middlegame
}

func (e *Evaluator) nonKingMaterial(counts *[dragon.King + 1]int) Score {
	var material Score
	for piece := dragon.Pawn; piece < dragon.King; piece++ {
		material += Score(counts[piece]) * e.values[Middlegame][piece]
	}
	return material
}

func rooksAndMinors(counts *[dragon.King + 1]int) int {
	return counts[dragon.Rook] + counts[dragon.Bishop] + counts[dragon.Knight]
}
