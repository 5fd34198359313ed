package engine_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SerhiiStets/AVA-chess-engine/dragonboard"
	"github.com/SerhiiStets/AVA-chess-engine/engine"
)

var startpos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
var blackDownAQueen = "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
var kingAndPawn = "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"
var italian = "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3"
var middlegame = "r2q1rk1/pp2bppp/2n1bn2/3p4/3P4/2NBBN2/PP3PPP/R2Q1RK1 w - - 4 11"
var rookEnding = "8/5pk1/6p1/8/3R4/6P1/r4PK1/8 b - - 1 40"
var minorPieces = "2b1k3/3n4/8/8/8/8/3NB3/4K3 w - - 0 50"

func newBoard(t *testing.T, fen string) *dragonboard.Board {
	t.Helper()
	board, err := dragonboard.FromFen(fen)
	require.NoError(t, err)
	return board
}

func newEvaluator(t *testing.T, preset string) *engine.Evaluator {
	t.Helper()
	cfg, err := engine.Preset(preset)
	require.NoError(t, err)
	eval, err := engine.NewEvaluator(cfg.Eval)
	require.NoError(t, err)
	return eval
}

// mirror turns the board half a turn and swaps the colours, so every white
// piece on square s becomes a black piece on square 63-s.
func mirror(fen string) string {
	fields := strings.Fields(fen)

	placement := []rune(fields[0])
	for i, j := 0, len(placement)-1; i < j; i, j = i+1, j-1 {
		placement[i], placement[j] = placement[j], placement[i]
	}
	for i, r := range placement {
		if unicode.IsUpper(r) {
			placement[i] = unicode.ToLower(r)
		} else {
			placement[i] = unicode.ToUpper(r)
		}
	}

	side := "w"
	if fields[1] == "w" {
		side = "b"
	}
	return strings.Join([]string{string(placement), side, "-", "-", "0", "1"}, " ")
}

func TestMirror(t *testing.T) {
	assert.Equal(t, "3k4/3p4/8/8/8/8/8/3K4 b - - 0 1", mirror(kingAndPawn))
}

func TestEvaluateKnownScores(t *testing.T) {
	// Endgame tables, pawn worth 208 plus 10 on e2, kings cancel out.
	assert.Equal(t, engine.Score(218), newEvaluator(t, engine.DualPreset).Evaluate(newBoard(t, kingAndPawn)))

	// Classic: 100 + 10 for the pawn, and every lone piece earns the full 50.
	assert.Equal(t, engine.Score(160), newEvaluator(t, engine.ClassicPreset).Evaluate(newBoard(t, kingAndPawn)))

	for _, preset := range []string{engine.DualPreset, engine.ClassicPreset} {
		assert.Zero(t, newEvaluator(t, preset).Evaluate(newBoard(t, startpos)), preset)
	}

	// The queen's value plus the -5 she had on d8; still a middlegame.
	dual := newEvaluator(t, engine.DualPreset)
	assert.Equal(t, engine.Score(2531), dual.Evaluate(newBoard(t, blackDownAQueen))-dual.Evaluate(newBoard(t, startpos)))
}

func TestEvaluateIsDeterministic(t *testing.T) {
	eval := newEvaluator(t, engine.DualPreset)
	for _, fen := range []string{startpos, italian, middlegame, rookEnding} {
		board := newBoard(t, fen)
		before := board.FEN()

		first := eval.Evaluate(board)
		assert.Equal(t, first, eval.Evaluate(board), fen)
		assert.Equal(t, before, board.FEN())
	}
}

func TestEvaluateIsColourSymmetric(t *testing.T) {
	fens := []string{startpos, blackDownAQueen, kingAndPawn, italian, middlegame, rookEnding, minorPieces}

	for _, preset := range []string{engine.DualPreset, engine.ClassicPreset} {
		eval := newEvaluator(t, preset)
		for _, fen := range fens {
			score := eval.Evaluate(newBoard(t, fen))
			mirrored := eval.Evaluate(newBoard(t, mirror(fen)))
			assert.InDelta(t, float64(score), -float64(mirrored), 1e-9, "%s %s", preset, fen)
		}
	}
}

func TestPhase(t *testing.T) {
	tests := []struct {
		preset string
		fen    string
		phase  engine.Phase
	}{
		{engine.DualPreset, startpos, engine.Middlegame},
		{engine.DualPreset, kingAndPawn, engine.Endgame},
		// Queen and rook each is under the threshold...
		{engine.DualPreset, "3qk2r/8/8/8/8/8/8/3QK2R w - - 0 1", engine.Endgame},
		// ...but both sides have to be.
		{engine.DualPreset, "3qk1nr/8/8/8/8/8/8/3QK2R w - - 0 1", engine.Middlegame},
		{engine.DualPreset, rookEnding, engine.Endgame},

		{engine.ClassicPreset, startpos, engine.Middlegame},
		{engine.ClassicPreset, "rnb1kbnr/8/8/8/8/8/8/RNB1KBNR w - - 0 1", engine.Middlegame},
		{engine.ClassicPreset, "r3kb2/8/8/8/8/8/8/R3KB2 w - - 0 1", engine.Endgame},
		{engine.ClassicPreset, "3qk2r/8/8/8/8/8/8/3QK2R w - - 0 1", engine.Endgame},
		{engine.ClassicPreset, "3qkb1r/8/8/8/8/8/8/3QKB1R w - - 0 1", engine.Middlegame},
	}

	for _, test := range tests {
		eval := newEvaluator(t, test.preset)
		assert.Equal(t, test.phase, eval.PhaseOf(newBoard(t, test.fen)), "%s %s", test.preset, test.fen)
	}
}

func TestNoQueensPhase(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Eval.PhaseRule = engine.PhaseNoQueens
	eval, err := engine.NewEvaluator(cfg.Eval)
	require.NoError(t, err)

	assert.Equal(t, engine.Middlegame, eval.PhaseOf(newBoard(t, "3qk3/8/8/8/8/8/8/4K3 w - - 0 1")))
	assert.Equal(t, engine.Endgame, eval.PhaseOf(newBoard(t, "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNB1KBNR w KQkq - 0 1")))
}

func TestNewEvaluatorRejectsBadTables(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Eval.Tables = map[string][]float64{"rook_eg": make([]float64, 63)}
	_, err := engine.NewEvaluator(cfg.Eval)
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)

	cfg.Eval.Tables = nil
	cfg.Eval.PhaseRule = "sometimes"
	_, err = engine.NewEvaluator(cfg.Eval)
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
}
