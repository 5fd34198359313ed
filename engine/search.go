package engine

import (
	"context"
	"fmt"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/pkg/errors"
)

// StaticEvaluator scores a position from white's perspective.
type StaticEvaluator interface {
	Evaluate(board Board) Score
}

// SearchResult is the outcome of one search call. Move is NoMove at leaves.
type SearchResult struct {
	Move  dragon.Move
	Score Score
}

// SearchT holds the state of a single fixed-depth search. The board is borrowed
// for the lifetime of the search and restored on every return path.
type SearchT struct {
	ctx   context.Context
	board Board
	eval  StaticEvaluator

	rootDepth int
	rootBest  SearchResult // best root child fully searched so far
	stats     SearchStatsT
}

func NewSearchT(ctx context.Context, board Board, eval StaticEvaluator) *SearchT {
	return &SearchT{ctx: ctx, board: board, eval: eval}
}

func (s *SearchT) Stats() *SearchStatsT {
	return &s.stats
}

// RootBest is the best root move found before the search stopped. Only
// meaningful after Search returned ErrSearchAborted.
func (s *SearchT) RootBest() SearchResult {
	return s.rootBest
}

// Search runs the chosen algorithm from the root with the full window, with the
// side to move as the maximizer iff it is white.
func (s *SearchT) Search(algorithm Algorithm, depth int) (SearchResult, error) {
	s.rootDepth = depth
	s.rootBest = SearchResult{NoMove, worstScore(s.board.WhiteToMove())}

	if algorithm == MiniMaxAlgorithm {
		return s.MiniMax(depth, s.board.WhiteToMove())
	}
	return s.AlphaBeta(depth, NegInf, PosInf, s.board.WhiteToMove())
}

// Return the best score attainable through alpha-beta from the current position,
// along with the move that leads to it. Scores are from white's perspective;
// white maximises.
func (s *SearchT) AlphaBeta(depthToGo int, alpha Score, beta Score, maximizing bool) (SearchResult, error) {
	s.stats.Nodes++

	if depthToGo <= 0 || isGameOver(s.board) {
		s.stats.Leafs++
		return SearchResult{NoMove, s.eval.Evaluate(s.board)}, nil
	}

	legalMoves := s.board.GenerateLegalMoves()
	if len(legalMoves) == 0 {
		return SearchResult{}, errors.WithStack(ErrInvariant)
	}
	s.stats.NonLeafs++

	best := SearchResult{NoMove, worstScore(maximizing)}

	for i, move := range OrderMoves(s.board, legalMoves) {
		if err := s.aborted(); err != nil {
			return best, err
		}

		score, err := s.child(move, maximizing, func() (SearchResult, error) {
			return s.AlphaBeta(depthToGo-1, alpha, beta, !maximizing)
		})
		if err != nil {
			return best, err
		}

		// Strictly better only - ties stay with the earlier move.
		if better(score, best.Score, maximizing) {
			best = SearchResult{move, score}
		}
		s.noteRoot(depthToGo, best)

		if maximizing {
			alpha = maxScore(alpha, score)
		} else {
			beta = minScore(beta, score)
		}

		if beta <= alpha {
			s.stats.CutNodes++
			s.stats.CutNodeChildren += uint64(i + 1)
			if i == 0 {
				s.stats.FirstChildCuts++
			}
			break
		}
	}

	return best, nil
}

// child plays the move, scores the resulting position and takes the move back,
// whichever way the scoring returns. A mate is the mover's sentinel and a draw
// is 0 without searching further.
func (s *SearchT) child(move dragon.Move, maximizing bool, deeper func() (SearchResult, error)) (Score, error) {
	unapply := s.board.Apply(move)
	defer unapply()

	if s.board.IsCheckmate() {
		s.stats.Mates++
		return mateScore(maximizing), nil
	}
	if isDraw(s.board) {
		s.stats.Draws++
		return DrawScore, nil
	}

	result, err := deeper()
	return result.Score, err
}

func (s *SearchT) noteRoot(depthToGo int, best SearchResult) {
	if depthToGo == s.rootDepth {
		s.rootBest = best
	}
}

// Checked between siblings; the unwinding frames undo their moves on the way out.
func (s *SearchT) aborted() error {
	if s.ctx == nil {
		return nil
	}
	select {
	case <-s.ctx.Done():
		return fmt.Errorf("%w: %w", ErrSearchAborted, s.ctx.Err())
	default:
		return nil
	}
}

func better(score, best Score, maximizing bool) bool {
	if maximizing {
		return score > best
	}
	return score < best
}
