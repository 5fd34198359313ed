package engine

import "github.com/pkg/errors"

// Return the best score through plain minimax from the current position, along
// with the move leading to it. Same leaves, terminal scores and tie-breaks as
// AlphaBeta, but every node is searched.
func (s *SearchT) MiniMax(depthToGo int, maximizing bool) (SearchResult, error) {
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

	for _, move := range OrderMoves(s.board, legalMoves) {
		if err := s.aborted(); err != nil {
			return best, err
		}

		score, err := s.child(move, maximizing, func() (SearchResult, error) {
			return s.MiniMax(depthToGo-1, !maximizing)
		})
		if err != nil {
			return best, err
		}

		// Strictly better to match alphabeta
		if better(score, best.Score, maximizing) {
			best = SearchResult{move, score}
		}
		s.noteRoot(depthToGo, best)
	}

	return best, nil
}
