package engine

import (
	"context"
	"fmt"
	"time"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Engine picks moves: the time policy chooses a depth and the search finds the
// best move at that depth.
type Engine struct {
	cfg    Config
	eval   *Evaluator
	logger zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	eval, err := NewEvaluator(cfg.Eval)
	if err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, eval: eval, logger: logger}, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) Evaluator() *Evaluator {
	return e.eval
}

// Play returns the move to make in the given position. It never returns NoMove
// without an error. The board is used as scratch space and is back in its
// original state when Play returns, whatever the outcome.
func (e *Engine) Play(ctx context.Context, board Board, budget Budget) (move dragon.Move, err error) {
	legalMoves := board.GenerateLegalMoves()
	if len(legalMoves) == 0 {
		if board.IsCheckmate() || board.IsStalemate() {
			return NoMove, ErrGameOver
		}
		return NoMove, errors.WithStack(ErrInvariant)
	}

	depth := e.cfg.Time.DepthFor(budget)

	if e.cfg.Search.MoveDeadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Search.MoveDeadline)
		defer cancel()
	}

	s := NewSearchT(ctx, board, e.eval)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Str("panic", fmt.Sprint(r)).Int("depth", depth).Msg("search failed")
			move, err = NoMove, errors.Wrap(ErrSearchFailed, fmt.Sprint(r))
		}
	}()

	result, err := s.Search(e.cfg.Search.Algorithm, depth)
	switch {
	case errors.Is(err, ErrSearchAborted):
		e.logger.Warn().Err(err).Int("depth", depth).Msg("search aborted, playing best move so far")
		result = s.RootBest()

	case err != nil:
		e.logger.Error().Err(err).Int("depth", depth).Msg("search failed")
		if errors.Is(err, ErrInvariant) {
			return NoMove, err
		}
		return NoMove, errors.Wrap(ErrSearchFailed, err.Error())
	}

	if result.Move == NoMove {
		result.Move = legalMoves[0]
	}

	e.logger.Info().
		Str("move", result.Move.String()).
		Float64("score", float64(result.Score)).
		Float64("pawns", result.Score.Pawns()).
		Int("depth", depth).
		Dur("took", time.Since(start)).
		Object("stats", s.Stats()).
		Msg("best move")

	return result.Move, nil
}
