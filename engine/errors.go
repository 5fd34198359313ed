package engine

import "github.com/pkg/errors"

var (
	// Configuration could not be used - bad tables, thresholds or unknown names.
	ErrInvalidConfig = errors.New("engine: invalid configuration")

	// The root position is checkmate or stalemate so there is nothing to play.
	ErrGameOver = errors.New("engine: game is over")

	// The board reported no legal moves for a position it doesn't consider terminal.
	ErrInvariant = errors.New("engine: no legal moves in a non-terminal position")

	// The search was cancelled or ran past its deadline.
	ErrSearchAborted = errors.New("engine: search aborted")

	// Anything else that went wrong during a search, typically a board fault.
	ErrSearchFailed = errors.New("engine: search failed")
)
