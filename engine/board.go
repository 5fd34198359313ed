package engine

import dragon "github.com/dylhunn/dragontoothmg"

const NoMove dragon.Move = 0

type Color uint8

const (
	White Color = iota
	Black
	NColors
)

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Board is the rules engine the search drives. The engine never copies it:
// every Apply must be matched by calling the returned unapply before the
// caller returns, so the board always holds exactly the moves of the frames
// still on the stack.
type Board interface {
	// Legal moves for the side to move, in a stable order.
	GenerateLegalMoves() []dragon.Move
	// Make the move and return the function that takes it back.
	Apply(move dragon.Move) (unapply func())

	WhiteToMove() bool
	// Piece on the square (0 = a1, 63 = h8); dragon.Nothing for empty squares.
	PieceAt(square uint8) (dragon.Piece, Color)
	// Is the side to move in check?
	InCheck() bool
	// Does the move take something (including en passant)?
	IsCapture(move dragon.Move) bool

	IsCheckmate() bool
	IsStalemate() bool
	IsInsufficientMaterial() bool
	IsSeventyFiveMoves() bool
	IsFivefoldRepetition() bool
	// Has the current position occurred at least count times?
	IsRepetition(count int) bool
}

// isDraw covers every draw the engine scores as 0, claimable or not.
func isDraw(board Board) bool {
	return board.IsStalemate() ||
		board.IsInsufficientMaterial() ||
		board.IsSeventyFiveMoves() ||
		board.IsFivefoldRepetition() ||
		board.IsRepetition(3)
}

// isGameOver leaves out threefold repetition: that draw has to be claimed, so
// a position seen three times is still played from.
func isGameOver(board Board) bool {
	return board.IsCheckmate() ||
		board.IsStalemate() ||
		board.IsInsufficientMaterial() ||
		board.IsSeventyFiveMoves() ||
		board.IsFivefoldRepetition()
}
