package engine

import dragon "github.com/dylhunn/dragontoothmg"

// OrderMoves returns the moves as captures, then checking moves, then the rest.
// Each group keeps the enumeration order. Checks are found by playing the move,
// so the board is used as scratch and restored before return.
func OrderMoves(board Board, moves []dragon.Move) []dragon.Move {
	ordered := make([]dragon.Move, 0, len(moves))
	var checks, quiets []dragon.Move

	for _, move := range moves {
		if board.IsCapture(move) {
			ordered = append(ordered, move)
		} else if givesCheck(board, move) {
			checks = append(checks, move)
		} else {
			quiets = append(quiets, move)
		}
	}

	ordered = append(ordered, checks...)
	return append(ordered, quiets...)
}

func givesCheck(board Board, move dragon.Move) bool {
	unapply := board.Apply(move)
	defer unapply()
	return board.InCheck()
}
