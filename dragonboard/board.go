// Package dragonboard adapts dragontoothmg to the engine's Board. dragontoothmg
// generates and applies moves; this adds what a game needs on top: position
// history for repetitions, the halfmove clock and the draw rules.
package dragonboard

import (
	"strconv"
	"strings"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/pkg/errors"

	"github.com/SerhiiStets/AVA-chess-engine/engine"
)

// Halfmoves without a capture or pawn move after which the game is drawn.
const SeventyFiveMoveHalfmoves = 150

type Board struct {
	board     dragon.Board
	seen      seen
	halfmoves []int // halfmove clock per ply, current position last
}

var _ engine.Board = (*Board)(nil)

// New returns a board in the standard starting position.
func New() *Board {
	b, err := FromFen(dragon.Startpos)
	if err != nil {
		panic(err)
	}
	return b
}

// FromFen sets up a position. The halfmove and fullmove fields are optional.
func FromFen(fen string) (b *Board, err error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, errors.Errorf("dragonboard: malformed FEN %q", fen)
	}
	if len(fields) == 4 {
		fields = append(fields, "0")
	}
	if len(fields) == 5 {
		fields = append(fields, "1")
	}

	halfmoves, err := strconv.Atoi(fields[4])
	if err != nil || halfmoves < 0 {
		return nil, errors.Errorf("dragonboard: bad halfmove clock in FEN %q", fen)
	}

	defer func() {
		if r := recover(); r != nil {
			b, err = nil, errors.Errorf("dragonboard: malformed FEN %q: %v", fen, r)
		}
	}()

	b = &Board{
		board:     dragon.ParseFen(strings.Join(fields, " ")),
		seen:      seen{},
		halfmoves: []int{halfmoves},
	}
	b.seen.enter(b.board.Hash())
	return b, nil
}

func (b *Board) GenerateLegalMoves() []dragon.Move {
	return b.board.GenerateLegalMoves()
}

// Apply makes the move and returns the function that takes it back. Calls must
// be unwound in reverse order.
func (b *Board) Apply(move dragon.Move) func() {
	clock := b.Halfmoves() + 1
	if b.IsCapture(move) || b.isPawnMove(move) {
		clock = 0
	}

	unapply := b.board.Apply(move)
	hash := b.board.Hash()
	b.seen.enter(hash)
	b.halfmoves = append(b.halfmoves, clock)

	return func() {
		b.halfmoves = b.halfmoves[:len(b.halfmoves)-1]
		b.seen.leave(hash)
		unapply()
	}
}

// Push plays a game move for good.
func (b *Board) Push(move dragon.Move) {
	b.Apply(move)
}

// ParseMove finds the legal move with the given UCI name, e.g. e2e4 or a7a8q.
func (b *Board) ParseMove(uci string) (dragon.Move, error) {
	for _, move := range b.board.GenerateLegalMoves() {
		if strings.EqualFold(move.String(), uci) {
			return move, nil
		}
	}
	return engine.NoMove, errors.Errorf("dragonboard: %q is not a legal move in %s", uci, b.FEN())
}

// PushUCI plays a game move given in UCI notation.
func (b *Board) PushUCI(uci string) error {
	move, err := b.ParseMove(uci)
	if err != nil {
		return err
	}
	b.Push(move)
	return nil
}

func (b *Board) WhiteToMove() bool {
	return b.board.Wtomove
}

func (b *Board) PieceAt(square uint8) (dragon.Piece, engine.Color) {
	bb := SquareBB(square)
	if b.board.White.All&bb != 0 {
		return pieceOn(&b.board.White, bb), engine.White
	}
	if b.board.Black.All&bb != 0 {
		return pieceOn(&b.board.Black, bb), engine.Black
	}
	return dragon.Nothing, engine.White
}

func pieceOn(bbs *dragon.Bitboards, bb uint64) dragon.Piece {
	switch {
	case bbs.Pawns&bb != 0:
		return dragon.Pawn
	case bbs.Knights&bb != 0:
		return dragon.Knight
	case bbs.Bishops&bb != 0:
		return dragon.Bishop
	case bbs.Rooks&bb != 0:
		return dragon.Rook
	case bbs.Queens&bb != 0:
		return dragon.Queen
	case bbs.Kings&bb != 0:
		return dragon.King
	}
	return dragon.Nothing
}

func (b *Board) InCheck() bool {
	return b.board.OurKingInCheck()
}

// IsCapture is true for moves onto an enemy piece and for en passant, i.e. a
// pawn changing file onto an empty square.
func (b *Board) IsCapture(move dragon.Move) bool {
	us, them := b.sides()
	to := move.To()
	if them.All&SquareBB(to) != 0 {
		return true
	}
	from := move.From()
	return us.Pawns&SquareBB(from) != 0 && File(from) != File(to)
}

func (b *Board) isPawnMove(move dragon.Move) bool {
	us, _ := b.sides()
	return us.Pawns&SquareBB(move.From()) != 0
}

func (b *Board) sides() (us, them *dragon.Bitboards) {
	if b.board.Wtomove {
		return &b.board.White, &b.board.Black
	}
	return &b.board.Black, &b.board.White
}

func (b *Board) IsCheckmate() bool {
	return b.InCheck() && len(b.board.GenerateLegalMoves()) == 0
}

func (b *Board) IsStalemate() bool {
	return !b.InCheck() && len(b.board.GenerateLegalMoves()) == 0
}

// IsInsufficientMaterial is true when neither side can possibly mate.
func (b *Board) IsInsufficientMaterial() bool {
	return cannotMate(&b.board.White, &b.board.Black) && cannotMate(&b.board.Black, &b.board.White)
}

// Lone king; king and a knight against at most king and queens; or bishops that
// all stand on one square colour with no pawns or knights anywhere.
func cannotMate(us, them *dragon.Bitboards) bool {
	if us.Pawns|us.Rooks|us.Queens != 0 {
		return false
	}
	if us.Knights != 0 {
		return PopCount(us.All) <= 2 && them.All&^them.Kings&^them.Queens == 0
	}
	if us.Bishops != 0 {
		return SameSquareColour(us.Bishops|them.Bishops) &&
			us.Pawns|them.Pawns == 0 &&
			us.Knights|them.Knights == 0
	}
	return true
}

// IsSeventyFiveMoves is true after 75 moves each without a capture or pawn move,
// unless the position is mate or stalemate.
func (b *Board) IsSeventyFiveMoves() bool {
	return b.Halfmoves() >= SeventyFiveMoveHalfmoves && len(b.board.GenerateLegalMoves()) > 0
}

func (b *Board) IsFivefoldRepetition() bool {
	return b.IsRepetition(5)
}

// IsRepetition is true if the current position has occurred count times in the game.
func (b *Board) IsRepetition(count int) bool {
	return b.seen[b.board.Hash()] >= count
}

func (b *Board) Halfmoves() int {
	return b.halfmoves[len(b.halfmoves)-1]
}

func (b *Board) Hash() uint64 {
	return b.board.Hash()
}

// FEN of the current position, with the halfmove clock this board tracks.
func (b *Board) FEN() string {
	fields := strings.Fields(b.board.ToFen())
	if len(fields) >= 5 {
		fields[4] = strconv.Itoa(b.Halfmoves())
	}
	return strings.Join(fields, " ")
}

func (b *Board) String() string {
	return b.FEN()
}
