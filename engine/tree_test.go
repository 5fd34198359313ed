package engine

import (
	"math/rand"

	dragon "github.com/dylhunn/dragontoothmg"
)

// A hand-built game tree standing in for a chess board. Move i (1-based) leads
// to child i-1, and the static eval of a node is its score.
type treeNode struct {
	score    Score
	capture  bool // the move into this node takes something
	check    bool // the side to move here is in check
	mate     bool
	draw     bool
	children []*treeNode
}

func leaf(score Score) *treeNode {
	return &treeNode{score: score}
}

func branch(children ...*treeNode) *treeNode {
	return &treeNode{children: children}
}

func mated() *treeNode {
	return &treeNode{mate: true, check: true}
}

func drawn(score Score) *treeNode {
	return &treeNode{draw: true, score: score}
}

func capturing(n *treeNode) *treeNode {
	n.capture = true
	return n
}

func checking(n *treeNode) *treeNode {
	n.check = true
	return n
}

type treeBoard struct {
	rootWhite bool
	path      []*treeNode

	applies, unapplies int
	panicOnApply       int // panic on this apply (1-based), 0 never
}

var _ Board = (*treeBoard)(nil)

func newTreeBoard(root *treeNode, white bool) *treeBoard {
	return &treeBoard{rootWhite: white, path: []*treeNode{root}}
}

func (b *treeBoard) node() *treeNode {
	return b.path[len(b.path)-1]
}

func (b *treeBoard) GenerateLegalMoves() []dragon.Move {
	moves := make([]dragon.Move, len(b.node().children))
	for i := range moves {
		moves[i] = dragon.Move(i + 1)
	}
	return moves
}

func (b *treeBoard) Apply(move dragon.Move) func() {
	b.applies++
	if b.applies == b.panicOnApply {
		panic("board fault")
	}
	b.path = append(b.path, b.node().children[move-1])
	depth := len(b.path)
	return func() {
		if len(b.path) != depth {
			panic("unapply out of order")
		}
		b.path = b.path[:depth-1]
		b.unapplies++
	}
}

func (b *treeBoard) WhiteToMove() bool {
	return (len(b.path)%2 == 1) == b.rootWhite
}

func (b *treeBoard) PieceAt(square uint8) (dragon.Piece, Color) {
	return dragon.Piece(dragon.Nothing), White
}

func (b *treeBoard) InCheck() bool                   { return b.node().check }
func (b *treeBoard) IsCapture(move dragon.Move) bool { return b.node().children[move-1].capture }
func (b *treeBoard) IsCheckmate() bool               { return b.node().mate }
func (b *treeBoard) IsStalemate() bool               { return b.node().draw }
func (b *treeBoard) IsInsufficientMaterial() bool    { return false }
func (b *treeBoard) IsSeventyFiveMoves() bool        { return false }
func (b *treeBoard) IsFivefoldRepetition() bool      { return false }
func (b *treeBoard) IsRepetition(count int) bool     { return false }

type treeEval struct {
	calls int
}

func (e *treeEval) Evaluate(board Board) Score {
	e.calls++
	return board.(*treeBoard).node().score
}

// randomTree builds a tree that is never terminal at the root, with small
// integer scores so ties are common.
func randomTree(r *rand.Rand, depth int) *treeNode {
	root := &treeNode{score: Score(r.Intn(21) - 10)}
	for i := 0; i < 1+r.Intn(4); i++ {
		root.children = append(root.children, randomSubtree(r, depth-1))
	}
	return root
}

func randomSubtree(r *rand.Rand, depth int) *treeNode {
	n := &treeNode{
		score:   Score(r.Intn(21) - 10),
		capture: r.Intn(3) == 0,
		check:   r.Intn(4) == 0,
	}
	if depth <= 0 {
		return n
	}

	switch r.Intn(12) {
	case 0:
		n.mate, n.check = true, true
		return n
	case 1:
		n.draw, n.check = true, false
		return n
	}

	for i := 0; i < 1+r.Intn(4); i++ {
		n.children = append(n.children, randomSubtree(r, depth-1))
	}
	return n
}
