package engine

import (
	"fmt"

	"github.com/rs/zerolog"
)

type SearchStatsT struct {
	Nodes           uint64 // #nodes visited
	Leafs           uint64 // #nodes evaluated statically (horizon or game over)
	NonLeafs        uint64 // #nodes whose children were searched
	Mates           uint64 // #children scored as checkmate
	Draws           uint64 // #children scored as a draw
	CutNodes        uint64 // #(alpha/beta-)cut nodes
	FirstChildCuts  uint64 // #non-leaf nodes that cut on the first child searched
	CutNodeChildren uint64 // Total #children of cut nodes (in order to see how effective the move ordering is)
}

func PerC(n uint64, N uint64) string {
	if N == 0 {
		return fmt.Sprintf("%d [-]", n)
	}
	return fmt.Sprintf("%d [%.2f%%]", n, float64(n)/float64(N)*100)
}

// MarshalZerologObject lets the stats ride along on a log event.
func (s *SearchStatsT) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", s.Nodes).
		Uint64("leafs", s.Leafs).
		Uint64("non-leafs", s.NonLeafs).
		Uint64("mates", s.Mates).
		Uint64("draws", s.Draws).
		Str("cuts", PerC(s.CutNodes, s.NonLeafs)).
		Str("first-child-cuts", PerC(s.FirstChildCuts, s.CutNodes)).
		Str("cut-kids", PerC(s.CutNodeChildren, s.CutNodes))
}
