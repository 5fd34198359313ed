// Bitboard utilities
// Note bit 0 (low bit) is square A1, bit 63 (hi bit) is square H8

package dragonboard

import "math/bits"

// A1 is dark, so the dark squares are those where file+rank is even.
const DarkSquares uint64 = 0xaa55aa55aa55aa55
const LightSquares uint64 = ^DarkSquares

func SquareBB(square uint8) uint64 { return uint64(1) << square }

func File(square uint8) uint8 { return square % 8 }

func PopCount(bb uint64) int { return bits.OnesCount64(bb) }

// True iff all the set squares are the same colour (vacuously for empty).
func SameSquareColour(bb uint64) bool {
	return bb&DarkSquares == 0 || bb&LightSquares == 0
}
