package dragonboard

// seen counts how often each zobrist hash has come up on the path from the
// starting FEN to the current position. Hashes whose count drops to zero are
// deleted, so len is the number of distinct positions on the path.
type seen map[uint64]int

func (s seen) enter(hash uint64) int {
	s[hash]++
	return s[hash]
}

func (s seen) leave(hash uint64) int {
	n := s[hash] - 1
	if n <= 0 {
		delete(s, hash)
		return 0
	}
	s[hash] = n
	return n
}
