package ecs

import (
	"math/bits"

	"github.com/bits-and-blooms/bitset"
)

// Presence is anything exposing an ownership set: stores and columns.
type Presence interface {
	Owners() *bitset.BitSet
}

// onesBetween counts the set bits of b in [lo, hi).
func onesBetween(b *bitset.BitSet, lo, hi uint) int {
	words := b.Bytes()
	if limit := uint(len(words)) << 6; hi > limit {
		hi = limit
	}
	if lo >= hi {
		return 0
	}
	lw, hw := lo>>6, (hi-1)>>6
	loMask := ^uint64(0) << (lo & 63)
	hiMask := ^uint64(0) >> (63 - (hi-1)&63)
	if lw == hw {
		return bits.OnesCount64(words[lw] & loMask & hiMask)
	}
	n := bits.OnesCount64(words[lw] & loMask)
	for w := lw + 1; w < hw; w++ {
		n += bits.OnesCount64(words[w])
	}
	return n + bits.OnesCount64(words[hw]&hiMask)
}
