package lanefilter

import (
	"math/bits"
	"slices"
)

// DecodeBitset appends the positions of the set bits of words to dst and
// returns the extended slice. Bit b of words[w] contributes position
// w*64 + b; positions are emitted in ascending order.
//
// Each 64-bit word is consumed as four 16-bit groups: the group mask is the
// keep mask over an index block [base .. base+15], so the shared shuffle
// table compacts the set positions directly. The final group of a word
// naturally carries zero bits beyond the true range, so there is no
// separate tail path.
func DecodeBitset(dst []uint32, words []uint64) []uint32 {
	var total int
	for _, w := range words {
		total += bits.OnesCount64(w)
	}
	if total == 0 {
		return dst
	}
	dst = slices.Grow(dst, total)

	t := table16()
	for w, word := range words {
		base := uint32(w) * 64
		for word != 0 {
			keep := uint16(word)
			word >>= MaxWidth
			if keep != 0 {
				var blk Block[uint32]
				for i := range blk.lanes {
					blk.lanes[i] = base + uint32(i)
				}
				blk.n = MaxWidth
				out, k := Compact(blk, ^keep, t)
				dst = append(dst, out.lanes[:k]...)
			}
			base += MaxWidth
		}
	}
	return dst
}

// PopCount returns the total number of set bits in words, i.e. the length
// DecodeBitset would append.
func PopCount(words []uint64) int {
	var total int
	for _, w := range words {
		total += bits.OnesCount64(w)
	}
	return total
}
