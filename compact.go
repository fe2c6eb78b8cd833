package lanefilter

// Compact gathers the lanes of b that are not flagged in drop to the front
// of a new block and reports how many survived. Identical (block, drop)
// inputs always produce identical output; the table is the only shared
// state and is immutable after construction. Every recipe in the package
// funnels through this one operation, differing only in how the drop mask
// is built.
func Compact[T Lane](b Block[T], drop uint16, t *ShuffleTable) (Block[T], int) {
	w := t.width
	drop &= uint16((1 << w) - 1)
	k := keepCount(drop, w)
	ord := t.Order(drop)

	var out Block[T]
	if src, ok := any(&b.lanes).(*[MaxWidth]byte); ok {
		gatherBytes(any(&out.lanes).(*[MaxWidth]byte), src, ord)
	} else {
		for i := 0; i < k; i++ {
			out.lanes[i] = b.lanes[ord[i]]
		}
	}
	out.n = k
	return out, k
}

// cursors tracks the input and output positions of a transform loop. Both
// positions start at zero and only move forward.
type cursors struct {
	in  int
	out int
}

func (c *cursors) advance(consumed, produced int) {
	c.in += consumed
	c.out += produced
}

// tailDropMask returns a mask with the drop bits set for every padding lane
// at or beyond n. ORing it into a recipe's drop mask guarantees zero-filled
// tail lanes never reach the output, whatever the predicate matches.
func tailDropMask(n int) uint16 {
	if n >= MaxWidth {
		return 0
	}
	return ^uint16(0) << n
}
