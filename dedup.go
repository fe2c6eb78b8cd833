package lanefilter

// DedupState carries the block-boundary lane between successive DedupChunk
// calls. The zero value starts a fresh run: the first lane of the first
// chunk is always kept.
type DedupState[T Lane] struct {
	prev T
	seen bool
}

// Dedup copies src to dst dropping every lane equal to its immediate
// predecessor, collapsing runs of repeated values to a single element.
// It returns the number of lanes written.
func Dedup[T Lane](dst, src []T) (int, error) {
	var st DedupState[T]
	return DedupChunk(dst, src, &st)
}

// DedupChunk behaves like Dedup but threads the boundary state explicitly,
// so a long input can be processed in consecutive chunks: feeding the
// chunks of a split input through one state produces exactly the output of
// a single Dedup over the whole input. Chunks must be presented in order.
//
// Callers partitioning work across goroutines can instead compare each
// chunk's first lane against its predecessor chunk's last lane up front,
// then run every chunk through a fresh state with the first lane dropped
// when they matched.
func DedupChunk[T Lane](dst, src []T, st *DedupState[T]) (int, error) {
	width := blockWidth[T]()
	table := tableFor(width)

	var cur cursors
	for cur.in < len(src) {
		blk, err := Load(src, cur.in, width)
		if err != nil {
			return cur.out, err
		}
		drop := matchRun(blk, st.prev)
		if !st.seen {
			// No predecessor yet: the very first lane can never be a duplicate.
			drop &^= 1
			st.seen = true
		}
		drop |= tailDropMask(blk.n)
		out, k := Compact(blk, drop, table)
		if err := Store(out, dst, cur.out, k); err != nil {
			return cur.out, err
		}
		st.prev = blk.lanes[blk.n-1]
		cur.advance(blk.n, k)
	}
	return cur.out, nil
}
