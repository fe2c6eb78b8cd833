package lanefilter

// FilterFunc compacts src into dst, dropping every lane flagged by pred,
// and returns the number of lanes written. Relative order of kept lanes is
// preserved for any predicate. pred receives each loaded block (including
// the final partial one) and returns a drop mask; bits for padding lanes
// are forced on by the driver, so pred never has to special-case tails.
//
// dst must hold at least as many lanes as the predicate keeps; a shorter
// dst fails with ErrOutputBufferTooSmall after writing the blocks that fit.
// dst and src must not overlap.
func FilterFunc[T Lane](dst, src []T, pred func(Block[T]) uint16) (int, error) {
	width := blockWidth[T]()
	table := tableFor(width)

	var cur cursors
	for cur.in < len(src) {
		blk, err := Load(src, cur.in, width)
		if err != nil {
			return cur.out, err
		}
		drop := pred(blk) | tailDropMask(blk.n)
		out, k := Compact(blk, drop, table)
		if err := Store(out, dst, cur.out, k); err != nil {
			return cur.out, err
		}
		cur.advance(blk.n, k)
	}
	return cur.out, nil
}

// Remove copies src to dst dropping every byte that is a member of set.
// It returns the number of bytes written. A dst as long as src is always
// sufficient.
func Remove(dst, src []byte, set *ByteSet) (int, error) {
	return FilterFunc(dst, src, func(b Block[byte]) uint16 {
		return matchSet(b, set)
	})
}

// RemoveSpaces copies src to dst dropping all ASCII whitespace.
func RemoveSpaces(dst, src []byte) (int, error) {
	return Remove(dst, src, &Whitespace)
}

// RemoveRange copies src to dst dropping every lane v with lo <= v <= hi.
func RemoveRange[T Lane](dst, src []T, lo, hi T) (int, error) {
	return FilterFunc(dst, src, func(b Block[T]) uint16 {
		return matchRange(b, lo, hi)
	})
}
