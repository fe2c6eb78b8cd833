package lanefilter

import (
	"fmt"
	"math/bits"
)

// MaxEscapedLen returns the worst-case output size of Escape for n input
// bytes: every byte flagged, every byte prefixed.
func MaxEscapedLen(n int) int {
	return 2 * n
}

// Escape copies src to dst inserting esc before every byte that is a member
// of set, and returns the number of bytes written. This is the expanding
// counterpart of Remove: output length is always >= input length, so dst
// should be sized with MaxEscapedLen before calling. A dst too small for a
// block's expansion fails with ErrOutputBufferTooSmall after writing the
// blocks that fit.
//
// Blocks with an empty match mask are copied whole; flagged blocks emit the
// unflagged runs between mask bits with the escape byte spliced in front of
// each member.
func Escape(dst, src []byte, set *ByteSet, esc byte) (int, error) {
	var cur cursors
	for cur.in < len(src) {
		blk, err := Load(src, cur.in, MaxWidth)
		if err != nil {
			return cur.out, err
		}
		m := matchSet(blk, set)
		need := blk.n + bits.OnesCount16(m)
		if cur.out+need > len(dst) {
			return cur.out, fmt.Errorf("%w: need %d bytes at offset %d, buffer length %d",
				ErrOutputBufferTooSmall, need, cur.out, len(dst))
		}
		if m == 0 {
			copy(dst[cur.out:], blk.lanes[:blk.n])
			cur.advance(blk.n, blk.n)
			continue
		}
		o := cur.out
		start := 0
		for rem := m; rem != 0; rem &= rem - 1 {
			i := bits.TrailingZeros16(rem)
			o += copy(dst[o:], blk.lanes[start:i])
			dst[o] = esc
			dst[o+1] = blk.lanes[i]
			o += 2
			start = i + 1
		}
		o += copy(dst[o:], blk.lanes[start:blk.n])
		cur.advance(blk.n, o-cur.out)
	}
	return cur.out, nil
}

// IndexEscapable returns the index of the first byte of src that is a
// member of set, or -1 if none is. It scans a block at a time, so clean
// buffers cost one mask per 16 bytes.
func IndexEscapable(src []byte, set *ByteSet) int {
	for off := 0; off < len(src); off += MaxWidth {
		blk, _ := Load(src, off, MaxWidth)
		if m := matchSet(blk, set); m != 0 {
			return off + bits.TrailingZeros16(m)
		}
	}
	return -1
}
