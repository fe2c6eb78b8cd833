package lanefilter

import (
	"fmt"
	"unsafe"
)

// Block is a fixed-capacity buffer of lanes copied from a backing slice.
// Blocks are ephemeral values created and discarded within one compaction
// step; they own no external memory.
type Block[T Lane] struct {
	lanes [MaxWidth]T
	n     int
}

// Len returns the number of valid lanes. A full block holds the transform
// width; the final block of a buffer may hold fewer.
func (b *Block[T]) Len() int {
	return b.n
}

// At returns lane i. Lanes at or beyond Len hold zero padding on load and
// unspecified filler after compaction.
func (b *Block[T]) At(i int) T {
	return b.lanes[i]
}

// Load reads up to width lanes from buf starting at offset. Lanes past the
// end of buf are zero-filled and excluded from the block's Len, so tail
// blocks run the same compaction path as full ones. Load fails only when
// offset itself lies outside buf.
func Load[T Lane](buf []T, offset, width int) (Block[T], error) {
	if width < 1 || width > MaxWidth {
		return Block[T]{}, fmt.Errorf("%w: block width %d", ErrInvalidWidth, width)
	}
	if offset < 0 || offset > len(buf) {
		return Block[T]{}, fmt.Errorf("%w: offset %d, buffer length %d", ErrOutOfBounds, offset, len(buf))
	}
	var b Block[T]
	b.n = copy(b.lanes[:width], buf[offset:])
	return b, nil
}

// Store writes the first count lanes of b to buf starting at offset. Only
// count lanes are written; the compacted lane count is frequently below the
// block width and the filler lanes must never reach the output buffer.
func Store[T Lane](b Block[T], buf []T, offset, count int) error {
	if offset < 0 {
		return fmt.Errorf("%w: offset %d", ErrOutOfBounds, offset)
	}
	if count < 0 || count > b.n {
		panic(fmt.Sprintf("lanefilter: store count %d outside block of %d lanes", count, b.n))
	}
	if offset+count > len(buf) {
		return fmt.Errorf("%w: need %d lanes at offset %d, buffer length %d",
			ErrOutputBufferTooSmall, count, offset, len(buf))
	}
	copy(buf[offset:offset+count], b.lanes[:count])
	return nil
}

// blockWidth returns the transform width for a lane type: 16 lanes for 8- and
// 16-bit elements, 8 lanes for 32-bit elements.
func blockWidth[T Lane]() int {
	var z T
	if unsafe.Sizeof(z) == 4 {
		return 8
	}
	return MaxWidth
}
