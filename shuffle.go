package lanefilter

import (
	"fmt"
	"math/bits"
	"sync"
)

// ShuffleTable maps a drop mask to the gather order that moves the kept
// lanes contiguously to the front of a block. The table is immutable after
// construction and safe for unsynchronized concurrent reads.
type ShuffleTable struct {
	width int
	order [][MaxWidth]uint8
}

// NewShuffleTable builds the gather-order table for the given lane width.
// Width must be a power of two between 1 and MaxWidth; the table holds
// 2^width entries.
func NewShuffleTable(width int) (*ShuffleTable, error) {
	if width < 1 || width > MaxWidth || width&(width-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	t := &ShuffleTable{
		width: width,
		order: make([][MaxWidth]uint8, 1<<width),
	}
	for mask := range t.order {
		t.order[mask] = gatherOrder(uint16(mask), width)
	}
	return t, nil
}

// Width returns the lane width the table was built for.
func (t *ShuffleTable) Width() int {
	return t.width
}

// Order returns the gather order for a drop mask. Bits of drop beyond the
// table width are ignored. Only the first keep-count entries are meaningful;
// the rest repeat the last kept index (0 when every lane is dropped).
func (t *ShuffleTable) Order(drop uint16) *[MaxWidth]uint8 {
	return &t.order[int(drop)&(len(t.order)-1)]
}

// gatherOrder lists the kept (clear-bit) lane indices of drop in ascending
// order, then fills the remaining slots with the last kept index. For the
// 8-lane drop mask 0b00010100 this yields [0 1 3 5 6 7 7 7]: lanes 2 and 4
// are skipped and the three filler slots repeat index 7.
func gatherOrder(drop uint16, width int) [MaxWidth]uint8 {
	var ord [MaxWidth]uint8
	k := 0
	for i := 0; i < width; i++ {
		if drop&(1<<i) == 0 {
			ord[k] = uint8(i)
			k++
		}
	}
	var fill uint8
	if k > 0 {
		fill = ord[k-1]
	}
	for i := k; i < MaxWidth; i++ {
		ord[i] = fill
	}
	return ord
}

// keepCount returns the number of lanes of a width-lane block that survive
// the drop mask.
func keepCount(drop uint16, width int) int {
	keep := ^drop & uint16((1<<width)-1)
	return bits.OnesCount16(keep)
}

// Process-wide tables for the two transform widths, built on first use. The
// 16-lane table holds 65536 entries (1 MiB), so it is not paid for at
// startup by programs that only touch the 8-lane paths.
var (
	table8  = sync.OnceValue(func() *ShuffleTable { return mustShuffleTable(8) })
	table16 = sync.OnceValue(func() *ShuffleTable { return mustShuffleTable(MaxWidth) })
)

func mustShuffleTable(width int) *ShuffleTable {
	t, err := NewShuffleTable(width)
	if err != nil {
		panic(err)
	}
	return t
}

// tableFor returns the shared table for a transform width.
func tableFor(width int) *ShuffleTable {
	if width == 8 {
		return table8()
	}
	return table16()
}
