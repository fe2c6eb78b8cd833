package lanefilter

import (
	"fmt"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShuffleTableInvalidWidth(t *testing.T) {
	for _, width := range []int{-1, 0, 3, 5, 12, 17, 32} {
		t.Run(fmt.Sprintf("width_%d", width), func(t *testing.T) {
			tbl, err := NewShuffleTable(width)
			assert.ErrorIs(t, err, ErrInvalidWidth)
			assert.Nil(t, tbl)
		})
	}
}

func TestShuffleTableOrderDedupLiteral(t *testing.T) {
	assert := assert.New(t)
	tbl, err := NewShuffleTable(8)
	assert.NoError(err)

	// Drop mask 0b00010100: lanes 2 and 4 are duplicates, the gather order
	// skips them and the three filler slots repeat the last kept index.
	ord := tbl.Order(0b00010100)
	assert.Equal([]uint8{0, 1, 3, 5, 6, 7, 7, 7}, ord[:8])
	assert.Equal(6, keepCount(0b00010100, 8))
}

func TestShuffleTableOrderAllDropped(t *testing.T) {
	assert := assert.New(t)
	tbl, err := NewShuffleTable(8)
	assert.NoError(err)

	ord := tbl.Order(0xFF)
	assert.Equal(0, keepCount(0xFF, 8))
	for i := 0; i < 8; i++ {
		assert.Equal(uint8(0), ord[i])
	}
}

func TestShuffleTableSelfConsistency(t *testing.T) {
	for _, width := range []int{1, 2, 4, 8, 16} {
		width := width
		t.Run(fmt.Sprintf("width_%02d", width), func(t *testing.T) {
			assert := assert.New(t)
			tbl, err := NewShuffleTable(width)
			assert.NoError(err)

			for mask := 0; mask < 1<<width; mask++ {
				drop := uint16(mask)
				ord := tbl.Order(drop)
				k := keepCount(drop, width)
				assert.Equal(width-bits.OnesCount16(drop), k)

				prev := -1
				for i := 0; i < k; i++ {
					idx := int(ord[i])
					assert.Greater(idx, prev, "mask %#x: kept entries must ascend", mask)
					assert.Zero(drop&(1<<idx), "mask %#x: entry %d gathers a dropped lane", mask, i)
					prev = idx
				}
				if k < width {
					if k == 0 {
						assert.Equal(uint8(0), ord[0], "mask %#x: empty keep must fill with 0", mask)
					} else {
						assert.Equal(ord[k-1], ord[k], "mask %#x: filler must repeat last kept index", mask)
					}
				}
			}
		})
	}
}

func TestTableForSharedReadOnly(t *testing.T) {
	assert := assert.New(t)
	assert.Same(tableFor(8), tableFor(8))
	assert.Same(tableFor(MaxWidth), tableFor(MaxWidth))
	assert.Equal(8, tableFor(8).Width())
	assert.Equal(MaxWidth, tableFor(MaxWidth).Width())
}
