// Package lanefilter implements predicate-driven lane compaction over
// fixed-width blocks.
//
// The package operates on blocks of up to 16 lanes (8-, 16- or 32-bit
// elements). Each transform step loads a block, computes a per-lane drop
// mask, gathers the kept lanes contiguously through a precomputed shuffle
// table keyed by the mask, and advances the input and output cursors by the
// consumed and produced lane counts. Callers provide the destination slices
// so higher-level code can reuse buffers without repeated heap allocations.
// The shuffle tables are built once and never mutated; the package maintains
// no other global state.
package lanefilter

import (
	"encoding/binary"
	"errors"
)

// MaxWidth is the maximum number of lanes per block, and the widest drop mask
// a single shuffle-table lookup can resolve. Wider masks (e.g. 64-bit bitset
// words) are processed in MaxWidth-bit groups.
const MaxWidth = 16

// Lane is the set of element types a block can hold. Lane widths mirror a
// 128-bit vector register split: 16 byte lanes, 16 half-word lanes, or 8 word
// lanes per compaction group.
type Lane interface {
	~uint8 | ~uint16 | ~uint32
}

// ErrOutOfBounds is returned when a load offset or lane index lies beyond the
// backing buffer.
var ErrOutOfBounds = errors.New("lanefilter: offset out of bounds")

// ErrInvalidWidth is returned when constructing a shuffle table for an
// unsupported lane width.
var ErrInvalidWidth = errors.New("lanefilter: unsupported lane width")

// ErrOutputBufferTooSmall is returned when a store would write past the end
// of the caller-provided output buffer. The input consumed up to that point
// is reported alongside the error; no bytes beyond the buffer are written.
var ErrOutputBufferTooSmall = errors.New("lanefilter: output buffer too small")

// ErrInvalidBuffer is returned when a serialized index list is truncated or
// malformed.
var ErrInvalidBuffer = errors.New("lanefilter: invalid buffer")

var bo = binary.LittleEndian
