// Serialized index lists: the set-bit positions of a bitset, stored as a
// count header followed by a StreamVByte payload. The control-byte walk
// below also supports random access to a single position without decoding
// the whole list.

package lanefilter

import (
	"fmt"
	"slices"

	"github.com/mhr3/streamvbyte"
)

// indexListHeaderBytes is the size of the uint32 position-count prefix.
const indexListHeaderBytes = 4

// svbControlBlockSizeLUT maps a StreamVByte control byte to the total data
// bytes of its block. Each control byte encodes lengths for 4 values
// (2 bits each, code+1 = byte length).
var svbControlBlockSizeLUT [256]uint8

func init() {
	for ctrl := 0; ctrl < 256; ctrl++ {
		size := (ctrl & 0x03) + ((ctrl >> 2) & 0x03) + ((ctrl >> 4) & 0x03) + (ctrl >> 6) + 4
		svbControlBlockSizeLUT[ctrl] = uint8(size)
	}
}

// MaxIndexListLen returns the maximum serialized size of an index list over
// words, for sizing dst ahead of AppendIndexList.
func MaxIndexListLen(words []uint64) int {
	return indexListHeaderBytes + streamvbyte.MaxEncodedLen(PopCount(words))
}

// AppendIndexList serializes the set-bit positions of words and appends the
// result to dst, returning the extended slice. Layout:
//
//	dst[0:4] : uint32 position count (little-endian)
//	dst[4:]  : StreamVByte-encoded positions, ascending
func AppendIndexList(dst []byte, words []uint64) []byte {
	total := PopCount(words)

	start := len(dst)
	maxTotal := indexListHeaderBytes + streamvbyte.MaxEncodedLen(total)
	dst = slices.Grow(dst, maxTotal)
	dst = dst[:start+maxTotal]
	bo.PutUint32(dst[start:], uint32(total))
	if total == 0 {
		return dst[:start+indexListHeaderBytes]
	}

	positions := DecodeBitset(make([]uint32, 0, total), words)
	svb := streamvbyte.EncodeUint32(positions, &streamvbyte.EncodeOptions[uint32]{
		Buffer: dst[start+indexListHeaderBytes:],
	})
	return dst[:start+indexListHeaderBytes+len(svb)]
}

// DecodeIndexList decodes an AppendIndexList buffer back into positions,
// writing into the supplied dst slice (resized as needed). Returns an error
// if the buffer is truncated or malformed.
func DecodeIndexList(dst []uint32, buf []byte) ([]uint32, error) {
	count, payload, err := indexListPayload(buf)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if dst == nil {
			return nil, nil
		}
		return dst[:0], nil
	}
	if cap(dst) >= count {
		dst = dst[:count]
	} else {
		dst = make([]uint32, count)
	}
	return streamvbyte.DecodeUint32(payload, count, &streamvbyte.DecodeOptions[uint32]{
		Buffer: dst,
	}), nil
}

// IndexAt returns position i of a serialized index list without decoding
// the whole payload. The control-byte walk is allocation-free, suited to
// point lookups into large lists. Fails with ErrOutOfBounds when i is not
// below the stored count.
func IndexAt(buf []byte, i int) (uint32, error) {
	count, payload, err := indexListPayload(buf)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("%w: index %d, list length %d", ErrOutOfBounds, i, count)
	}

	numControlBytes := (count + 3) >> 2
	controlBytes := payload[:numControlBytes]
	dataBytes := payload[numControlBytes:]

	blockIndex := i >> 2
	posInBlock := i & 0x03

	dataOffset := 0
	for b := 0; b < blockIndex; b++ {
		dataOffset += int(svbControlBlockSizeLUT[controlBytes[b]])
	}

	ctrl := controlBytes[blockIndex]
	var value uint32
	for p := 0; p <= posInBlock; p++ {
		code := (ctrl >> (p * 2)) & 0x03
		byteLen := int(code) + 1
		if p == posInBlock {
			value = svbReadValue(dataBytes[dataOffset:], byteLen)
		}
		dataOffset += byteLen
	}
	return value, nil
}

// indexListPayload validates the header and control/data byte counts of a
// serialized index list and returns the stored count and the StreamVByte
// payload.
func indexListPayload(buf []byte) (int, []byte, error) {
	if len(buf) < indexListHeaderBytes {
		return 0, nil, fmt.Errorf("%w: buffer too small for header (need %d bytes, got %d)",
			ErrInvalidBuffer, indexListHeaderBytes, len(buf))
	}
	count := int(bo.Uint32(buf))
	payload := buf[indexListHeaderBytes:]
	if count == 0 {
		return 0, payload, nil
	}

	numControlBytes := (count + 3) >> 2
	if len(payload) < numControlBytes {
		return 0, nil, fmt.Errorf("%w: truncated control bytes (need %d, got %d)",
			ErrInvalidBuffer, numControlBytes, len(payload))
	}
	dataLen := svbDataLen(payload[:numControlBytes], count)
	if len(payload) < numControlBytes+dataLen {
		return 0, nil, fmt.Errorf("%w: truncated StreamVByte data (need %d bytes, got %d)",
			ErrInvalidBuffer, numControlBytes+dataLen, len(payload))
	}
	return count, payload, nil
}

// svbDataLen sums the data bytes described by the control bytes for count
// values, honoring a partial final block.
func svbDataLen(controlBytes []byte, count int) int {
	full := count >> 2
	size := 0
	for b := 0; b < full; b++ {
		size += int(svbControlBlockSizeLUT[controlBytes[b]])
	}
	if rem := count & 0x03; rem != 0 {
		ctrl := controlBytes[full]
		for p := 0; p < rem; p++ {
			size += int((ctrl>>(p*2))&0x03) + 1
		}
	}
	return size
}

// svbReadValue reads a variable-length encoded value (1-4 bytes).
func svbReadValue(data []byte, byteLen int) uint32 {
	switch byteLen {
	case 1:
		return uint32(data[0])
	case 2:
		return uint32(bo.Uint16(data))
	case 3:
		return uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16
	case 4:
		return bo.Uint32(data)
	}
	return 0
}
