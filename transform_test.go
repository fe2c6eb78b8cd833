package lanefilter

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// removeRef is the scalar reference for membership removal.
func removeRef(src []byte, set *ByteSet) []byte {
	out := make([]byte, 0, len(src))
	for _, c := range src {
		if !set.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

func assertRemove(t *testing.T, src []byte, set *ByteSet) []byte {
	t.Helper()
	assert := assert.New(t)

	dst := make([]byte, len(src))
	n, err := Remove(dst, src, set)
	assert.NoError(err)
	assert.LessOrEqual(n, len(src), "compaction must never grow output")
	assert.Equal(removeRef(src, set), dst[:n])
	return dst[:n]
}

func TestRemoveSpacesBasic(t *testing.T) {
	assert := assert.New(t)
	src := []byte("a b\tc\nd  e\r\nf")
	dst := make([]byte, len(src))
	n, err := RemoveSpaces(dst, src)
	assert.NoError(err)
	assert.Equal([]byte("abcdef"), dst[:n])
}

func TestRemoveEmptyInput(t *testing.T) {
	assert := assert.New(t)
	n, err := RemoveSpaces(nil, nil)
	assert.NoError(err)
	assert.Equal(0, n)
}

func TestRemoveNothingDropped(t *testing.T) {
	src := []byte("the-quick-brown-fox-jumps-over-the-lazy-dog")
	out := assertRemove(t, src, &Whitespace)
	assert.Equal(t, src, out)
}

func TestRemoveEverythingDropped(t *testing.T) {
	src := []byte("            ")
	out := assertRemove(t, src, &Whitespace)
	assert.Empty(t, out)
}

func TestRemoveTailShorterThanBlock(t *testing.T) {
	// 37 bytes: two full blocks plus a 5-lane tail. The tail padding is
	// zero-filled and zero is a member of the drop set here, so this also
	// guards against padding lanes leaking into the output.
	set := NewByteSet(0, 'x')
	src := make([]byte, 37)
	for i := range src {
		src[i] = byte('a' + i%4)
	}
	src[3] = 'x'
	src[16] = 'x'
	src[36] = 'x'
	assertRemove(t, src, &set)
}

func TestRemoveIdempotent(t *testing.T) {
	assert := assert.New(t)
	rng := rand.New(rand.NewSource(314))
	src := make([]byte, 257)
	for i := range src {
		src[i] = byte(rng.Intn(128))
	}

	once := assertRemove(t, src, &Whitespace)
	twice := assertRemove(t, once, &Whitespace)
	assert.Equal(once, twice, "a compacted buffer must contain no further droppable lanes")
}

func TestRemoveOrderPreserved(t *testing.T) {
	assert := assert.New(t)
	src := make([]byte, 100)
	for i := range src {
		if i%3 == 0 {
			src[i] = ' '
		} else {
			src[i] = byte(i) // distinct and ascending within a byte range
		}
	}
	out := assertRemove(t, src, &Whitespace)
	for i := 1; i < len(out); i++ {
		assert.Less(out[i-1], out[i], "kept lanes must retain input order")
	}
}

func TestRemoveOutputBufferTooSmall(t *testing.T) {
	assert := assert.New(t)
	src := []byte("abcdefghijklmnopqrstuvwxyz")
	dst := make([]byte, 10)
	n, err := Remove(dst, src, &Whitespace)
	assert.ErrorIs(err, ErrOutputBufferTooSmall)
	assert.LessOrEqual(n, len(dst))
}

func TestRemoveRandomAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	set := NewByteSet(' ', ',', ';')
	for _, size := range []int{1, 15, 16, 17, 31, 64, 100, 1000} {
		size := size
		t.Run(fmt.Sprintf("size_%04d", size), func(t *testing.T) {
			src := make([]byte, size)
			for i := range src {
				src[i] = byte(rng.Intn(64) + 16)
			}
			assertRemove(t, src, &set)
		})
	}
}

func TestRemoveRangeUint16(t *testing.T) {
	assert := assert.New(t)
	src := []uint16{5, 100, 200, 300, 150, 90, 65535, 0, 128}
	dst := make([]uint16, len(src))
	n, err := RemoveRange(dst, src, 100, 200)
	assert.NoError(err)
	assert.Equal([]uint16{5, 300, 90, 65535, 0}, dst[:n])
}

func TestRemoveRangeUint32(t *testing.T) {
	// 32-bit lanes run through the 8-lane table; 19 elements exercise two
	// full blocks plus a tail.
	assert := assert.New(t)
	src := make([]uint32, 19)
	for i := range src {
		src[i] = uint32(i * 10)
	}
	dst := make([]uint32, len(src))
	n, err := RemoveRange(dst, src, 50, 120)
	assert.NoError(err)
	assert.Equal([]uint32{0, 10, 20, 30, 40, 130, 140, 150, 160, 170, 180}, dst[:n])
}

func TestRemoveRangeDigits(t *testing.T) {
	assert := assert.New(t)
	src := []byte("a1b22c333d")
	dst := make([]byte, len(src))
	n, err := RemoveRange(dst, src, '0', '9')
	assert.NoError(err)
	assert.Equal([]byte("abcd"), dst[:n])
}

func TestFilterFuncCustomPredicate(t *testing.T) {
	// Swapping the predicate changes which lanes survive but never their
	// relative order: drop the even-indexed lane of every block.
	assert := assert.New(t)
	src := make([]byte, 32)
	for i := range src {
		src[i] = byte(i)
	}
	dst := make([]byte, len(src))
	n, err := FilterFunc(dst, src, func(Block[byte]) uint16 {
		return 0x5555
	})
	assert.NoError(err)
	assert.Equal(16, n)
	for i := 0; i < n; i++ {
		assert.Equal(byte(2*i+1), dst[i])
	}
}

func BenchmarkRemoveSpaces(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	src := make([]byte, 4096)
	for i := range src {
		if rng.Intn(8) == 0 {
			src[i] = ' '
		} else {
			src[i] = byte('a' + rng.Intn(26))
		}
	}
	dst := make([]byte, len(src))
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := RemoveSpaces(dst, src); err != nil {
			b.Fatal(err)
		}
	}
}
