package lanefilter

import "golang.org/x/sys/cpu"

// gatherBytes permutes a full 16-byte block through a gather order. Both
// kernels write all 16 output lanes unconditionally, the way a vector
// shuffle would; callers store only the kept prefix.
var gatherBytes func(dst, src *[MaxWidth]byte, ord *[MaxWidth]uint8) = gatherBytesScalar

var vectorCapable bool

func init() {
	initKernelSelection()
}

func initKernelSelection() {
	if cpu.X86.HasSSE2 || cpu.ARM64.HasASIMD {
		gatherBytes = gatherBytesUnrolled
		vectorCapable = true
	}
}

// VectorCapable reports whether the host CPU carries the 128-bit shuffle
// support the unrolled byte kernel is shaped for.
func VectorCapable() bool {
	return vectorCapable
}

func gatherBytesScalar(dst, src *[MaxWidth]byte, ord *[MaxWidth]uint8) {
	for i := range dst {
		dst[i] = src[ord[i]]
	}
}

// gatherBytesUnrolled is the branch-free variant: sixteen independent loads
// with no loop-carried dependency, matching a single-register table lookup.
func gatherBytesUnrolled(dst, src *[MaxWidth]byte, ord *[MaxWidth]uint8) {
	dst[0] = src[ord[0]]
	dst[1] = src[ord[1]]
	dst[2] = src[ord[2]]
	dst[3] = src[ord[3]]
	dst[4] = src[ord[4]]
	dst[5] = src[ord[5]]
	dst[6] = src[ord[6]]
	dst[7] = src[ord[7]]
	dst[8] = src[ord[8]]
	dst[9] = src[ord[9]]
	dst[10] = src[ord[10]]
	dst[11] = src[ord[11]]
	dst[12] = src[ord[12]]
	dst[13] = src[ord[13]]
	dst[14] = src[ord[14]]
	dst[15] = src[ord[15]]
}
