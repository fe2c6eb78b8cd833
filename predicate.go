package lanefilter

// ByteSet is a 256-bit membership bitmap over byte values. The 32-byte
// layout fits half a cache line and keeps the per-lane test to one shift
// and one AND.
type ByteSet [4]uint64

// NewByteSet returns a set containing the given bytes.
func NewByteSet(chars ...byte) ByteSet {
	var s ByteSet
	for _, c := range chars {
		s.Add(c)
	}
	return s
}

// Add inserts byte c into the set.
func (s *ByteSet) Add(c byte) {
	s[c>>6] |= 1 << (c & 63)
}

// AddRange inserts all bytes from lo to hi inclusive.
func (s *ByteSet) AddRange(lo, hi byte) {
	for c := lo; ; c++ {
		s.Add(c)
		if c == hi {
			return
		}
	}
}

// Contains reports whether byte c is in the set.
func (s *ByteSet) Contains(c byte) bool {
	return s[c>>6]&(1<<(c&63)) != 0
}

// Whitespace holds the ASCII whitespace bytes.
var Whitespace = NewByteSet(' ', '\t', '\n', '\v', '\f', '\r')

// JSONEscapable holds the bytes a JSON string encoder must escape: control
// characters, the quote, and the backslash.
var JSONEscapable = func() ByteSet {
	s := NewByteSet('"', '\\')
	s.AddRange(0x00, 0x1f)
	return s
}()

// matchSet returns the drop mask flagging every lane of b that is a member
// of set. Padding lanes beyond b.Len are left unflagged; drivers OR in
// tailDropMask separately.
func matchSet(b Block[byte], set *ByteSet) uint16 {
	var m uint16
	for i := 0; i < b.n; i++ {
		if set.Contains(b.lanes[i]) {
			m |= 1 << i
		}
	}
	return m
}

// matchRange returns the drop mask flagging every lane v with lo <= v <= hi.
func matchRange[T Lane](b Block[T], lo, hi T) uint16 {
	var m uint16
	for i := 0; i < b.n; i++ {
		if v := b.lanes[i]; v >= lo && v <= hi {
			m |= 1 << i
		}
	}
	return m
}

// matchRun returns the drop mask flagging every lane equal to its immediate
// predecessor. The comparison block is the reconstruction vector: prev (the
// last lane of the preceding block) followed by the first Len-1 lanes of b.
// This is the one predicate with cross-block state; prev is threaded
// explicitly between successive calls.
func matchRun[T Lane](b Block[T], prev T) uint16 {
	var m uint16
	if b.n > 0 && b.lanes[0] == prev {
		m = 1
	}
	for i := 1; i < b.n; i++ {
		if b.lanes[i] == b.lanes[i-1] {
			m |= 1 << i
		}
	}
	return m
}
