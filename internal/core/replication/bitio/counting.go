package bitio

// CountingWriter discards written bits and only tracks how many were
// written. Used by the width-bound property test (spec.md §8 invariant 5)
// so the wire length of serialize_full can be checked without allocating a
// real buffer.
type CountingWriter struct {
	bits int
}

// NewCountingWriter returns a zeroed CountingWriter.
func NewCountingWriter() *CountingWriter {
	return &CountingWriter{}
}

// WriteBits records n more bits without storing value.
func (w *CountingWriter) WriteBits(_ uint32, n uint32) {
	w.bits += int(n)
}

// Len returns the total number of bits written.
func (w *CountingWriter) Len() int {
	return w.bits
}
