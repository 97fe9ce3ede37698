package replication

import "reflect"

// Codec is the per-record set of six routines emitted for one record type
// T (C4, spec.md §4.4). The Registry builds one per record on first use
// (Compile, or Init attaching a binder) and caches it; Codec itself holds
// no mutable state after construction.
type Codec[T any] struct {
	desc *RecordDescriptor
}

// buildCodec wraps a classified descriptor in a typed Codec. Called at
// most once per record, from Compile or from BindFor's attach.
func buildCodec[T any](desc *RecordDescriptor) *Codec[T] {
	return &Codec[T]{desc: desc}
}

// N is the record's field count, 0 <= N <= 32.
func (c *Codec[T]) N() int { return len(c.desc.Fields) }

// SerializeFull writes every field of v, in declaration order.
func (c *Codec[T]) SerializeFull(w BitWriter, v T) {
	rv := reflect.ValueOf(&v).Elem()
	for i := range c.desc.Fields {
		writeField(w, rv, &c.desc.Fields[i])
	}
}

// SerializeMask writes the subset of v's fields selected by mask, per
// spec.md §4.4's mask-prefix rules (N>1: prefix written; N==1: field
// always present, no prefix; N==0: nothing written).
func (c *Codec[T]) SerializeMask(w BitWriter, v T, mask uint32) {
	rv := reflect.ValueOf(&v).Elem()
	n := len(c.desc.Fields)
	useMaskPrefix := n > 1
	if useMaskPrefix {
		w.WriteBits(mask, uint32(n))
	}
	for i := range c.desc.Fields {
		if useMaskPrefix && (mask>>uint(i))&1 == 0 {
			continue
		}
		writeField(w, rv, &c.desc.Fields[i])
	}
}

// DeserializeFull allocates a zero value and fills every field from port.
func (c *Codec[T]) DeserializeFull(r BitReader) T {
	var v T
	c.DeserializeFullRef(r, &v)
	return v
}

// DeserializeFullRef fills every field of *v from port, in declaration
// order.
func (c *Codec[T]) DeserializeFullRef(r BitReader, v *T) {
	rv := reflect.ValueOf(v).Elem()
	for i := range c.desc.Fields {
		readField(r, rv, &c.desc.Fields[i])
	}
}

// DeserializeMaskRef reads a mask (or synthesizes one, for N<=1) and fills
// only the selected fields of *v, leaving the rest untouched. It returns
// the mask that was applied.
func (c *Codec[T]) DeserializeMaskRef(r BitReader, v *T) uint32 {
	rv := reflect.ValueOf(v).Elem()
	n := len(c.desc.Fields)

	var mask uint32
	switch {
	case n > 1:
		mask = r.ReadBits(uint32(n))
	case n == 1:
		mask = 1
	default:
		mask = 0
	}

	for i := range c.desc.Fields {
		if (mask>>uint(i))&1 == 1 {
			readField(r, rv, &c.desc.Fields[i])
		}
	}
	return mask
}

// Diff walks a's and b's fields in declaration order and sets bit i of the
// result wherever field i differs (spec.md §4.4).
func (c *Codec[T]) Diff(a, b T) uint32 {
	ra := reflect.ValueOf(&a).Elem()
	rb := reflect.ValueOf(&b).Elem()

	var mask uint32
	for i := range c.desc.Fields {
		if !fieldsEqual(ra, rb, &c.desc.Fields[i]) {
			mask |= 1 << uint(i)
		}
	}
	return mask
}
