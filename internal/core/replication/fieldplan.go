package replication

import "reflect"

// bitsOf extracts the raw bit pattern of a primitive/enum field as a
// uint64, two's-complement for signed kinds, 0/1 for bool. This is the
// single conversion point both the write path and Diff's bitwise-equality
// check rely on.
func bitsOf(fv reflect.Value) uint64 {
	switch fv.Kind() {
	case reflect.Bool:
		if fv.Bool() {
			return 1
		}
		return 0
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fv.Uint()
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(fv.Int())
	default:
		panic("replication: bitsOf: unsupported field kind " + fv.Kind().String())
	}
}

// setBits writes the low bits of value that fit fv's kind into fv, zero-extending
// then bitcasting into a signed destination (spec.md §4.4).
func setBits(fv reflect.Value, value uint64) {
	switch fv.Kind() {
	case reflect.Bool:
		fv.SetBool(value != 0)
	case reflect.Uint8:
		fv.SetUint(value & 0xFF)
	case reflect.Uint16:
		fv.SetUint(value & 0xFFFF)
	case reflect.Uint32:
		fv.SetUint(value & 0xFFFFFFFF)
	case reflect.Uint64:
		fv.SetUint(value)
	case reflect.Int8:
		fv.SetInt(int64(int8(value)))
	case reflect.Int16:
		fv.SetInt(int64(int16(value)))
	case reflect.Int32:
		fv.SetInt(int64(int32(value)))
	case reflect.Int64:
		fv.SetInt(int64(value))
	default:
		panic("replication: setBits: unsupported field kind " + fv.Kind().String())
	}
}

// writeScalar writes a primitive or enum field's bits to the port. Bool is
// normalized to exactly 0/1 before WriteBits, per spec.md §4.4.
func writeScalar(w BitWriter, fv reflect.Value, width uint32, wide64 bool) {
	bits := bitsOf(fv)
	if wide64 {
		w.WriteBits(uint32(bits), 32)
		w.WriteBits(uint32(bits>>32), 32)
		return
	}
	w.WriteBits(uint32(bits), width)
}

// readScalar reads a primitive or enum field's bits from the port into fv.
func readScalar(r BitReader, fv reflect.Value, width uint32, wide64 bool) {
	if wide64 {
		lo := uint64(r.ReadBits(32))
		hi := uint64(r.ReadBits(32))
		setBits(fv, lo|hi<<32)
		return
	}
	setBits(fv, uint64(r.ReadBits(width)))
}

// writeField dispatches a single field write by kind.
func writeField(w BitWriter, rv reflect.Value, fd *FieldDescriptor) {
	fv := rv.Field(fd.StructIdx)
	switch fd.Kind {
	case KindPrimitive, KindEnum:
		writeScalar(w, fv, fd.BitWidth, fd.IsWide64)
	case KindComposite:
		fd.Composite.write(w, fv)
	}
}

// readField dispatches a single field read by kind, storing into rv.
func readField(r BitReader, rv reflect.Value, fd *FieldDescriptor) {
	fv := rv.Field(fd.StructIdx)
	switch fd.Kind {
	case KindPrimitive, KindEnum:
		readScalar(r, fv, fd.BitWidth, fd.IsWide64)
	case KindComposite:
		fv.Set(fd.Composite.read(r))
	}
}

// fieldsEqual implements spec.md §4.4's Diff comparison for one field:
// bitwise equality for primitives/enums, and a one-level-deep walk of the
// composite's own primitive/enum sub-fields where any mismatch counts as
// unequal.
func fieldsEqual(ra, rb reflect.Value, fd *FieldDescriptor) bool {
	fa := ra.Field(fd.StructIdx)
	fb := rb.Field(fd.StructIdx)
	switch fd.Kind {
	case KindPrimitive, KindEnum:
		return bitsOf(fa) == bitsOf(fb)
	case KindComposite:
		for i := range fd.Composite.subFields {
			sub := &fd.Composite.subFields[i]
			sfa := fa.Field(sub.StructIdx)
			sfb := fb.Field(sub.StructIdx)
			if bitsOf(sfa) != bitsOf(sfb) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
