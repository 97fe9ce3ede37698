package replication

import (
	"math/bits"
	"reflect"
)

// primitiveWidth returns the wire width of a blittable primitive kind, per
// spec.md §4.2. Returns (width, wide64, ok); wide64 is true for the two
// kinds this implementation splits into 32-bit halves (see the Open
// Question resolution in DESIGN.md).
func primitiveWidth(k reflect.Kind) (width uint32, wide64 bool, ok bool) {
	switch k {
	case reflect.Bool:
		return 1, false, true
	case reflect.Uint8, reflect.Int8:
		return 8, false, true
	case reflect.Uint16, reflect.Int16:
		return 16, false, true
	case reflect.Uint32, reflect.Int32:
		return 32, false, true
	case reflect.Uint64, reflect.Int64:
		return 32, true, true
	default:
		return 0, false, false
	}
}

// bitsForEnum computes ⌈log2 V⌉ for V > 1, 1 for V == 1, and 0 for V == 0 —
// the exact formula spec.md §4.2 requires, bit-compatible with the source.
func bitsForEnum(variantCount int) uint32 {
	switch {
	case variantCount <= 0:
		return 0
	case variantCount == 1:
		return 1
	default:
		return uint32(bits.Len(uint(variantCount - 1)))
	}
}
