package replication

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBitsForEnum covers invariant 6's literal table.
func TestBitsForEnum(t *testing.T) {
	cases := []struct {
		variants int
		width    uint32
	}{
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{7, 3},
		{8, 3},
		{9, 4},
	}
	for _, c := range cases {
		assert.Equal(t, c.width, bitsForEnum(c.variants), "V=%d", c.variants)
	}
}

func TestBitsForEnum_EmptyEnum(t *testing.T) {
	assert.Equal(t, uint32(0), bitsForEnum(0))
}

func TestPrimitiveWidth(t *testing.T) {
	w, wide64, ok := primitiveWidth(reflect.Bool)
	assert.True(t, ok)
	assert.False(t, wide64)
	assert.Equal(t, uint32(1), w)

	w, wide64, ok = primitiveWidth(reflect.Uint64)
	assert.True(t, ok)
	assert.True(t, wide64)
	assert.Equal(t, uint32(32), w)
}
