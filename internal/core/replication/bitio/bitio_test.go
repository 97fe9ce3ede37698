package bitio

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReader_RoundTrip(t *testing.T) {
	w := NewWriter(8)
	w.WriteBits(0xFFFFFFFF, 32)
	w.WriteBits(0b01, 2)
	w.WriteBits(0x0001, 16)
	w.WriteBits(0xFFFE, 16)
	w.WriteBits(0x0003, 16)

	require.Equal(t, 82, w.Len())
	data := w.Bytes()
	require.Len(t, data, 11) // 82 bits -> 11 bytes, zero padded

	r := NewReader(data)
	assert.Equal(t, uint32(0xFFFFFFFF), r.ReadBits(32))
	assert.Equal(t, uint32(0b01), r.ReadBits(2))
	assert.Equal(t, uint32(0x0001), r.ReadBits(16))
	assert.Equal(t, uint32(0xFFFE), r.ReadBits(16))
	assert.Equal(t, uint32(0x0003), r.ReadBits(16))
}

func TestWriter_PacksTightlyAcrossBytes(t *testing.T) {
	w := NewWriter(1)
	w.WriteBits(0b101, 3)
	w.WriteBits(0b10101, 5)
	data := w.Bytes()
	require.Len(t, data, 1)
	assert.Equal(t, byte(0b10110101), data[0])
}

func TestReader_PastEndReturnsZeroBits(t *testing.T) {
	r := NewReader(nil)
	assert.Equal(t, uint32(0), r.ReadBits(16))
}

func TestWriterReader_RandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		w := NewWriter(16)
		var widths []uint32
		var values []uint32
		total := 0
		for total < 500 {
			n := uint32(1 + rng.Intn(32))
			if total+int(n) > 2000 {
				break
			}
			v := rng.Uint32()
			if n < 32 {
				v &= (1 << n) - 1
			}
			w.WriteBits(v, n)
			widths = append(widths, n)
			values = append(values, v)
			total += int(n)
		}
		r := NewReader(w.Bytes())
		for i, n := range widths {
			assert.Equal(t, values[i], r.ReadBits(n), "trial %d field %d width %d", trial, i, n)
		}
	}
}
