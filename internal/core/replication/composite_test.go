package replication

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterComposite_NonStructRejected(t *testing.T) {
	reg := NewCompositeRegistry()
	err := RegisterComposite[uint8](reg,
		func(w BitWriter, v uint8) { w.WriteBits(uint32(v), 8) },
		func(r BitReader) uint8 { return uint8(r.ReadBits(8)) },
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLayout))
}

func TestRegisterComposite_NestedCompositeRejected(t *testing.T) {
	reg := NewCompositeRegistry()
	type Outer struct {
		P Position
	}
	err := RegisterComposite[Outer](reg,
		func(w BitWriter, v Outer) {},
		func(r BitReader) Outer { return Outer{} },
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLayout))
}

func TestClassifyRecord_MissingCompositeSerializer(t *testing.T) {
	type HasPosition struct {
		P Position
	}
	_, _, err := classifyRecord(typeOf[HasPosition](), Ghost, NewCompositeRegistry())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingSerializer))
}

func TestCompositeCodec_WriteReadRoundTrip(t *testing.T) {
	reg := buildFor([]RoleRecord{Describe[PlayerState](Predicted)}, newPositionRegistry())
	codec, err := Compile[PlayerState](reg)
	require.NoError(t, err)

	v := PlayerState{Counter: 1, Ability: AbilityIdle, Position: Position{X: 100, Y: -100, Z: 0}}
	w, reader := newPort()
	codec.SerializeFull(w, v)
	got := codec.DeserializeFull(reader())
	assert.Equal(t, v.Position, got.Position)
}
