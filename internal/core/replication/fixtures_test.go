package replication

import (
	"reflect"

	"github.com/replicon-net/replicon/internal/core/replication/bitio"
)

// typeOf is a small test helper: typeOf[T]() is reflect.TypeOf(zero T).
func typeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

// AbilityState is the two-variant enum fixture used throughout the seed
// scenarios (spec.md §8, S1-S3).
type AbilityState uint8

const (
	AbilityIdle AbilityState = iota
	AbilityRunning
)

func (AbilityState) VariantCount() int { return 2 }

// Position is a fixture composite registered against a freshly constructed
// CompositeRegistry by newPositionRegistry.
type Position struct {
	X, Y, Z int16
}

func newPositionRegistry() *CompositeRegistry {
	reg := NewCompositeRegistry()
	err := RegisterComposite[Position](reg,
		func(w BitWriter, p Position) {
			w.WriteBits(uint32(uint16(p.X)), 16)
			w.WriteBits(uint32(uint16(p.Y)), 16)
			w.WriteBits(uint32(uint16(p.Z)), 16)
		},
		func(r BitReader) Position {
			return Position{
				X: int16(r.ReadBits(16)),
				Y: int16(r.ReadBits(16)),
				Z: int16(r.ReadBits(16)),
			}
		},
	)
	if err != nil {
		panic(err)
	}
	return reg
}

// PlayerState is the S1/S2/S3 fixture record: {counter: i32, ability:
// enum{Idle,Running}, position: composite{x,y,z: i16}}.
type PlayerState struct {
	Counter  int32
	Ability  AbilityState
	Position Position
}

// SingleByte is the S4 fixture: a record with exactly one field.
type SingleByte struct {
	V uint8
}

// FiveFields is the S5 fixture: five independent u8 fields.
type FiveFields struct {
	F0, F1, F2, F3, F4 uint8
}

// ZeroFieldRecord is the invariant-8 fixture: a record with no fields at
// all.
type ZeroFieldRecord struct{}

// buildFor is a small test helper: it runs Build over records using reg
// (or a fresh composite registry if reg is nil) and panics on any error.
func buildFor(records []RoleRecord, reg *CompositeRegistry) *Registry {
	registry, _, err := Build(records, reg)
	if err != nil {
		panic(err)
	}
	return registry
}

func newPort() (*bitio.Writer, func() *bitio.Reader) {
	w := bitio.NewWriter(16)
	return w, func() *bitio.Reader { return bitio.NewReader(w.Bytes()) }
}
