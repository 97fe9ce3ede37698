// Package replication implements the build-time code generator that turns
// tagged value records into bit-exact serialize/deserialize/diff routines
// and the runtime registration and dispatch tables that route wire
// messages to them.
package replication

import "reflect"

// Role is the replication role a record is tagged with. It only affects
// which bucket a record's type id joins in Registry.IDsByRole; it has no
// bearing on the record's wire layout.
type Role uint8

const (
	Predicted Role = iota
	Ghost
	Input
	ShortLivedEvent
)

func (r Role) String() string {
	switch r {
	case Predicted:
		return "Predicted"
	case Ghost:
		return "Ghost"
	case Input:
		return "Input"
	case ShortLivedEvent:
		return "ShortLivedEvent"
	default:
		return "Unknown"
	}
}

// FieldKind classifies a single field of a record.
type FieldKind uint8

const (
	KindPrimitive FieldKind = iota
	KindEnum
	KindComposite
)

// FieldDescriptor is one field of a record, in declaration order.
type FieldDescriptor struct {
	Name       string
	Kind       FieldKind
	GoType     reflect.Type
	StructIdx  int // index into reflect.Type.Field for Get/Set
	EnumCount  int // variant count, only meaningful when Kind == KindEnum
	BitWidth   uint32
	IsWide64   bool // true for uint64/int64 primitives, split into two halves
	Composite  *compositeCodec
}

// RecordDescriptor is the fully classified shape of one record type,
// produced by classifyRecord and consumed by buildCodec.
type RecordDescriptor struct {
	Type   reflect.Type
	Role   Role
	Fields []FieldDescriptor
}

// RoleRecord is the discovery-time input the engine requires: "an iterable
// of (role, record descriptor) pairs" per spec.md §1. Callers build a
// []RoleRecord (a side-file registry, or generated by Describe) and pass
// it to Build.
type RoleRecord struct {
	Role Role
	Type reflect.Type
}

// Describe is a small discovery helper: Describe[T](role) builds the
// RoleRecord for T without requiring the caller to spell out
// reflect.TypeOf(T{}) at every call site. This is the side-file registry
// mechanism spec.md's design notes call for in place of attributes.
func Describe[T any](role Role) RoleRecord {
	var zero T
	return RoleRecord{Role: role, Type: reflect.TypeOf(zero)}
}

// N returns the record's field count.
func (d *RecordDescriptor) N() int {
	return len(d.Fields)
}

// Diagnostic is a non-fatal classification finding (spec.md §4.1's
// "discouraged" diagnostics): a property/method on the record, or an
// embedded field mimicking inheritance ("non-sealed").
type Diagnostic struct {
	Record  string
	Message string
}
