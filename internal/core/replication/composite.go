package replication

import (
	"fmt"
	"reflect"

	"github.com/replicon-net/replicon/pkg/generic"
)

// compositeCodec is the type-erased form of a registered composite's
// Write/Read pair. value is always a non-pointer reflect.Value of the
// composite's type.
type compositeCodec struct {
	typeName string
	write    func(w BitWriter, value reflect.Value)
	read     func(r BitReader) reflect.Value
	// subFields lists the composite's own primitive/enum fields, used only
	// by Diff (spec.md §4.4: "compare the composite's own primitive
	// sub-fields one-by-one"). A composite referencing another composite
	// fails registration — single-level nesting only.
	subFields []FieldDescriptor
}

// CompositeRegistry discovers externally supplied Read/Write routines for
// user-defined composite types and exposes them by type identity (C3).
// The zero value is not usable; use NewCompositeRegistry.
type CompositeRegistry struct {
	byType *generic.SyncMap[reflect.Type, *compositeCodec]
}

// NewCompositeRegistry returns an empty registry.
func NewCompositeRegistry() *CompositeRegistry {
	return &CompositeRegistry{byType: generic.NewSyncMap[reflect.Type, *compositeCodec]()}
}

// RegisterComposite installs the Write/Read pair for composite type T. It
// is the Go stand-in for a class tagged BitSerializer (spec.md §4.3): Write
// serializes v to port, Read produces a value from port.
//
// T's own fields are classified eagerly (not lazily, at first use) so that
// a doubly nested composite is rejected at registration time rather than
// surfacing only when some containing record happens to reference it.
func RegisterComposite[T any](reg *CompositeRegistry, write func(w BitWriter, v T), read func(r BitReader) T) error {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil || t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: composite type must be a struct, got %v", ErrInvalidLayout, t)
	}

	subFields, err := classifyCompositeFields(t)
	if err != nil {
		return err
	}

	codec := &compositeCodec{
		typeName: t.String(),
		write: func(w BitWriter, value reflect.Value) {
			write(w, value.Interface().(T))
		},
		read: func(r BitReader) reflect.Value {
			return reflect.ValueOf(read(r))
		},
		subFields: subFields,
	}
	reg.byType.Set(t, codec)
	return nil
}

// lookup returns the registered codec for t, or an error naming t per
// spec.md §4.3 ("Missing codec for a referenced composite → fatal").
func (reg *CompositeRegistry) lookup(t reflect.Type) (*compositeCodec, error) {
	codec, ok := reg.byType.Get(t)
	if !ok {
		return nil, fmt.Errorf("%w: no BitSerializer registered for composite %s", ErrMissingSerializer, t)
	}
	return codec, nil
}

// classifyCompositeFields walks a composite's own fields, allowing only
// primitives and enums (no nested composites), for use by Diff.
func classifyCompositeFields(t reflect.Type) ([]FieldDescriptor, error) {
	fields := make([]FieldDescriptor, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			return nil, fmt.Errorf("%w: composite %s has unexported field %s", ErrInvalidLayout, t, sf.Name)
		}
		fd, err := classifyField(sf, i, nil)
		if err != nil {
			return nil, err
		}
		if fd.Kind == KindComposite {
			return nil, fmt.Errorf("%w: composite %s field %s is itself a composite; nesting depth must be 1", ErrInvalidLayout, t, sf.Name)
		}
		fields = append(fields, fd)
	}
	return fields, nil
}
