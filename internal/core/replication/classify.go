package replication

import (
	"fmt"
	"reflect"
)

// MaxFields is the hard field-count bound of spec.md §3: "1 ≤ N ≤ 32. The
// per-record field count bounds the mask width."
const MaxFields = 32

// classifyRecord validates and classifies a record's declaration-order
// field list (C1), resolving composite fields against reg. It returns the
// fatal error (spec.md §7 BuildError/InvalidLayout or MissingSerializer) or
// the descriptor plus any discouraged diagnostics.
func classifyRecord(t reflect.Type, role Role, reg *CompositeRegistry) (*RecordDescriptor, []Diagnostic, error) {
	if t.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("%w: record %s must be a struct", ErrInvalidLayout, t)
	}

	var diags []Diagnostic
	if hasEmbeddedField(t) {
		diags = append(diags, Diagnostic{
			Record:  t.String(),
			Message: "record embeds a field; embedding mimics inheritance and is discouraged for replicated records",
		})
	}
	if n := exportedMethodCount(t); n > 0 {
		diags = append(diags, Diagnostic{
			Record:  t.String(),
			Message: fmt.Sprintf("record has %d exported method(s); properties/methods on a record are discouraged", n),
		})
	}

	n := t.NumField()
	if n == 0 {
		return &RecordDescriptor{Type: t, Role: role, Fields: nil}, diags, nil
	}
	if n > MaxFields {
		return nil, nil, fmt.Errorf("%w: record %s has %d fields, exceeding the %d-field bound", ErrInvalidLayout, t, n, MaxFields)
	}

	fields := make([]FieldDescriptor, 0, n)
	for i := 0; i < n; i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			return nil, nil, fmt.Errorf("%w: record %s has unexported field %s", ErrInvalidLayout, t, sf.Name)
		}
		if sf.Type.Kind() == reflect.Func || sf.Type.Kind() == reflect.Chan {
			return nil, nil, fmt.Errorf("%w: record %s field %s is an event-like field (func/chan), which is not serializable", ErrInvalidLayout, t, sf.Name)
		}
		fd, err := classifyField(sf, i, reg)
		if err != nil {
			return nil, nil, fmt.Errorf("record %s field %s: %w", t, sf.Name, err)
		}
		fields = append(fields, fd)
	}

	return &RecordDescriptor{Type: t, Role: role, Fields: fields}, diags, nil
}

// classifyField classifies one struct field. reg may be nil; when nil, a
// struct-kind field is classified as KindComposite without a codec lookup
// — callers use this to detect (and reject) composite nesting beyond one
// level, per spec.md §3.3 ("Composites may not themselves nest
// composites").
func classifyField(sf reflect.StructField, idx int, reg *CompositeRegistry) (FieldDescriptor, error) {
	ft := sf.Type

	if width, wide64, ok := primitiveWidth(ft.Kind()); ok && !implementsEnumType(ft) {
		return FieldDescriptor{
			Name:      sf.Name,
			Kind:      KindPrimitive,
			GoType:    ft,
			StructIdx: idx,
			BitWidth:  width,
			IsWide64:  wide64,
		}, nil
	}

	if implementsEnumType(ft) {
		switch ft.Kind() {
		case reflect.Uint8, reflect.Int8, reflect.Uint16, reflect.Int16,
			reflect.Uint32, reflect.Int32, reflect.Uint64, reflect.Int64:
		default:
			return FieldDescriptor{}, fmt.Errorf("%w: enum field %s must be integer-backed, got %v", ErrInvalidLayout, sf.Name, ft.Kind())
		}
		variants := reflect.New(ft).Elem().Interface().(EnumType).VariantCount()
		return FieldDescriptor{
			Name:      sf.Name,
			Kind:      KindEnum,
			GoType:    ft,
			StructIdx: idx,
			EnumCount: variants,
			BitWidth:  bitsForEnum(variants),
		}, nil
	}

	if ft.Kind() == reflect.Struct {
		if reg == nil {
			// Composite nesting probe: no lookup available, so this is
			// necessarily a forbidden second level of nesting.
			return FieldDescriptor{Name: sf.Name, Kind: KindComposite, GoType: ft, StructIdx: idx}, nil
		}
		codec, err := reg.lookup(ft)
		if err != nil {
			return FieldDescriptor{}, err
		}
		return FieldDescriptor{
			Name:      sf.Name,
			Kind:      KindComposite,
			GoType:    ft,
			StructIdx: idx,
			Composite: codec,
		}, nil
	}

	return FieldDescriptor{}, fmt.Errorf("%w: field %s has unsupported type %v", ErrInvalidLayout, sf.Name, ft)
}

func implementsEnumType(t reflect.Type) bool {
	return t.Implements(reflect.TypeOf((*EnumType)(nil)).Elem())
}

func hasEmbeddedField(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Anonymous {
			return true
		}
	}
	return false
}

func exportedMethodCount(t reflect.Type) int {
	count := 0
	for i := 0; i < t.NumMethod(); i++ {
		if t.Method(i).IsExported() {
			count++
		}
	}
	return count
}
