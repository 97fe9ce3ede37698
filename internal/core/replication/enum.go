package replication

// EnumType is the tagged-type mechanism an integer-backed enum field must
// implement so the classifier can read its variant count (spec.md §3.2).
// A field's Go type is treated as an enum iff its reflect.Kind is one of
// the integer kinds and it implements EnumType; VariantCount() is called
// on the zero value, so it must not depend on field state.
//
//	type AbilityState uint8
//
//	const (
//		AbilityIdle AbilityState = iota
//		AbilityRunning
//	)
//
//	func (AbilityState) VariantCount() int { return 2 }
type EnumType interface {
	VariantCount() int
}
