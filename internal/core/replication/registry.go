package replication

import (
	"reflect"
	"sync"
)

// recordBinding is one record's process-wide registration-table entry
// (spec.md §3): a stable id and descriptor from the build phase, plus —
// once Init has run — the type-specific codec and dispatch closures.
type recordBinding struct {
	id        uint16
	desc      *RecordDescriptor
	signature uint64 // recordSignature(desc), computed once at Build time

	codec any // *Codec[T], compiled lazily by Compile or BindFor's attach
	bound bool // true once a receiver's dispatch closures are attached

	newFn     func(port BitReader, entityID uint32, receiver any)
	updateFn  func(port BitReader, entityID uint32, receiver any)
	destroyFn func(entityID uint32, receiver any)
}

// Registry holds the process-wide registration tables of spec.md §3:
// id_of, the per-type function slots, ids_by_role, and the three dispatch
// switch tables. Build populates the type-id/descriptor half (C1-C5);
// Init populates everything else (C6). A Registry is read-only after Init
// completes and safe for concurrent reads from many goroutines — no
// locking is needed on the dispatch path, matching spec.md §5.
type Registry struct {
	byType      map[reflect.Type]*recordBinding
	byID        map[uint16]*recordBinding
	bySignature map[uint64]*recordBinding
	records     []*recordBinding
	compReg     *CompositeRegistry

	idsByRole [3][]uint32 // indexed by Predicted, Ghost, Input

	mu sync.Mutex // guards codec compilation and binder attachment

	initOnce sync.Once
	initErr  error

	switchNew     func(port BitReader, entityID uint32, typeID uint32, receiver any)
	switchUpdate  func(port BitReader, entityID uint32, typeID uint32, receiver any)
	switchDestroy func(entityID uint32, typeID uint32, receiver any)
}

// IDsByRole returns role's id array, one of the three fixed arrays
// (Predicted, Ghost, Input) of spec.md §3; ShortLivedEvent has no array
// and yields nil. The returned slice is the Registry's own backing array
// and must not be mutated.
func (r *Registry) IDsByRole(role Role) []uint32 {
	if role == ShortLivedEvent {
		return nil
	}
	return r.idsByRole[role]
}

// RecordCount is the number of records the build phase classified.
func (r *Registry) RecordCount() int { return len(r.records) }

// RecordInfo is the Describe introspection result (SPEC_FULL.md
// "[SUPPLEMENT]"): logging/metrics-friendly, never touches the wire.
type RecordInfo struct {
	Name      string
	ID        uint16
	Fields    int
	Signature uint64 // recordSignature(desc); stable across a reorder of the discovery slice
}

// Describe looks up a record by its allocated id, for logging/metrics —
// not on the hot dispatch path.
func (r *Registry) Describe(id uint16) (RecordInfo, bool) {
	rb, ok := r.byID[id]
	if !ok {
		return RecordInfo{}, false
	}
	return recordInfoOf(rb), true
}

// DescribeBySignature looks up a record by its shape signature instead of
// its allocated id. Two registries built from discovery slices that differ
// only in ordering assign different uint16 ids to the same record but
// agree on its signature; a log/metrics consumer correlating across such
// runs (or across a process restart where ids were reassigned) uses this
// instead of the id.
func (r *Registry) DescribeBySignature(sig uint64) (RecordInfo, bool) {
	rb, ok := r.bySignature[sig]
	if !ok {
		return RecordInfo{}, false
	}
	return recordInfoOf(rb), true
}

func recordInfoOf(rb *recordBinding) RecordInfo {
	return RecordInfo{Name: rb.desc.Type.String(), ID: rb.id, Fields: rb.desc.N(), Signature: rb.signature}
}

// Binder attaches a generic Receiver[T] to the record type T was built
// for. Construct one with BindFor and pass it to Init. Binder is the Go
// stand-in for "a trait/interface implementation per record synthesized
// at build time" from spec.md's design notes — generics can only be
// instantiated for a concrete T at the call site, so the caller supplies
// one Binder per record type.
type Binder struct {
	typ    reflect.Type
	attach func(rb *recordBinding) error
}

// BindFor constructs the Binder for record type T, wiring receiver into
// the new/update/destroy dispatch closures exactly as spec.md §4.5
// describes:
//
//	new:     receiver.ReceiveNew(entityID, deserialize_full(port))
//	update:  tmp := receiver.GrabOrCreate(entityID)
//	         mask := deserialize_mask_ref(port, &tmp)
//	         receiver.Update(mask, entityID, tmp)
//	destroy: receiver.DestroyComponent(entityID)
func BindFor[T any](receiver Receiver[T]) Binder {
	var zero T
	t := reflect.TypeOf(zero)
	return Binder{
		typ: t,
		attach: func(rb *recordBinding) error {
			if rb.codec == nil {
				rb.codec = buildCodec[T](rb.desc)
			}
			codec := rb.codec.(*Codec[T])
			rb.newFn = func(port BitReader, entityID uint32, recv any) {
				recv.(Receiver[T]).ReceiveNew(entityID, codec.DeserializeFull(port))
			}
			rb.updateFn = func(port BitReader, entityID uint32, recv any) {
				typedRecv := recv.(Receiver[T])
				tmp := typedRecv.GrabOrCreate(entityID)
				mask := codec.DeserializeMaskRef(port, &tmp)
				typedRecv.Update(mask, entityID, tmp)
			}
			rb.destroyFn = func(entityID uint32, recv any) {
				recv.(Receiver[T]).DestroyComponent(entityID)
			}
			return nil
		},
	}
}

// Init is the init phase (C6): run once at process start, it attaches
// every binder's typed codec and receiver closures into the registry's
// per-record slots and installs the three dispatch switch tables. A
// second call is a safe no-op (spec.md §4.6: "idempotent in effect"): it
// returns the first call's result and does not look at its own binders.
// Within one call, a second binder for a record type that call has already
// attached fails with ErrDuplicateID, so a double-registration of the same
// record type is caught rather than silently re-run.
func (r *Registry) Init(binders ...Binder) error {
	r.initOnce.Do(func() {
		r.initErr = r.init(binders)
	})
	return r.initErr
}

func (r *Registry) init(binders []Binder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range binders {
		rb, ok := r.byType[b.typ]
		if !ok {
			return &InitError{Code: CodeUnknown, Record: b.typ.String(), Cause: ErrNotInitialized}
		}
		if rb.bound {
			return &InitError{Code: CodeDuplicateID, Record: b.typ.String(), Cause: ErrDuplicateID}
		}
		if err := b.attach(rb); err != nil {
			return &InitError{Code: CodeUnknown, Record: b.typ.String(), Cause: err}
		}
		rb.bound = true
	}

	r.switchNew = func(port BitReader, entityID uint32, typeID uint32, receiver any) {
		rb, ok := r.byID[uint16(typeID)]
		if !ok || uint32(rb.id) != typeID || rb.newFn == nil {
			return // RuntimeMismatch: unknown or unbound id, silent no-op per spec.md §4.5/§4.7.
		}
		rb.newFn(port, entityID, receiver)
	}
	r.switchUpdate = func(port BitReader, entityID uint32, typeID uint32, receiver any) {
		rb, ok := r.byID[uint16(typeID)]
		if !ok || uint32(rb.id) != typeID || rb.updateFn == nil {
			return
		}
		rb.updateFn(port, entityID, receiver)
	}
	r.switchDestroy = func(entityID uint32, typeID uint32, receiver any) {
		rb, ok := r.byID[uint16(typeID)]
		if !ok || uint32(rb.id) != typeID || rb.destroyFn == nil {
			return
		}
		rb.destroyFn(entityID, receiver)
	}
	return nil
}

// Compile returns the Codec[T] for record type T, building it on first
// use and caching it on the registry. Compile is how the six
// serialize/deserialize/diff routines (C4) become available independent
// of whether T ever gets a bound Receiver[T] via BindFor/Init — a record
// that only ever gets diffed and never dispatched still needs a codec.
func Compile[T any](r *Registry) (*Codec[T], error) {
	var zero T
	t := reflect.TypeOf(zero)
	rb, ok := r.byType[t]
	if !ok {
		return nil, &BuildError{Code: CodeUnknown, Record: t.String(), Cause: ErrNotInitialized}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if rb.codec == nil {
		rb.codec = buildCodec[T](rb.desc)
	}
	return rb.codec.(*Codec[T]), nil
}

// IDOf returns the stable id assigned to record type T (spec.md §6:
// "id_of<T>() -> u16"). Stable across calls within a process once Build
// has run.
func IDOf[T any](r *Registry) (uint16, bool) {
	var zero T
	rb, ok := r.byType[reflect.TypeOf(zero)]
	if !ok {
		return 0, false
	}
	return rb.id, true
}

// CodecFor returns the cached Codec[T] for record type T. Returns
// (nil, false) until T's codec has been built, either by Compile or by
// Init attaching T's binder.
func CodecFor[T any](r *Registry) (*Codec[T], bool) {
	var zero T
	rb, ok := r.byType[reflect.TypeOf(zero)]
	if !ok || rb.codec == nil {
		return nil, false
	}
	return rb.codec.(*Codec[T]), true
}
