package replication

import (
	"reflect"

	"golang.org/x/sync/errgroup"
)

// classifyResult is one slot of the concurrent classification pass below.
type classifyResult struct {
	desc  *RecordDescriptor
	diags []Diagnostic
	err   error
}

// Build is the build phase (C1-C5): it classifies every discovered record
// and assigns each a stable uint16 type id in discovery order.
//
// records must already be ordered the way spec.md §4.5 requires: the
// Predicted block, then the Ghost block, then the Input block, with any
// ShortLivedEvent records interleaved wherever the caller's scanner
// actually encountered them. Build does not reorder records — it assigns
// id K+1 to records[K] — so getting that grouping right is the caller's
// (the external scanner's) responsibility, exactly as spec.md frames it.
//
// Classification of each record is independent and read-only, so the N
// classifications run concurrently via an errgroup; id allocation and
// table construction then run single-threaded once every classification
// has succeeded, preserving the deterministic, sequential assignment
// spec.md §4.5 requires.
func Build(records []RoleRecord, compositeReg *CompositeRegistry) (*Registry, []Diagnostic, error) {
	if compositeReg == nil {
		compositeReg = NewCompositeRegistry()
	}

	seen := make(map[reflect.Type]bool, len(records))
	for _, rr := range records {
		if seen[rr.Type] {
			return nil, nil, newBuildError(rr.Type.String(), ErrInvalidLayout)
		}
		seen[rr.Type] = true
	}

	results := make([]classifyResult, len(records))
	var g errgroup.Group
	for i, rr := range records {
		i, rr := i, rr
		g.Go(func() error {
			desc, diags, err := classifyRecord(rr.Type, rr.Role, compositeReg)
			results[i] = classifyResult{desc: desc, diags: diags, err: err}
			return nil // errors are carried in results, not returned, so every
			// record gets a chance to report its own failure's type name.
		})
	}
	_ = g.Wait()

	for i, rr := range records {
		if results[i].err != nil {
			return nil, nil, newBuildError(rr.Type.String(), results[i].err)
		}
	}

	reg := &Registry{
		byType:      make(map[reflect.Type]*recordBinding, len(records)),
		byID:        make(map[uint16]*recordBinding, len(records)),
		bySignature: make(map[uint64]*recordBinding, len(records)),
		compReg:     compositeReg,
	}

	var diags []Diagnostic
	for i, rr := range records {
		diags = append(diags, results[i].diags...)

		id := uint16(i + 1)
		rb := &recordBinding{id: id, desc: results[i].desc, signature: recordSignature(results[i].desc)}
		reg.byType[rr.Type] = rb
		reg.byID[id] = rb
		reg.bySignature[rb.signature] = rb
		reg.records = append(reg.records, rb)

		switch rr.Role {
		case Predicted:
			reg.idsByRole[Predicted] = append(reg.idsByRole[Predicted], uint32(id))
		case Ghost:
			reg.idsByRole[Ghost] = append(reg.idsByRole[Ghost], uint32(id))
		case Input:
			reg.idsByRole[Input] = append(reg.idsByRole[Input], uint32(id))
		case ShortLivedEvent:
			// No dedicated bucket array per spec.md §3/§4.5 — the id is
			// still allocated and consumed, just not placed in any of the
			// three idsByRole arrays.
		}
	}

	return reg, diags, nil
}
