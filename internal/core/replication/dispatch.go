package replication

// ReceiveNew decodes a "new" wire message: it deserializes a full value of
// whatever record data_type_id names and hands it to receiver via the
// record's bound Receiver[T].ReceiveNew. Unknown data_type_id consumes no
// bits and calls nothing (spec.md §4.7).
func ReceiveNew(reg *Registry, port BitReader, entityID uint32, dataTypeID uint32, receiver any) {
	if reg.switchNew == nil {
		return
	}
	reg.switchNew(port, entityID, dataTypeID, receiver)
}

// ReceiveUpdate decodes an "update" wire message: it fetches-or-creates the
// receiver's instance for entityID, applies a masked read onto it, and
// hands the result back through Receiver[T].Update. Unknown data_type_id
// consumes no bits and calls nothing.
func ReceiveUpdate(reg *Registry, port BitReader, entityID uint32, dataTypeID uint32, receiver any) {
	if reg.switchUpdate == nil {
		return
	}
	reg.switchUpdate(port, entityID, dataTypeID, receiver)
}

// ReceiveDestroy decodes a "destroy" wire message: three arguments only
// (spec.md §9's resolved Open Question — the four-argument, reader-taking
// variant is not supported by this implementation).
func ReceiveDestroy(reg *Registry, entityID uint32, dataTypeID uint32, receiver any) {
	if reg.switchDestroy == nil {
		return
	}
	reg.switchDestroy(entityID, dataTypeID, receiver)
}
