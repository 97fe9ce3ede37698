package replication

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// recordSignature computes a stable 64-bit fingerprint of a record's shape
// (its Go type name plus each field's name and bit width). Build computes
// one per record and stores it on the record's binding; Registry.Describe
// and Registry.DescribeBySignature surface it as RecordInfo.Signature, an
// identity that survives a reorder of the discovery slice, for log/metrics
// correlation across runs where the allocated uint16 id is not guaranteed
// stable. Grounded on the teacher's xHash/xHash32 helpers
// (internal/core/syncv2/vars/sharded.go), which hash an assembled string
// key with xxhash.Sum64String the same way.
func recordSignature(desc *RecordDescriptor) uint64 {
	var b strings.Builder
	b.WriteString(desc.Type.String())
	for i := range desc.Fields {
		f := &desc.Fields[i]
		b.WriteByte('|')
		b.WriteString(f.Name)
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(f.BitWidth), 10))
	}
	return xxhash.Sum64String(b.String())
}
