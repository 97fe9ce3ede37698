package replication

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DescribeBySignature(t *testing.T) {
	reg := buildFor([]RoleRecord{Describe[FiveFields](Ghost)}, nil)
	id, ok := IDOf[FiveFields](reg)
	require.True(t, ok)

	byID, ok := reg.Describe(id)
	require.True(t, ok)
	require.NotZero(t, byID.Signature)

	bySig, ok := reg.DescribeBySignature(byID.Signature)
	require.True(t, ok)
	assert.Equal(t, byID, bySig)
}

func TestRecordSignature_StableAcrossDiscoveryReorder(t *testing.T) {
	regA := buildFor([]RoleRecord{
		Describe[RecordA](Predicted),
		Describe[RecordB](Ghost),
	}, nil)
	regB := buildFor([]RoleRecord{
		Describe[RecordB](Ghost),
		Describe[RecordA](Predicted),
	}, nil)

	idAinA, _ := IDOf[RecordA](regA)
	idAinB, _ := IDOf[RecordA](regB)
	require.NotEqual(t, idAinA, idAinB, "ids are assignment-order dependent")

	infoAinA, _ := regA.Describe(idAinA)
	infoAinB, _ := regB.Describe(idAinB)
	assert.Equal(t, infoAinA.Signature, infoAinB.Signature, "signature is stable despite the id change")
}

func TestRecordSignature_DiffersAcrossShapes(t *testing.T) {
	reg := buildFor([]RoleRecord{
		Describe[RecordA](Predicted),
		Describe[SingleByte](Input),
	}, nil)

	idA, _ := IDOf[RecordA](reg)
	idSingle, _ := IDOf[SingleByte](reg)

	infoA, _ := reg.Describe(idA)
	infoSingle, _ := reg.Describe(idSingle)
	assert.NotEqual(t, infoA.Signature, infoSingle.Signature)
}

func TestRegistry_DescribeBySignature_UnknownIsNotFound(t *testing.T) {
	reg := buildFor([]RoleRecord{Describe[SingleByte](Input)}, nil)
	_, ok := reg.DescribeBySignature(0xDEADBEEF)
	assert.False(t, ok)
}
