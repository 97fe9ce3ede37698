package replication

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixture record types for S6, one field each so classification is trivial.
type RecordA struct{ V uint8 }
type RecordB struct{ V uint8 }
type RecordC struct{ V uint8 }
type RecordD struct{ V uint8 }

// TestBuild_S6_IDAllocationAcrossRoles mirrors S6 exactly: records supplied
// pre-ordered Predicted block, then Ghost block, then Input block.
func TestBuild_S6_IDAllocationAcrossRoles(t *testing.T) {
	records := []RoleRecord{
		Describe[RecordA](Predicted),
		Describe[RecordB](Ghost),
		Describe[RecordC](Ghost),
		Describe[RecordD](Input),
	}
	reg, _, err := Build(records, nil)
	require.NoError(t, err)

	idA, _ := IDOf[RecordA](reg)
	idB, _ := IDOf[RecordB](reg)
	idC, _ := IDOf[RecordC](reg)
	idD, _ := IDOf[RecordD](reg)

	assert.Equal(t, uint16(1), idA)
	assert.Equal(t, uint16(2), idB)
	assert.Equal(t, uint16(3), idC)
	assert.Equal(t, uint16(4), idD)

	assert.Equal(t, []uint32{1}, reg.IDsByRole(Predicted))
	assert.Equal(t, []uint32{2, 3}, reg.IDsByRole(Ghost))
	assert.Equal(t, []uint32{4}, reg.IDsByRole(Input))
}

// TestIDOf_Stability covers invariant 7: id_of returns the same value
// across repeated calls.
func TestIDOf_Stability(t *testing.T) {
	reg := buildFor([]RoleRecord{Describe[RecordA](Predicted)}, nil)
	id1, ok1 := IDOf[RecordA](reg)
	id2, ok2 := IDOf[RecordA](reg)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, id1, id2)
}

func TestBuild_DuplicateRecordTypeRejected(t *testing.T) {
	records := []RoleRecord{
		Describe[RecordA](Predicted),
		Describe[RecordA](Ghost),
	}
	_, _, err := Build(records, nil)
	require.Error(t, err)
}

func TestBuild_ShortLivedEventGetsNoRoleBucket(t *testing.T) {
	records := []RoleRecord{
		Describe[RecordA](Predicted),
		Describe[RecordB](ShortLivedEvent),
	}
	reg, _, err := Build(records, nil)
	require.NoError(t, err)

	idB, ok := IDOf[RecordB](reg)
	require.True(t, ok)
	assert.Equal(t, uint16(2), idB)
	assert.Nil(t, reg.IDsByRole(ShortLivedEvent))
}
