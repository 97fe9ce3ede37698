package replication

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replicon-net/replicon/internal/config"
)

func TestBuildWithConfig_RoleDisabledRejected(t *testing.T) {
	cfg := config.NewConfig(config.WithEnabledRoles("Predicted"))
	_, _, err := BuildWithConfig(cfg, []RoleRecord{Describe[SingleByte](Input)}, nil)
	require.Error(t, err)
}

func TestBuildWithConfig_MaxFieldsTightensBound(t *testing.T) {
	cfg := config.NewConfig(config.WithMaxFields(4))
	_, _, err := BuildWithConfig(cfg, []RoleRecord{Describe[FiveFields](Ghost)}, nil)
	require.Error(t, err)

	_, _, err = BuildWithConfig(cfg, []RoleRecord{Describe[SingleByte](Input)}, nil)
	require.NoError(t, err)
}

func TestBuildWithConfig_StrictModeEscalatesDiagnostics(t *testing.T) {
	cfg := config.NewConfig(config.WithStrictMode(true))

	// recordWithMethod (defined in classify_test.go) has an exported
	// method, which classifyRecord reports as a discouraged diagnostic
	// rather than a fatal error.
	_, _, err := BuildWithConfig(cfg, []RoleRecord{Describe[recordWithMethod](Predicted)}, nil)
	require.Error(t, err)

	_, diags, err := Build([]RoleRecord{Describe[recordWithMethod](Predicted)}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, diags)
}

func TestBuildWithConfig_DefaultConfigAllowsEverything(t *testing.T) {
	cfg := config.DefaultConfig()
	reg, _, err := BuildWithConfig(cfg, []RoleRecord{Describe[FiveFields](Ghost)}, nil)
	require.NoError(t, err)
	id, ok := IDOf[FiveFields](reg)
	require.True(t, ok)
	assert.Equal(t, uint16(1), id)
}
