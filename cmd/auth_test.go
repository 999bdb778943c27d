package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcptools/google-toolbox/internal/config"
)

func TestRandomState(t *testing.T) {
	first, err := randomState()
	require.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := randomState()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestAuthCmdRequiresClient(t *testing.T) {
	t.Setenv(config.EnvClientID, "")
	t.Setenv(config.EnvClientSecret, "")

	cmd := newAuthCmd()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OAuth client is required")
}
