package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionCmd(t *testing.T) {
	c := NewVersionCmd()

	assert.Equal(t, "version", c.Use)
	assert.NotEmpty(t, c.Short)
	assert.NotEmpty(t, c.Long)
}

func TestVersionCmd_Execute(t *testing.T) {
	newTestEnv(t)

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "quickstart version")
	assert.Contains(t, stdout, "Go:")
}
