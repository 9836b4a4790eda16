package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_PortFlag(t *testing.T) {
	cmd := newRootCommand()

	require.NoError(t, cmd.ParseFlags([]string{"--port", "8081"}))
	port, err := cmd.Flags().GetString("port")
	require.NoError(t, err)
	assert.Equal(t, "8081", port)
}

func TestRun_RejectsInvalidPortOverride(t *testing.T) {
	t.Setenv("PORT", "")

	err := run(context.Background(), "not-a-port")
	assert.EqualError(t, err, "invalid port 'not-a-port': must be a number")
}
