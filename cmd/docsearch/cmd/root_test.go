package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_HelpListsCommands(t *testing.T) {
	// Given: the root command
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	// When: requesting help
	err := cmd.Execute()

	// Then: the core commands are listed
	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "build")
	assert.Contains(t, output, "watch")
	assert.Contains(t, output, "config")
	assert.Contains(t, output, "version")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	// Given: the root command
	cmd := NewRootCmd()

	// Then: global flags are registered
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	// Given: the root command
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"frobnicate"})

	// When: executing an unknown subcommand
	err := cmd.Execute()

	// Then: it fails
	assert.Error(t, err)
}
