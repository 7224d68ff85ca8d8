package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand(t *testing.T) {
	rootCmd.SetArgs([]string{"validate"})
	require.NoError(t, rootCmd.Execute())
}

func TestRunCommand_RejectsUnknownTest(t *testing.T) {
	rootCmd.SetArgs([]string{"run", "NoSuchTest"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no test named "NoSuchTest"`)
}

func TestGraphCommand_RejectsUnknownDriver(t *testing.T) {
	rootCmd.SetArgs([]string{"graph", "--driver", "appium"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown driver "appium"`)
}
