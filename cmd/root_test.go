package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecoblack/edtoken/internal/configs"
	kerrors "github.com/thecoblack/edtoken/internal/errors"
)

func TestRootCommandBanner(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t)
	require.NoError(t, err)
	assert.Contains(t, output, "edtoken --help")
}

func TestLogCommand(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "log")
	require.NoError(t, err)
	assert.Contains(t, output, "No audit log entries found.")

	_, err = runCLI(t, "add", "work")
	require.NoError(t, err)
	_, err = runCLI(t, "set", "work", "-k", "user", "-V", "alice")
	require.NoError(t, err)
	_, err = runCLI(t, "add", "home")
	require.NoError(t, err)

	output, err = runCLI(t, "log")
	require.NoError(t, err)
	assert.Contains(t, output, "testuser")
	assert.Contains(t, output, `work "user"`)
	assert.NotContains(t, output, "alice")

	output, err = runCLI(t, "log", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, output, "home")
	assert.NotContains(t, output, "work")

	output, err = runCLI(t, "log", "--profile", "work")
	require.NoError(t, err)
	assert.NotContains(t, output, "home")
}

func TestLogCommandAuditOff(t *testing.T) {
	setupTestEnvironment(t)
	t.Setenv("EDTOKEN_AUDIT_LOG", "false")

	output, err := runCLI(t, "log")
	require.NoError(t, err)
	assert.Contains(t, output, "Audit logging is off")
}

func TestConfigCommands(t *testing.T) {
	paths := setupTestEnvironment(t)

	output, err := runCLI(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "(not created)")

	var shown configs.Config
	header, body, found := strings.Cut(output, "\n")
	require.True(t, found)
	assert.Equal(t, "# config file: "+configs.ConfigFilePath()+" (not created)", header)
	_, err = toml.Decode(body, &shown)
	require.NoError(t, err)
	assert.Equal(t, paths.profiles, shown.ProfilesPath)
	assert.Equal(t, "/bin/sh", shown.Shell)

	output, err = runCLI(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, output, "Config written to")
	assert.FileExists(t, configs.ConfigFilePath())

	output, err = runCLI(t, "config", "init")
	assert.ErrorIs(t, err, kerrors.ErrConfigExists)
	assert.Contains(t, output, "--force")

	_, err = runCLI(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestExecuteExitCodes(t *testing.T) {
	setupTestEnvironment(t)

	RootCmd.SetArgs([]string{"show"})
	var code int
	_, _ = captureOutput(func() error {
		code = Execute()
		return nil
	})
	assert.Equal(t, 0, code)

	ResetGlobalState()
	RootCmd.SetArgs([]string{"show", "nobody"})
	output, _ := captureOutput(func() error {
		code = Execute()
		return nil
	})
	assert.Equal(t, 1, code)
	assert.Contains(t, output, "does not exist")

	ResetGlobalState()
	commandRunner = &recordingRunner{exitCode: 9}
	_, err := runCLI(t, "set", "work", "--temp", "exit 9")
	require.NoError(t, err)
	ResetGlobalState()
	RootCmd.SetArgs([]string{"exec", "work"})
	_, _ = captureOutput(func() error {
		code = Execute()
		return nil
	})
	assert.Equal(t, 9, code)
}

func TestReportedErrorUnwraps(t *testing.T) {
	err := reported(kerrors.ErrMissingKey)
	assert.True(t, errors.Is(err, kerrors.ErrMissingKey))
	assert.Nil(t, reported(nil))
}
