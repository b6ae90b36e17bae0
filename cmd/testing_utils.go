// Package cmd contains testing utilities shared between command tests.
// This file provides helpers for isolating settings, capturing output, and
// running the command tree with fresh flag state.
package cmd

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thecoblack/edtoken/internal/configs"
)

// testPaths are the locations a test environment points edtoken at.
type testPaths struct {
	dir       string
	profiles  string
	cacheDir  string
	auditPath string
}

// setupTestEnvironment points settings and EDTOKEN_* variables at a temp
// directory and resets command state when the test ends.
func setupTestEnvironment(t *testing.T) *testPaths {
	t.Helper()
	dir := t.TempDir()

	originalSettings := configs.UserEdtokenSettings
	configs.UserEdtokenSettings = &configs.UserSettings{
		ConfigDir: filepath.Join(dir, "config"),
		DataDir:   filepath.Join(dir, "data"),
		CacheDir:  filepath.Join(dir, "cache"),
		Username:  "testuser",
	}

	paths := &testPaths{
		dir:       dir,
		profiles:  filepath.Join(dir, "data", "user_data.json"),
		cacheDir:  filepath.Join(dir, "cache"),
		auditPath: filepath.Join(dir, "data", "audit.jsonl"),
	}
	t.Setenv("EDTOKEN_PROFILES", paths.profiles)
	t.Setenv("EDTOKEN_CACHE_DIR", paths.cacheDir)
	t.Setenv("EDTOKEN_SHELL", "/bin/sh")
	t.Setenv("EDTOKEN_AUDIT_LOG", "true")
	t.Setenv("EDTOKEN_AUDIT_PATH", paths.auditPath)
	t.Setenv("NO_COLOR", "1")

	originalSecret := readSecret
	originalRunner := commandRunner

	t.Cleanup(func() {
		configs.UserEdtokenSettings = originalSettings
		readSecret = originalSecret
		commandRunner = originalRunner
		ResetGlobalState()
	})

	ResetGlobalState()
	return paths
}

// ResetGlobalState resets flag variables and the Changed markers of every
// flag in the tree.
func ResetGlobalState() {
	resetFlags(RootCmd)
	verbose = false
	debug = false
	noColor = false
	showProfile = false
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// stubSecrets makes readSecret return answers in order.
func stubSecrets(t *testing.T, answers ...string) *[]string {
	t.Helper()
	var prompts []string
	readSecret = func(prompt string) (string, error) {
		prompts = append(prompts, prompt)
		if len(answers) == 0 {
			t.Fatalf("unexpected prompt %q", prompt)
		}
		answer := answers[0]
		answers = answers[1:]
		return answer, nil
	}
	return &prompts
}

// recordingRunner stands in for the shell.
type recordingRunner struct {
	commands []string
	exitCode int
}

func (r *recordingRunner) Run(ctx context.Context, shell, command string) (int, error) {
	r.commands = append(r.commands, command)
	return r.exitCode, nil
}

// runCLI runs the root command with args and returns everything written to
// stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ResetGlobalState()
	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}
	RootCmd.SetArgs(args)
	return captureOutput(func() error {
		return RootCmd.Execute()
	})
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}
