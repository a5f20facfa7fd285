// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test repositories,
// capturing output and running the CLI against a mocked git.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	logger "github.com/PolarWolf314/gitflow/internal/logging"
	"github.com/PolarWolf314/gitflow/internal/shell"
	"github.com/spf13/cobra"
)

// setupTestRepository creates a work tree with a .git directory, changes into
// it and returns its path. When version is non-empty a package.json at that
// version is written.
func setupTestRepository(t *testing.T, version string) string {
	t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	tempDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tempDir, ".git"), 0755); err != nil {
		t.Fatalf("Failed to create .git: %v", err)
	}
	if version != "" {
		manifest := "{\n  \"name\": \"app\",\n  \"version\": \"" + version + "\"\n}\n"
		if err := os.WriteFile(filepath.Join(tempDir, "package.json"), []byte(manifest), 0644); err != nil {
			t.Fatalf("Failed to write package.json: %v", err)
		}
	}

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	ResetGlobalState()
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		ResetGlobalState()
	})
	return tempDir
}

// newMockGit answers the commands every flow issues. Everything else succeeds
// with no output, so branches exist and the tree is clean.
func newMockGit() *shell.MockRunner {
	r := shell.NewMockRunner()
	r.OnCommand("git", "--version").Return("git version 2.43.0", nil)
	r.OnCommand("git", "config", "user.email").Return("dev@example.com", nil)
	return r
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

// createTestCLI creates a complete CLI instance for testing with the given arguments.
func createTestCLI(args ...string) *cobra.Command {
	Logger = logger.Logger{}

	rootCmd := &cobra.Command{
		Use:              "gitflow",
		Short:            "gitflow - feature, hotfix and release branches for Maven and Webpack projects",
		PersistentPreRun: InitLogger,
		RunE:             RunInteractive,
		SilenceErrors:    true,
		SilenceUsage:     true,
	}
	AddPersistentFlags(rootCmd)
	rootCmd.AddCommand(Commands()...)
	// A nil slice makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	return rootCmd
}

// runCLI runs gitflow with args against runner and returns the combined output.
func runCLI(runner shell.Runner, args ...string) (string, error) {
	SetRunner(runner)
	return captureOutput(func() error {
		return createTestCLI(args...).Execute()
	})
}
