// Package shared contains testing utilities shared between integration tests.
// The helpers build real git repositories with a bare origin and run the
// gitflow CLI against them with the real git binary.
package shared

import (
	"bytes"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/gitflow/cmd"
	logger "github.com/PolarWolf314/gitflow/internal/logging"
	"github.com/spf13/cobra"
)

// TestEmail is the user.email configured in every test repository.
const TestEmail = "dev@example.com"

// SetupGitRepository creates a bare origin holding master and develop at
// version, clones it and changes into the clone. The clone's path is returned.
// The test is skipped when git is not installed or -short is set.
func SetupGitRepository(t *testing.T, version string) string {
	t.Helper()

	if testing.Short() {
		t.Skip("integration test needs git")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found on PATH")
	}

	base := t.TempDir()
	t.Setenv("HOME", base)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_MERGE_AUTOEDIT", "no")

	remote := filepath.Join(base, "origin.git")
	seed := filepath.Join(base, "seed")
	work := filepath.Join(base, "work")

	Git(t, base, "init", "--bare", remote)
	Git(t, remote, "symbolic-ref", "HEAD", "refs/heads/master")

	Git(t, base, "init", seed)
	configureIdentity(t, seed)
	WriteManifest(t, seed, version)
	Git(t, seed, "add", ".")
	Git(t, seed, "commit", "-m", "initial commit")
	Git(t, seed, "branch", "-M", "master")
	Git(t, seed, "branch", "develop")
	Git(t, seed, "remote", "add", "origin", remote)
	Git(t, seed, "push", "origin", "master", "develop")

	Git(t, base, "clone", remote, work)
	configureIdentity(t, work)
	Git(t, work, "switch", "develop")

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatalf("Failed to change to work tree: %v", err)
	}
	cmd.ResetGlobalState()
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		cmd.ResetGlobalState()
	})

	return work
}

func configureIdentity(t *testing.T, dir string) {
	t.Helper()
	Git(t, dir, "config", "user.email", TestEmail)
	Git(t, dir, "config", "user.name", "Gitflow Test")
	Git(t, dir, "config", "commit.gpgsign", "false")
	Git(t, dir, "config", "tag.gpgsign", "false")
}

// Git runs git in dir and fails the test on error. The trimmed output is
// returned.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	c := exec.Command("git", args...)
	c.Dir = dir
	out, err := c.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// WriteManifest writes a package.json at version into dir.
func WriteManifest(t *testing.T, dir, version string) {
	t.Helper()
	manifest := "{\n  \"name\": \"app\",\n  \"version\": \"" + version + "\"\n}\n"
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0644); err != nil {
		t.Fatalf("Failed to write package.json: %v", err)
	}
}

// ManifestVersion reads the version of the package.json on the current branch.
func ManifestVersion(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		t.Fatalf("Failed to read package.json: %v", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "\"version\":"); ok {
			return strings.Trim(strings.TrimSpace(rest), "\",")
		}
	}
	t.Fatalf("No version in package.json:\n%s", data)
	return ""
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
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

// CreateTestCLI creates a complete CLI instance running the real git binary.
func CreateTestCLI(args ...string) *cobra.Command {
	cmd.SetRunner(nil)
	cmd.SetLogger(logger.Logger{})

	rootCmd := &cobra.Command{
		Use:              "gitflow",
		Short:            "gitflow - feature, hotfix and release branches for Maven and Webpack projects",
		PersistentPreRun: cmd.InitLogger,
		RunE:             cmd.RunInteractive,
		SilenceErrors:    true,
		SilenceUsage:     true,
	}
	cmd.AddPersistentFlags(rootCmd)
	rootCmd.AddCommand(cmd.Commands()...)
	// A nil slice makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	return rootCmd
}

// RunCLI runs gitflow with args and returns the combined output. Global flag
// state is reset first so runs within one test do not leak into each other.
func RunCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd.ResetGlobalState()
	return CaptureOutput(func() error {
		return CreateTestCLI(args...).Execute()
	})
}
