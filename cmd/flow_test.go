package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/gitflow/internal/configs"
	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	"github.com/PolarWolf314/gitflow/internal/shell"
	"github.com/PolarWolf314/gitflow/internal/utils"
)

func missingRef() error {
	return &shell.CommandError{Command: "git", ExitCode: 1}
}

func TestFeatureCommand(t *testing.T) {
	setupTestRepository(t, "1.3.0-SNAPSHOT")
	git := newMockGit()
	git.OnCommand("git", "rev-parse", "--verify", "--quiet", "refs/remotes/origin/feature/1.3.0").Return("", missingRef())
	git.OnCommand("git", "rev-parse", "--verify", "--quiet", "refs/heads/feature/1.3.0").Return("", missingRef())

	output, err := runCLI(git, "feature", "--project", "webpack", "--yes")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	for _, want := range []string{"Feature flow completed", "feature/1.3.0", "(created)", "Webpack"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output: %s", want, output)
		}
	}
	if !git.WasCalled("git", "branch", "feature/1.3.0") {
		t.Errorf("Expected the feature branch to be created, got %v", git.Lines())
	}
}

func TestReleaseTestCommand(t *testing.T) {
	setupTestRepository(t, "1.1.0-SNAPSHOT")
	git := newMockGit()
	git.OnCommand("git", "rev-list", "--tags", "--max-count=1").Return("abc123", nil)
	git.OnCommand("git", "describe", "--tags", "abc123").Return("v1.0.0.RELEASE.20240101", nil)
	git.OnCommand("git", "status", "--porcelain", "--untracked-files=no").Return(" M package.json", nil)

	output, err := runCLI(git, "release", "test", "--project", "webpack", "--yes", "--push", "--push-tags")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, "Test release flow completed") || !strings.Contains(output, "v1.1.0.RELEASE.") {
		t.Errorf("Expected release summary in output: %s", output)
	}
	for _, branch := range []string{"master", "develop", "feature/1.2.0"} {
		if !git.WasCalled("git", "push", "--set-upstream", "origin", branch) {
			t.Errorf("Expected %s to be pushed, got %v", branch, git.Lines())
		}
	}
	if !git.WasCalled("git", "push", "origin", "--tags") {
		t.Errorf("Expected tags to be pushed, got %v", git.Lines())
	}
}

func TestReleaseSpecificCommand(t *testing.T) {
	setupTestRepository(t, "1.4.0-SNAPSHOT")
	git := newMockGit()

	output, err := runCLI(git, "release", "specific", "feature/1.4.0", "--project", "webpack", "--yes")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Source branch") || !strings.Contains(output, "feature/1.4.0") {
		t.Errorf("Expected the source branch in the parameter table: %s", output)
	}
	if !git.WasCalled("git", "merge", "feature/1.4.0") {
		t.Errorf("Expected feature/1.4.0 to be merged, got %v", git.Lines())
	}
	if !strings.Contains(output, "v1.4.0.RELEASE.") {
		t.Errorf("Expected the release tag in output: %s", output)
	}
}

func TestReleaseSpecificNeedsBranch(t *testing.T) {
	setupTestRepository(t, "1.4.0-SNAPSHOT")
	git := newMockGit()

	_, err := runCLI(git, "release", "specific", "--project", "webpack", "--yes")
	if err == nil {
		t.Fatal("Expected an argument error")
	}
	if len(git.Calls) != 0 {
		t.Errorf("Expected no git calls, got %v", git.Lines())
	}
}

func TestFlowWithoutProjectType(t *testing.T) {
	setupTestRepository(t, "1.3.0-SNAPSHOT")
	git := newMockGit()

	output, err := runCLI(git, "hotfix", "--yes")
	if !errors.Is(err, kerrors.ErrUnknownProjectType) {
		t.Fatalf("Expected ErrUnknownProjectType, got %v", err)
	}
	if !IsReported(err) || ExitCode(err) != 1 {
		t.Errorf("Expected a reported error with exit code 1")
	}
	if !strings.Contains(output, "--project maven") {
		t.Errorf("Expected a hint about --project: %s", output)
	}
	if git.WasCalled("git", "fetch") {
		t.Error("No flow step should run without a project type")
	}
}

func TestFlowFailureIsReported(t *testing.T) {
	setupTestRepository(t, "1.3.0-SNAPSHOT")
	git := newMockGit()
	git.OnCommand("git", "rev-list", "--tags", "--max-count=1").Return("", nil)

	output, err := runCLI(git, "hotfix", "--project", "webpack", "--yes")
	if !errors.Is(err, kerrors.ErrNoReleaseTag) {
		t.Fatalf("Expected ErrNoReleaseTag, got %v", err)
	}
	if !strings.Contains(output, "✗") || !strings.Contains(output, "gitflow release test") {
		t.Errorf("Expected error line with hint: %s", output)
	}
}

func TestPushFlagOverridesConfig(t *testing.T) {
	dir := setupTestRepository(t, "1.3.0-SNAPSHOT")
	cfg := configs.Default()
	cfg.Project.Type = "webpack"
	cfg.Git.PushBranches = true
	if err := configs.Save(filepath.Join(dir, configs.FileName), cfg); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	t.Run("config pushes", func(t *testing.T) {
		git := newMockGit()
		if output, err := runCLI(git, "feature", "--yes"); err != nil {
			t.Fatalf("Command failed: %v\nOutput: %s", err, output)
		}
		if !git.WasCalled("git", "push") {
			t.Errorf("Expected a push from the config, got %v", git.Lines())
		}
	})

	t.Run("flag disables push", func(t *testing.T) {
		ResetGlobalState()
		git := newMockGit()
		if output, err := runCLI(git, "feature", "--yes", "--push=false"); err != nil {
			t.Fatalf("Command failed: %v\nOutput: %s", err, output)
		}
		if git.WasCalled("git", "push") {
			t.Errorf("Expected no push, got %v", git.Lines())
		}
	})
}

func TestFlowOutsideRepository(t *testing.T) {
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(originalWd)
		ResetGlobalState()
	})

	output, err := runCLI(newMockGit(), "feature", "--project", "webpack", "--yes")
	if !errors.Is(err, kerrors.ErrNotGitRepo) {
		t.Fatalf("Expected ErrNotGitRepo, got %v", err)
	}
	if !strings.Contains(output, "git work tree") {
		t.Errorf("Expected a hint in output: %s", output)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"aborted", reported(kerrors.ErrAborted), 0},
		{"prerequisite", kerrors.ErrBranchNotFound, 1},
		{"driver failure", &shell.CommandError{Command: "git", ExitCode: 128}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatErrorHints(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"driver failure names the command", &shell.CommandError{Command: "git", Args: []string{"merge", "test/1.1.0"}, Output: "conflict", ExitCode: 1}, "git merge test/1.1.0"},
		{"prerequisite", kerrors.ErrBranchNotFound, "re-run the flow"},
		{"too old git", kerrors.ErrGitTooOld, "upgrade git"},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatError(tt.err)
			if !strings.Contains(got, tt.want) {
				t.Errorf("formatError() = %q, expected it to contain %q", got, tt.want)
			}
			if firstLine := strings.SplitN(got, "\n", 2)[0]; !strings.Contains(firstLine, "✗") {
				t.Errorf("Expected the first line to carry ✗: %q", got)
			}
		})
	}
}

func TestPromptsNeedTerminal(t *testing.T) {
	if utils.IsTerminal() {
		t.Skip("stdin is a terminal")
	}

	tests := []struct {
		name string
		args []string
	}{
		{"interactive mode", nil},
		{"confirmation gate", []string{"feature", "--project", "webpack"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestRepository(t, "1.3.0-SNAPSHOT")
			git := newMockGit()

			output, err := runCLI(git, tt.args...)
			if !errors.Is(err, kerrors.ErrNotInteractive) {
				t.Fatalf("Expected ErrNotInteractive, got %v\nOutput: %s", err, output)
			}
			if git.WasCalled("git", "switch") {
				t.Errorf("Nothing should change without confirmation, got %v", git.Lines())
			}
		})
	}
}
