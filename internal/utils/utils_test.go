package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindRepoRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "services", "api")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindRepoRoot(nested)
	if err != nil {
		t.Fatalf("FindRepoRoot returned error: %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindRepoRoot = %q, expected %q", got, want)
	}
}

func TestFindRepoRootOutsideRepository(t *testing.T) {
	got, err := FindRepoRoot(t.TempDir())
	if err != nil {
		t.Fatalf("FindRepoRoot returned error: %v", err)
	}
	// The temp dir may itself live inside a checkout on some machines.
	if got != "" {
		if _, err := os.Stat(filepath.Join(got, ".git")); err != nil {
			t.Errorf("FindRepoRoot returned %q which has no .git", got)
		}
	}
}

func TestGitDir(t *testing.T) {
	t.Run("Directory", func(t *testing.T) {
		root := t.TempDir()
		if err := os.Mkdir(filepath.Join(root, ".git"), 0755); err != nil {
			t.Fatal(err)
		}
		got, err := GitDir(root)
		if err != nil || got != filepath.Join(root, ".git") {
			t.Errorf("GitDir = %q, %v", got, err)
		}
	})

	t.Run("Worktree", func(t *testing.T) {
		root := t.TempDir()
		content := "gitdir: ../main/.git/worktrees/feature\n"
		if err := os.WriteFile(filepath.Join(root, ".git"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		got, err := GitDir(root)
		if err != nil {
			t.Fatalf("GitDir returned error: %v", err)
		}
		want := filepath.Clean(filepath.Join(root, "..", "main", ".git", "worktrees", "feature"))
		if got != want {
			t.Errorf("GitDir = %q, expected %q", got, want)
		}
	})

	t.Run("Garbage", func(t *testing.T) {
		root := t.TempDir()
		if err := os.WriteFile(filepath.Join(root, ".git"), []byte("nonsense"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := GitDir(root); err == nil {
			t.Error("expected error for a .git file without gitdir")
		}
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"feature/1.2.0", 20, "feature/1.2.0"},
		{"feature/1.2.0", 8, "feature…"},
		{"abc", 1, "…"},
		{"abc", 0, "abc"},
	}
	for _, tc := range tests {
		if got := Truncate(tc.in, tc.max); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, expected %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestIsOutputTerminalWithPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	original := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = original }()

	if IsOutputTerminal() {
		t.Error("IsOutputTerminal() = true for a pipe")
	}
}

func TestFormatBranches(t *testing.T) {
	got := FormatBranches([]string{"develop", "feature/1.2.0"})
	want := "\n    - develop\n    - feature/1.2.0\n"
	if got != want {
		t.Errorf("FormatBranches = %q, expected %q", got, want)
	}
}
