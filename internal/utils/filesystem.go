package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FindRepoRoot walks up from start to the nearest directory containing .git.
// Returns an empty string if no repository encloses start.
func FindRepoRoot(start string) (string, error) {
	currentDir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	for {
		// .git is a directory in a normal clone and a file in a linked worktree.
		_, err := os.Stat(filepath.Join(currentDir, ".git"))
		if err == nil {
			return currentDir, nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("error checking for .git at %s: %w", currentDir, err)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// GitDir returns the git metadata directory of the work tree at root,
// following the "gitdir:" pointer of a linked worktree.
func GitDir(root string) (string, error) {
	dotGit := filepath.Join(root, ".git")
	info, err := os.Stat(dotGit)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return dotGit, nil
	}

	data, err := os.ReadFile(dotGit)
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(string(data))
	if !strings.HasPrefix(line, "gitdir:") {
		return "", fmt.Errorf("%s does not point to a git directory", dotGit)
	}
	dir := strings.TrimSpace(strings.TrimPrefix(line, "gitdir:"))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return filepath.Clean(dir), nil
}
