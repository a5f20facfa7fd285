package configs

import (
	"fmt"
	"path/filepath"

	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	"github.com/PolarWolf314/gitflow/internal/utils"
)

// ProjectSettings locates the files gitflow reads and writes for one repository.
type ProjectSettings struct {
	// RootPath is the top of the work tree.
	RootPath string

	// ConfigPath is the .gitflow.toml at RootPath.
	ConfigPath string

	// StatePath is gitflow's directory inside the git metadata directory.
	// Files there never show up as working-tree changes.
	StatePath string
}

// InitProjectSettings finds the repository enclosing dir.
func InitProjectSettings(dir string) (*ProjectSettings, error) {
	root, err := utils.FindRepoRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("error getting repository root: %w", err)
	}
	if root == "" {
		return nil, fmt.Errorf("%s: %w", dir, kerrors.ErrNotGitRepo)
	}

	gitDir, err := utils.GitDir(root)
	if err != nil {
		return nil, fmt.Errorf("error resolving git directory: %w", err)
	}

	return &ProjectSettings{
		RootPath:   root,
		ConfigPath: filepath.Join(root, FileName),
		StatePath:  filepath.Join(gitDir, "gitflow"),
	}, nil
}
