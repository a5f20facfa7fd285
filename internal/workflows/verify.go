package workflows

import (
	"context"

	"github.com/PolarWolf314/gitflow/internal/project"
)

// VerifyResult contains the outcome of a verify operation.
type VerifyResult struct {
	Root        string
	GitVersion  string
	ProjectType project.Type
}

// Verify checks git and builds the project without running a flow.
//
// Returns ErrGitTooOld, ErrManifestNotFound, or a driver failure when the
// build breaks.
func Verify(ctx context.Context, opts Options) (*VerifyResult, error) {
	s, err := openSession(opts, true)
	if err != nil {
		return nil, err
	}

	gitVersion, err := s.repo.CheckGitVersion(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.adapter.Verify(ctx); err != nil {
		return nil, err
	}

	return &VerifyResult{
		Root:        s.settings.RootPath,
		GitVersion:  gitVersion,
		ProjectType: s.projectType,
	}, nil
}
