package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/gitflow/internal/audit"
	"github.com/PolarWolf314/gitflow/internal/flow"
	"github.com/PolarWolf314/gitflow/internal/project"
)

// PrepareResult is what the CLI shows and asks about before a flow runs.
type PrepareResult struct {
	Root       string
	ConfigPath string

	// ProjectType is the configured type, or "" when the user must pick one.
	ProjectType project.Type

	Remote       string
	PushBranches bool
	PushTags     bool

	// Branches are the local branches, offered as release sources.
	Branches []string

	GitVersion string
}

// Prepare resolves configuration and checks git without changing anything.
//
// Returns ErrNotGitRepo outside a work tree and ErrGitTooOld when git cannot
// run the flows.
func Prepare(ctx context.Context, opts Options) (*PrepareResult, error) {
	s, err := openSession(opts, false)
	if err != nil {
		return nil, err
	}

	gitVersion, err := s.repo.CheckGitVersion(ctx)
	if err != nil {
		return nil, err
	}

	typ, err := s.cfg.ProjectType()
	if err != nil {
		return nil, err
	}

	branches, err := s.repo.ListLocalBranches(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}

	return &PrepareResult{
		Root:         s.settings.RootPath,
		ConfigPath:   s.settings.ConfigPath,
		ProjectType:  typ,
		Remote:       s.cfg.Git.Remote,
		PushBranches: s.cfg.Git.PushBranches,
		PushTags:     s.cfg.Git.PushTags,
		Branches:     branches,
		GitVersion:   gitVersion,
	}, nil
}

// RunOptions configures the run workflow.
type RunOptions struct {
	Options

	Request flow.Request

	// Verify builds the project before the flow starts.
	Verify bool
}

// RunResult contains the outcome of a flow run.
type RunResult struct {
	*flow.Result

	ProjectType project.Type
	RunID       string

	// AuditErr is set when the run could not be recorded. The flow itself succeeded.
	AuditErr error
}

// Run executes one flow and records it in the history.
//
// Prerequisite failures match errors.IsPrerequisiteMissing, malformed versions
// match errors.IsParseError and failed git or mvn invocations match
// errors.IsDriverFailure. Nothing is rolled back; re-running the same flow
// after fixing the cause picks up where it stopped.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	s, err := openSession(opts.Options, true)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.CheckGitVersion(ctx); err != nil {
		return nil, err
	}

	engine := s.engine(opts.Clock)
	if opts.Verify {
		if err := engine.Verify(ctx); err != nil {
			return nil, fmt.Errorf("project verification failed: %w", err)
		}
	}

	entry := audit.NewEntry(string(opts.Request.Kind), s.user(ctx))
	entry.Project = string(s.projectType)
	entry.Source = opts.Request.SourceBranch

	res, runErr := engine.Run(ctx, opts.Request)
	if runErr != nil {
		entry.Status = audit.StatusFailed
		entry.Error = runErr.Error()
	} else {
		entry.Status = audit.StatusOK
		entry.Branch = res.Branch
		entry.Created = res.Created
		entry.Version = res.Version
		entry.Tag = res.Tag
		entry.NextBranch = res.NextBranch
		entry.Pushed = res.Pushed
	}

	auditErr := audit.Log(s.settings.StatePath, entry)
	if auditErr != nil {
		s.log.Warnf("could not record flow history: %v", auditErr)
	}
	if runErr != nil {
		return nil, runErr
	}

	return &RunResult{
		Result:      res,
		ProjectType: s.projectType,
		RunID:       entry.RunID,
		AuditErr:    auditErr,
	}, nil
}
