package workflows

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/PolarWolf314/gitflow/internal/configs"
	"github.com/PolarWolf314/gitflow/internal/flow"
	"github.com/PolarWolf314/gitflow/internal/gitrepo"
	logger "github.com/PolarWolf314/gitflow/internal/logging"
	"github.com/PolarWolf314/gitflow/internal/project"
	"github.com/PolarWolf314/gitflow/internal/shell"
	"github.com/PolarWolf314/gitflow/internal/utils"
)

// Options are shared by every workflow that touches the repository.
type Options struct {
	// Dir is any directory inside the work tree. Defaults to the working directory.
	Dir string

	// ProjectType overrides [project] type from .gitflow.toml.
	ProjectType string

	// PushBranches and PushTags override the [git] push settings when non-nil.
	PushBranches *bool
	PushTags     *bool

	Logger logger.Logger

	// Runner replaces the process runner for git and mvn. Used by tests.
	Runner shell.Runner

	// Clock replaces the time source for tag dates. Used by tests.
	Clock func() time.Time
}

// session is everything a workflow needs, resolved once per invocation.
type session struct {
	settings    *configs.ProjectSettings
	cfg         *configs.Config
	repo        *gitrepo.Repo
	projectType project.Type
	adapter     project.Adapter
	log         logger.Logger
}

// openSession resolves the repository and its configuration. When
// needProject is set, the project adapter is built as well.
func openSession(opts Options, needProject bool) (*session, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	settings, err := configs.InitProjectSettings(dir)
	if err != nil {
		return nil, err
	}

	cfg, unknown, err := configs.Load(settings.ConfigPath)
	if err != nil {
		return nil, err
	}
	for _, key := range unknown {
		opts.Logger.Warnf("ignoring unknown key %q in %s", key, configs.FileName)
	}
	if opts.ProjectType != "" {
		cfg.Project.Type = opts.ProjectType
	}
	if opts.PushBranches != nil {
		cfg.Git.PushBranches = *opts.PushBranches
	}
	if opts.PushTags != nil {
		cfg.Git.PushTags = *opts.PushTags
	}
	opts.Logger.Debugf("repository root %s, config %+v", settings.RootPath, *cfg)

	repoOpts := []gitrepo.Option{
		gitrepo.WithLogger(opts.Logger),
		gitrepo.WithRemote(cfg.Git.Remote),
		gitrepo.WithGitCommand(cfg.Git.Command),
		gitrepo.WithNetworkRetries(cfg.Git.NetworkRetries),
	}
	if opts.Runner != nil {
		repoOpts = append(repoOpts, gitrepo.WithRunner(opts.Runner))
	}

	s := &session{
		settings: settings,
		cfg:      cfg,
		repo:     gitrepo.New(settings.RootPath, repoOpts...),
		log:      opts.Logger,
	}

	if needProject {
		t, err := cfg.RequireProjectType()
		if err != nil {
			return nil, err
		}
		adapter, err := project.New(t, project.Config{
			Dir:          settings.RootPath,
			Manifest:     cfg.Project.Manifest,
			MavenCommand: cfg.Project.MavenCommand,
			Runner:       opts.Runner,
			Logger:       opts.Logger,
		})
		if err != nil {
			return nil, err
		}
		s.projectType = t
		s.adapter = adapter
	}
	return s, nil
}

func (s *session) engine(clock func() time.Time) *flow.Engine {
	return flow.New(s.repo, s.adapter,
		flow.WithLogger(s.log),
		flow.WithClock(clock),
		flow.WithPush(s.cfg.Git.PushBranches, s.cfg.Git.PushTags),
	)
}

// user identifies who ran a flow: git's user.email, else the OS username.
func (s *session) user(ctx context.Context) string {
	if email := s.repo.UserEmail(ctx); email != "" {
		return email
	}
	if name, err := utils.GetUsername(); err == nil {
		return name
	}
	return "unknown"
}
