package workflows

import (
	"context"
	"fmt"

	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	"github.com/PolarWolf314/gitflow/internal/project"
)

// SetPropertyOptions configures the maven set-property workflow.
type SetPropertyOptions struct {
	Options

	Name  string
	Value string
}

// SetProperty rewrites a version property in the Maven build. Nothing is
// committed. Fails when the repository is configured as another project type.
func SetProperty(ctx context.Context, opts SetPropertyOptions) error {
	if opts.Name == "" || opts.Value == "" {
		return fmt.Errorf("property name and value are required")
	}

	s, err := openSession(opts.Options, false)
	if err != nil {
		return err
	}
	t, err := s.cfg.ProjectType()
	if err != nil {
		return err
	}
	if t != "" && t != project.Maven {
		return fmt.Errorf("set-property needs a maven project, this one is %s: %w", t, kerrors.ErrUnknownProjectType)
	}

	mvn := project.NewMaven(project.Config{
		Dir:          s.settings.RootPath,
		MavenCommand: s.cfg.Project.MavenCommand,
		Runner:       opts.Runner,
		Logger:       opts.Logger,
	})
	return mvn.SetProperty(ctx, opts.Name, opts.Value)
}
