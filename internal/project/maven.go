package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	logger "github.com/PolarWolf314/gitflow/internal/logging"
	"github.com/PolarWolf314/gitflow/internal/shell"
)

// Descriptor is the Maven build file.
const Descriptor = "pom.xml"

// MavenProject drives the versions and exec plugins of a Maven build.
type MavenProject struct {
	dir    string
	mvn    string
	runner shell.Runner
	log    logger.Logger
}

// NewMaven returns a Maven adapter for cfg.Dir.
func NewMaven(cfg Config) *MavenProject {
	m := &MavenProject{
		dir:    cfg.Dir,
		mvn:    cfg.MavenCommand,
		runner: cfg.Runner,
		log:    cfg.Logger,
	}
	if m.mvn == "" {
		m.mvn = "mvn"
	}
	if m.runner == nil {
		m.runner = shell.NewExecRunner()
	}
	return m
}

func (m *MavenProject) Type() Type {
	return Maven
}

func (m *MavenProject) run(ctx context.Context, args ...string) (string, error) {
	m.log.Commandf("maven", "%s", strings.Join(args, " "))
	return m.runner.Run(ctx, m.dir, m.mvn, args...)
}

// Verify checks that mvn is installed, then builds the project without tests
// and cleans up after itself.
func (m *MavenProject) Verify(ctx context.Context) error {
	if _, err := os.Stat(filepath.Join(m.dir, Descriptor)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s in %s: %w", Descriptor, m.dir, kerrors.ErrManifestNotFound)
		}
		return err
	}

	out, err := m.run(ctx, "--version")
	if err != nil {
		return fmt.Errorf("maven is not available: %w", err)
	}
	m.log.Debugf("maven version info:\n%s", out)

	if _, err := m.run(ctx, "clean", "package", "-DskipTests", "-U"); err != nil {
		return fmt.Errorf("maven build failed: %w", err)
	}
	if _, err := m.run(ctx, "clean"); err != nil {
		return fmt.Errorf("maven clean failed: %w", err)
	}
	return nil
}

// CurrentVersion evaluates ${project.version}. A failing evaluation is
// reported as an absent version, not an error.
func (m *MavenProject) CurrentVersion(ctx context.Context) (string, bool, error) {
	out, err := m.run(ctx,
		"-q",
		"-Dexec.executable=echo",
		"-Dexec.args=${project.version}",
		"--non-recursive",
		"exec:exec",
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		m.log.Warnf("could not read the maven project version: %v", err)
		return "", false, nil
	}

	v := lastLine(out)
	if v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// SetVersion rewrites the project version without leaving backup poms.
func (m *MavenProject) SetVersion(ctx context.Context, v string) error {
	m.log.Infof("updating maven project version to %s", v)
	_, err := m.run(ctx, "versions:set", "-DnewVersion="+v, "-DgenerateBackupPoms=false")
	return err
}

// SetProperty rewrites a version property such as a dependency version.
func (m *MavenProject) SetProperty(ctx context.Context, name, value string) error {
	m.log.Infof("updating maven property %s to %s", name, value)
	_, err := m.run(ctx,
		"versions:set-property",
		"-Dproperty="+name,
		"-DnewVersion="+value,
		"-DgenerateBackupPoms=false",
	)
	return err
}

// lastLine returns the last non-blank line; mvn may print download noise first.
func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
