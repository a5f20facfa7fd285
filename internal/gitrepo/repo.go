// Package gitrepo drives the git binary for the release flows.
//
// Every primitive either succeeds or returns a *shell.CommandError. Fetch, pull
// and push are retried with exponential backoff when git reports a network
// failure. Commands run synchronously in the repository working directory with
// no timeout, so a hung git process hangs the flow until the context is
// cancelled.
package gitrepo

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cenkalti/backoff/v4"

	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	logger "github.com/PolarWolf314/gitflow/internal/logging"
	"github.com/PolarWolf314/gitflow/internal/shell"
)

// MinGitVersion is the oldest git that ships "git switch".
const MinGitVersion = "2.23.0"

// DefaultRemote is the remote consulted for remote branch checks and pushes.
const DefaultRemote = "origin"

var gitVersionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// Repo runs git commands in a single working copy.
type Repo struct {
	dir    string
	git    string
	remote string
	runner shell.Runner
	log    logger.Logger

	retries    int
	newBackOff func() backoff.BackOff
}

// Option configures a Repo.
type Option func(*Repo)

// WithRunner replaces the command runner. Used by tests.
func WithRunner(r shell.Runner) Option {
	return func(repo *Repo) {
		repo.runner = r
	}
}

// WithRemote sets the remote name used for remote branch checks and pushes.
func WithRemote(remote string) Option {
	return func(repo *Repo) {
		if remote != "" {
			repo.remote = remote
		}
	}
}

// WithGitCommand sets the git executable. Defaults to "git" on PATH.
func WithGitCommand(git string) Option {
	return func(repo *Repo) {
		if git != "" {
			repo.git = git
		}
	}
}

// WithLogger sets the logger that echoes every command.
func WithLogger(l logger.Logger) Option {
	return func(repo *Repo) {
		repo.log = l
	}
}

// New returns a Repo for the working copy at dir.
func New(dir string, opts ...Option) *Repo {
	r := &Repo{
		dir:    dir,
		git:    "git",
		remote: DefaultRemote,
		runner: shell.NewExecRunner(),

		retries:    DefaultNetworkRetries,
		newBackOff: newNetworkBackOff,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dir returns the working directory commands run in.
func (r *Repo) Dir() string {
	return r.dir
}

// Remote returns the configured remote name.
func (r *Repo) Remote() string {
	return r.remote
}

func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	r.log.Commandf("git", "%s", strings.Join(args, " "))
	out, err := r.runner.Run(ctx, r.dir, r.git, args...)
	if err != nil {
		r.log.Debugf("git %s failed: %v", strings.Join(args, " "), err)
	}
	return out, err
}

// Fetch updates remote-tracking refs.
func (r *Repo) Fetch(ctx context.Context) error {
	_, err := r.runNetwork(ctx, "fetch")
	return err
}

// Pull integrates the upstream of the current branch.
func (r *Repo) Pull(ctx context.Context) error {
	_, err := r.runNetwork(ctx, "pull")
	return err
}

// Switch changes the current branch with "git switch", creating a tracking
// branch when only a remote copy exists.
func (r *Repo) Switch(ctx context.Context, branch string) error {
	_, err := r.run(ctx, "switch", branch)
	return err
}

// Checkout changes the current branch with "git checkout".
func (r *Repo) Checkout(ctx context.Context, branch string) error {
	_, err := r.run(ctx, "checkout", branch)
	return err
}

// CreateBranch creates branch at HEAD without switching to it.
func (r *Repo) CreateBranch(ctx context.Context, branch string) error {
	_, err := r.run(ctx, "branch", branch)
	return err
}

// Merge merges branch into the current branch. Conflicts surface as an error.
func (r *Repo) Merge(ctx context.Context, branch string) error {
	_, err := r.run(ctx, "merge", branch)
	return err
}

// Commit stages modified tracked files and commits them with message.
func (r *Repo) Commit(ctx context.Context, message string) error {
	if _, err := r.run(ctx, "add", "--update", "."); err != nil {
		return err
	}
	_, err := r.run(ctx, "commit", "-m", message)
	return err
}

// Tag creates a lightweight tag at HEAD. An existing tag of the same name is an error.
func (r *Repo) Tag(ctx context.Context, name string) error {
	_, err := r.run(ctx, "tag", name)
	return err
}

// PushBranch pushes branch to the remote and sets it as upstream.
func (r *Repo) PushBranch(ctx context.Context, branch string) error {
	_, err := r.runNetwork(ctx, "push", "--set-upstream", r.remote, branch)
	return err
}

// PushTags pushes all tags to the remote.
func (r *Repo) PushTags(ctx context.Context) error {
	_, err := r.runNetwork(ctx, "push", r.remote, "--tags")
	return err
}

// BranchExists reports whether name exists as a local branch, or as a
// remote-tracking branch of the configured remote when remote is true.
func (r *Repo) BranchExists(ctx context.Context, name string, remote bool) (bool, error) {
	ref := "refs/heads/" + name
	if remote {
		ref = "refs/remotes/" + r.remote + "/" + name
	}

	_, err := r.run(ctx, "rev-parse", "--verify", "--quiet", ref)
	if err == nil {
		return true, nil
	}
	// rev-parse --verify --quiet exits 1 without output when the ref is missing.
	if shell.ExitCode(err) == 1 {
		return false, nil
	}
	return false, err
}

// HasUncommittedChanges reports whether tracked files differ from HEAD.
// Untracked files are ignored.
func (r *Repo) HasUncommittedChanges(ctx context.Context) (bool, error) {
	out, err := r.run(ctx, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// LastTagName returns the most recently created tag reachable from any ref.
// The second result is false when the repository has no tags.
func (r *Repo) LastTagName(ctx context.Context) (string, bool, error) {
	sha, err := r.run(ctx, "rev-list", "--tags", "--max-count=1")
	if err != nil {
		return "", false, err
	}
	if sha == "" {
		return "", false, nil
	}

	tag, err := r.run(ctx, "describe", "--tags", sha)
	if err != nil {
		return "", false, err
	}
	if tag == "" {
		return "", false, nil
	}
	return tag, true, nil
}

// ListLocalBranches returns the short names of all local branches.
func (r *Repo) ListLocalBranches(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "branch", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CurrentBranch returns the checked-out branch name.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	return r.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// Root returns the top-level directory of the work tree.
func (r *Repo) Root(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		if shell.ExitCode(err) > 0 {
			return "", fmt.Errorf("%s: %w", r.dir, kerrors.ErrNotGitRepo)
		}
		return "", err
	}
	return out, nil
}

// RemoteURL returns the fetch URL of the configured remote.
func (r *Repo) RemoteURL(ctx context.Context) (string, error) {
	return r.run(ctx, "remote", "get-url", r.remote)
}

// UserEmail returns git's configured user.email, or "" when unset.
func (r *Repo) UserEmail(ctx context.Context) string {
	out, err := r.run(ctx, "config", "user.email")
	if err != nil {
		return ""
	}
	return out
}

// GitVersion returns the M.m.p version of the git binary.
func (r *Repo) GitVersion(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "--version")
	if err != nil {
		return "", err
	}
	v := gitVersionPattern.FindString(out)
	if v == "" {
		return "", fmt.Errorf("cannot read git version from %q", out)
	}
	return v, nil
}

// CheckGitVersion fails with ErrGitTooOld when git is older than MinGitVersion.
func (r *Repo) CheckGitVersion(ctx context.Context) (string, error) {
	current, err := r.GitVersion(ctx)
	if err != nil {
		return "", err
	}

	ok, err := SatisfiesMinimum(current)
	if err != nil {
		return current, err
	}
	if !ok {
		return current, fmt.Errorf("git %s, need at least %s: %w", current, MinGitVersion, kerrors.ErrGitTooOld)
	}
	return current, nil
}

// SatisfiesMinimum reports whether gitVersion is at least MinGitVersion.
func SatisfiesMinimum(gitVersion string) (bool, error) {
	constraint, err := semver.NewConstraint(">= " + MinGitVersion)
	if err != nil {
		return false, err
	}
	v, err := semver.NewVersion(gitVersion)
	if err != nil {
		return false, fmt.Errorf("parsing git version %q: %w", gitVersion, err)
	}
	return constraint.Check(v), nil
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
