// Package flow implements the five release flows.
//
// Every flow is a linear script of blocking calls against one working copy.
// A flow stops at the first failing step and returns the error; branches
// created and commits made before that point are left in place. The flows are
// safe to re-run from the top because target branches are reached through an
// idempotent sync that switches to an existing branch instead of creating it
// again.
package flow

import (
	"context"
	"fmt"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	logger "github.com/PolarWolf314/gitflow/internal/logging"
)

// Repository is the version-control surface the flows drive.
type Repository interface {
	Fetch(ctx context.Context) error
	Pull(ctx context.Context) error
	Switch(ctx context.Context, branch string) error
	Checkout(ctx context.Context, branch string) error
	CreateBranch(ctx context.Context, branch string) error
	Merge(ctx context.Context, branch string) error
	Commit(ctx context.Context, message string) error
	Tag(ctx context.Context, name string) error
	PushBranch(ctx context.Context, branch string) error
	PushTags(ctx context.Context) error
	BranchExists(ctx context.Context, name string, remote bool) (bool, error)
	HasUncommittedChanges(ctx context.Context) (bool, error)
	LastTagName(ctx context.Context) (string, bool, error)
	ListLocalBranches(ctx context.Context) ([]string, error)
}

// Project is the version metadata the flows read and write.
type Project interface {
	Verify(ctx context.Context) error
	CurrentVersion(ctx context.Context) (string, bool, error)
	SetVersion(ctx context.Context, v string) error
}

// Kind names a flow.
type Kind string

const (
	KindFeature         Kind = "feature"
	KindHotfix          Kind = "hotfix"
	KindReleaseTest     Kind = "release-test"
	KindReleaseSpecific Kind = "release-specific"
	KindReleaseHotfix   Kind = "release-hotfix"
)

// Kinds lists every flow in menu order.
func Kinds() []Kind {
	return []Kind{KindFeature, KindHotfix, KindReleaseTest, KindReleaseSpecific, KindReleaseHotfix}
}

// IsRelease reports whether the flow produces a tag.
func (k Kind) IsRelease() bool {
	return k == KindReleaseTest || k == KindReleaseSpecific || k == KindReleaseHotfix
}

// ParseKind converts a flow name into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, kerrors.ErrUnknownFlow)
}

// SpecificReleaseWarning is attached to every release-specific result.
const SpecificReleaseWarning = "master now carries the release; merge master into your other feature and test branches to keep them up to date"

// Result describes what a flow produced.
type Result struct {
	Kind Kind

	// Branch is the branch checked out when the flow finished.
	Branch string

	// Created is true when the flow created Branch rather than reaching an existing one.
	Created bool

	// Version is the version the flow wrote, or the feature version it found.
	Version string

	Tag        string
	NextBranch string

	// Pushed lists the refs sent to the remote, tags included as "--tags".
	Pushed []string

	Warning string
}

// Request selects a flow for Run.
type Request struct {
	Kind Kind

	// SourceBranch is the branch released by KindReleaseSpecific.
	SourceBranch string
}

// Engine runs flows against one repository and one project.
type Engine struct {
	repo       Repository
	project    Project
	log        logger.Logger
	now        func() time.Time
	pushBranch bool
	pushTags   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for progress messages.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithClock sets the time source for tag dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithPush makes flows push the branches they updated and, for releases, all tags.
func WithPush(branches, tags bool) Option {
	return func(e *Engine) {
		e.pushBranch = branches
		e.pushTags = tags
	}
}

// New returns an Engine. Push is disabled unless WithPush is given.
func New(repo Repository, project Project, opts ...Option) *Engine {
	e := &Engine{
		repo:    repo,
		project: project,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Verify checks that the project builds and its descriptor exists.
func (e *Engine) Verify(ctx context.Context) error {
	e.log.Infof("verifying project")
	return e.project.Verify(ctx)
}

// Run dispatches req to the matching flow.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	switch req.Kind {
	case KindFeature:
		return e.Feature(ctx)
	case KindHotfix:
		return e.Hotfix(ctx)
	case KindReleaseTest:
		return e.ReleaseTest(ctx)
	case KindReleaseSpecific:
		return e.ReleaseSpecific(ctx, req.SourceBranch)
	case KindReleaseHotfix:
		return e.ReleaseHotfix(ctx)
	}
	return nil, fmt.Errorf("%q: %w", req.Kind, kerrors.ErrUnknownFlow)
}
