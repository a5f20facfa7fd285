package flow

import (
	"context"
	"fmt"
	"sort"
	"strings"

	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	"github.com/PolarWolf314/gitflow/internal/naming"
	"github.com/PolarWolf314/gitflow/internal/utils"
	"github.com/PolarWolf314/gitflow/internal/version"
)

var (
	develop = naming.Develop.Prefix()
	master  = naming.Master.Prefix()
)

// Feature ensures the feature branch for the current snapshot version of
// develop exists and is checked out. The version is not bumped.
func (e *Engine) Feature(ctx context.Context) (*Result, error) {
	if err := e.updateBranch(ctx, develop); err != nil {
		return nil, err
	}

	raw, ok, err := e.project.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		raw = version.DefaultFeature.String()
		e.log.Infof("no project version found, using %s", raw)
	}

	v, err := version.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !v.IsSnapshot() {
		return nil, fmt.Errorf("develop is at %s: %w", raw, kerrors.ErrNotSnapshot)
	}

	target := naming.Branch(naming.Feature, v)
	created, err := e.syncBranch(ctx, target, func(ctx context.Context) error {
		return e.setVersionAndCommit(ctx, raw, prefixFeature, v.Number())
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Kind: KindFeature, Branch: target, Created: created, Version: v.String()}
	return res, e.publish(ctx, res, target)
}

// Hotfix ensures the hotfix branch for the patch after the last release exists
// and is checked out.
func (e *Engine) Hotfix(ctx context.Context) (*Result, error) {
	if err := e.updateBranch(ctx, master); err != nil {
		return nil, err
	}

	last, err := e.lastRelease(ctx)
	if err != nil {
		return nil, err
	}

	next := last.BumpPatch().WithQualifier(version.QualifierSnapshot)
	target := naming.Branch(naming.Hotfix, next)
	created, err := e.syncBranch(ctx, target, func(ctx context.Context) error {
		return e.setVersionAndCommit(ctx, next.String(), prefixHotfix, next.Number())
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Kind: KindHotfix, Branch: target, Created: created, Version: next.String()}
	return res, e.publish(ctx, res, target)
}

// ReleaseTest releases the test branch of the next minor version: it is merged
// into master, tagged, and develop moves on to a fresh feature branch.
func (e *Engine) ReleaseTest(ctx context.Context) (*Result, error) {
	if err := e.updateBranch(ctx, master); err != nil {
		return nil, err
	}

	candidate := version.DefaultRelease
	tag, ok, err := e.repo.LastTagName(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		last, err := version.ParseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("last tag: %w", err)
		}
		candidate = last.BumpMinorResetPatch().WithQualifier(version.QualifierNone)
	} else {
		e.log.Infof("no release tag found, releasing %s", candidate)
	}

	source := naming.Branch(naming.Test, candidate)
	if err := e.enterExisting(ctx, source); err != nil {
		return nil, err
	}
	if err := e.mergeInto(ctx, master, source, true); err != nil {
		return nil, err
	}

	res := &Result{Kind: KindReleaseTest}
	if err := e.release(ctx, res, candidate); err != nil {
		return nil, err
	}

	nextFeature := candidate.BumpMinorResetPatch().WithQualifier(version.QualifierSnapshot)
	if err := e.setVersionAndCommit(ctx, nextFeature.String(), prefixBackTo, nextFeature.String()); err != nil {
		return nil, err
	}
	if err := e.mergeInto(ctx, develop, master, false); err != nil {
		return nil, err
	}

	// The next feature branch is always new, so it skips the existence checks.
	nextBranch := naming.Branch(naming.Feature, nextFeature)
	if err := e.repo.CreateBranch(ctx, nextBranch); err != nil {
		return nil, err
	}
	if err := e.repo.Checkout(ctx, nextBranch); err != nil {
		return nil, err
	}

	res.Branch = nextBranch
	res.Created = true
	res.NextBranch = nextBranch
	return res, e.publish(ctx, res, master, develop, nextBranch)
}

// ReleaseSpecific releases the snapshot version found on source. Nothing is
// merged back; the result carries a reminder to do so.
func (e *Engine) ReleaseSpecific(ctx context.Context, source string) (*Result, error) {
	if source == "" {
		return nil, e.missingSource(ctx)
	}
	if err := e.updateBranch(ctx, source); err != nil {
		return nil, err
	}

	raw, ok, err := e.project.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("on branch %s: %w", source, kerrors.ErrVersionNotFound)
	}
	current, err := version.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !current.IsSnapshot() {
		return nil, fmt.Errorf("%s is at %s: %w", source, raw, kerrors.ErrNotSnapshot)
	}

	if err := e.mergeInto(ctx, master, source, false); err != nil {
		return nil, err
	}

	res := &Result{Kind: KindReleaseSpecific, Warning: SpecificReleaseWarning}
	if err := e.release(ctx, res, current); err != nil {
		return nil, err
	}
	res.Branch = master
	e.log.Warnf("%s", SpecificReleaseWarning)
	return res, e.publish(ctx, res, master)
}

// missingSource lists the local branches that could have been released.
func (e *Engine) missingSource(ctx context.Context) error {
	branches, err := e.repo.ListLocalBranches(ctx)
	if err != nil || len(branches) == 0 {
		return kerrors.ErrMissingSourceBranch
	}
	sort.Strings(branches)
	list := strings.TrimSuffix(utils.FormatBranches(branches), "\n")
	return fmt.Errorf("%w, choose one of:%s", kerrors.ErrMissingSourceBranch, list)
}

// ReleaseHotfix releases the hotfix branch of the patch after the last release
// and fast-forwards develop past the patched line.
func (e *Engine) ReleaseHotfix(ctx context.Context) (*Result, error) {
	if err := e.updateBranch(ctx, master); err != nil {
		return nil, err
	}

	last, err := e.lastRelease(ctx)
	if err != nil {
		return nil, err
	}
	candidate := last.BumpPatch().WithQualifier(version.QualifierNone)

	source := naming.Branch(naming.Hotfix, candidate)
	if err := e.enterExisting(ctx, source); err != nil {
		return nil, err
	}
	if err := e.mergeInto(ctx, master, source, true); err != nil {
		return nil, err
	}

	res := &Result{Kind: KindReleaseHotfix}
	if err := e.release(ctx, res, candidate); err != nil {
		return nil, err
	}

	nextFeature := candidate.BumpMinor()
	if err := e.setVersionAndCommit(ctx, nextFeature.String(), prefixBackTo, nextFeature.String()); err != nil {
		return nil, err
	}
	if err := e.mergeInto(ctx, develop, master, false); err != nil {
		return nil, err
	}

	res.Branch = develop
	return res, e.publish(ctx, res, master, develop)
}

// lastRelease parses the most recent tag. A repository without tags has no
// release to build on.
func (e *Engine) lastRelease(ctx context.Context) (version.Version, error) {
	tag, ok, err := e.repo.LastTagName(ctx)
	if err != nil {
		return version.Version{}, err
	}
	if !ok {
		return version.Version{}, kerrors.ErrNoReleaseTag
	}
	v, err := version.ParseTag(tag)
	if err != nil {
		return version.Version{}, fmt.Errorf("last tag: %w", err)
	}
	return v, nil
}

// release writes the release version of v on the current branch, commits it
// and tags the result.
func (e *Engine) release(ctx context.Context, res *Result, v version.Version) error {
	releaseVersion := v.ReleaseString()
	if err := e.setVersionAndCommit(ctx, releaseVersion, prefixRelease, v.Number()); err != nil {
		return err
	}

	tag := naming.TagName(v, e.now())
	e.log.Infof("tagging %s", tag)
	if err := e.repo.Tag(ctx, tag); err != nil {
		return err
	}
	res.Version = releaseVersion
	res.Tag = tag
	return nil
}
