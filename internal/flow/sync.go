package flow

import (
	"context"
	"fmt"

	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
)

// Commit message prefixes.
const (
	prefixFeature = "new feature: "
	prefixHotfix  = "new hotfix: "
	prefixRelease = "release: "
	prefixBackTo  = "back to: "
)

// updateBranch fetches, switches to branch and pulls it. Used for the
// long-lived branches and the operator-chosen release source, which are
// expected to exist.
func (e *Engine) updateBranch(ctx context.Context, branch string) error {
	if err := e.repo.Fetch(ctx); err != nil {
		return err
	}
	if err := e.repo.Switch(ctx, branch); err != nil {
		return err
	}
	return e.repo.Pull(ctx)
}

// syncBranch reaches target whether it exists remotely, locally or not at all.
// When the branch has to be created, onCreate runs with target checked out.
// It reports whether the branch was created.
func (e *Engine) syncBranch(ctx context.Context, target string, onCreate func(context.Context) error) (bool, error) {
	if err := e.repo.Fetch(ctx); err != nil {
		return false, err
	}

	remote, err := e.repo.BranchExists(ctx, target, true)
	if err != nil {
		return false, err
	}
	if remote {
		e.log.Infof("branch %s exists on the remote", target)
		if err := e.updateBranch(ctx, target); err != nil {
			return false, err
		}
		return false, nil
	}

	local, err := e.repo.BranchExists(ctx, target, false)
	if err != nil {
		return false, err
	}
	if local {
		e.log.Infof("branch %s exists locally", target)
		return false, e.repo.Switch(ctx, target)
	}

	e.log.Infof("creating branch %s", target)
	if err := e.repo.CreateBranch(ctx, target); err != nil {
		return false, err
	}
	if err := e.repo.Checkout(ctx, target); err != nil {
		return false, err
	}
	if onCreate != nil {
		if err := onCreate(ctx); err != nil {
			return true, err
		}
	}
	return true, nil
}

// enterExisting switches to a branch that must have been created out of band,
// pulling it when a remote copy exists.
func (e *Engine) enterExisting(ctx context.Context, branch string) error {
	remote, err := e.repo.BranchExists(ctx, branch, true)
	if err != nil {
		return err
	}
	local, err := e.repo.BranchExists(ctx, branch, false)
	if err != nil {
		return err
	}
	if !remote && !local {
		return fmt.Errorf("%s: %w", branch, kerrors.ErrBranchNotFound)
	}

	if err := e.repo.Fetch(ctx); err != nil {
		return err
	}
	if err := e.repo.Switch(ctx, branch); err != nil {
		return err
	}
	if remote {
		return e.repo.Pull(ctx)
	}
	return nil
}

// mergeInto checks out target, pulls it and merges source into it.
func (e *Engine) mergeInto(ctx context.Context, target, source string, checkout bool) error {
	var err error
	if checkout {
		err = e.repo.Checkout(ctx, target)
	} else {
		err = e.repo.Switch(ctx, target)
	}
	if err != nil {
		return err
	}
	if err := e.repo.Pull(ctx); err != nil {
		return err
	}
	e.log.Infof("merging %s into %s", source, target)
	return e.repo.Merge(ctx, source)
}

// commitIfChanged commits tracked changes with prefix+subject. A clean tree
// produces no commit.
func (e *Engine) commitIfChanged(ctx context.Context, prefix, subject string) error {
	dirty, err := e.repo.HasUncommittedChanges(ctx)
	if err != nil {
		return err
	}
	if !dirty {
		e.log.Debugf("nothing changed, skipping commit %q", prefix+subject)
		return nil
	}
	return e.repo.Commit(ctx, prefix+subject)
}

// setVersionAndCommit writes v through the project and commits the change.
func (e *Engine) setVersionAndCommit(ctx context.Context, v, prefix, subject string) error {
	if err := e.project.SetVersion(ctx, v); err != nil {
		return fmt.Errorf("setting version %s: %w", v, err)
	}
	return e.commitIfChanged(ctx, prefix, subject)
}

// publish pushes the updated branches and, for releases, every tag.
func (e *Engine) publish(ctx context.Context, res *Result, branches ...string) error {
	if e.pushBranch {
		for _, b := range branches {
			if b == "" {
				continue
			}
			if err := e.repo.PushBranch(ctx, b); err != nil {
				return fmt.Errorf("pushing %s: %w", b, err)
			}
			res.Pushed = append(res.Pushed, b)
		}
	}
	if e.pushTags && res.Kind.IsRelease() {
		if err := e.repo.PushTags(ctx); err != nil {
			return fmt.Errorf("pushing tags: %w", err)
		}
		res.Pushed = append(res.Pushed, "--tags")
	}
	return nil
}
