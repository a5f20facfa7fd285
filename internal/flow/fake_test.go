package flow

import (
	"context"
	"strings"
)

// fakeRepo is an in-memory Repository that records every call.
type fakeRepo struct {
	remote  map[string]bool
	local   map[string]bool
	current string
	dirty   bool
	lastTag string

	calls   []string
	commits []string
	tags    []string
	failOn  map[string]error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		remote:  map[string]bool{"develop": true, "master": true},
		local:   map[string]bool{"develop": true, "master": true},
		current: "develop",
		failOn:  map[string]error{},
	}
}

func (r *fakeRepo) record(call string) error {
	r.calls = append(r.calls, call)
	return r.failOn[call]
}

func (r *fakeRepo) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (r *fakeRepo) Fetch(context.Context) error { return r.record("fetch") }
func (r *fakeRepo) Pull(context.Context) error  { return r.record("pull") }

func (r *fakeRepo) Switch(_ context.Context, b string) error {
	if err := r.record("switch " + b); err != nil {
		return err
	}
	r.current = b
	return nil
}

func (r *fakeRepo) Checkout(_ context.Context, b string) error {
	if err := r.record("checkout " + b); err != nil {
		return err
	}
	r.current = b
	return nil
}

func (r *fakeRepo) CreateBranch(_ context.Context, b string) error {
	if err := r.record("branch " + b); err != nil {
		return err
	}
	r.local[b] = true
	return nil
}

func (r *fakeRepo) Merge(_ context.Context, b string) error { return r.record("merge " + b) }

func (r *fakeRepo) Commit(_ context.Context, msg string) error {
	if err := r.record("commit " + msg); err != nil {
		return err
	}
	r.commits = append(r.commits, msg)
	r.dirty = false
	return nil
}

func (r *fakeRepo) Tag(_ context.Context, name string) error {
	if err := r.record("tag " + name); err != nil {
		return err
	}
	r.tags = append(r.tags, name)
	return nil
}

func (r *fakeRepo) PushBranch(_ context.Context, b string) error { return r.record("push " + b) }
func (r *fakeRepo) PushTags(context.Context) error               { return r.record("push --tags") }

func (r *fakeRepo) BranchExists(_ context.Context, name string, remote bool) (bool, error) {
	if remote {
		return r.remote[name], r.record("exists remote " + name)
	}
	return r.local[name], r.record("exists local " + name)
}

func (r *fakeRepo) HasUncommittedChanges(context.Context) (bool, error) {
	return r.dirty, r.record("status")
}

func (r *fakeRepo) LastTagName(context.Context) (string, bool, error) {
	return r.lastTag, r.lastTag != "", r.record("last-tag")
}

func (r *fakeRepo) ListLocalBranches(context.Context) ([]string, error) {
	var out []string
	for b := range r.local {
		out = append(out, b)
	}
	return out, r.record("list")
}

// fakeProject stores one version string and dirties the repo when it changes.
type fakeProject struct {
	repo      *fakeRepo
	version   string
	sets      []string
	verified  bool
	verifyErr error
}

func (p *fakeProject) Verify(context.Context) error {
	p.verified = true
	return p.verifyErr
}

func (p *fakeProject) CurrentVersion(context.Context) (string, bool, error) {
	return p.version, p.version != "", nil
}

func (p *fakeProject) SetVersion(_ context.Context, v string) error {
	p.sets = append(p.sets, v)
	if v != p.version {
		p.repo.dirty = true
	}
	p.version = v
	return nil
}
