package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/gitflow/internal/configs"
	"github.com/PolarWolf314/gitflow/internal/naming"
	"github.com/PolarWolf314/gitflow/internal/project"
	"github.com/PolarWolf314/gitflow/internal/version"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means a flow would fail.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

type check func(ctx context.Context, s *session) CheckResult

// Doctor inspects the repository for conditions that would stop a flow.
// Unlike Verify it never builds the project and never fails on findings;
// problems are reported as check results.
//
// The checks cover:
//   - git version
//   - .gitflow.toml presence and project type
//   - project descriptor (pom.xml or the manifest)
//   - the configured remote
//   - develop and master branches
//   - the last tag being a release tag
//   - uncommitted changes to tracked files and the checked-out branch
func Doctor(ctx context.Context, opts Options) (*DoctorResult, error) {
	s, err := openSession(opts, false)
	if err != nil {
		return nil, err
	}

	checks := []check{
		checkGitVersion,
		checkConfigFile,
		checkProjectType,
		checkDescriptor,
		checkRemote,
		checkLongLivedBranches,
		checkLastTag,
		checkWorkingTree,
	}

	var results []CheckResult
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, c(ctx, s))
	}

	var suggestions []string
	seen := make(map[string]bool)
	for _, r := range results {
		if r.Suggestion != "" && r.Status != CheckPass && !seen[r.Suggestion] {
			suggestions = append(suggestions, r.Suggestion)
			seen[r.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     calculateDoctorSummary(results),
		Suggestions: suggestions,
	}, nil
}

func checkGitVersion(ctx context.Context, s *session) CheckResult {
	const name = "Git version"
	v, err := s.repo.CheckGitVersion(ctx)
	if err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    err.Error(),
			Suggestion: "Install git 2.23.0 or newer",
		}
	}
	return CheckResult{Name: name, Status: CheckPass, Message: "git " + v}
}

func checkConfigFile(_ context.Context, s *session) CheckResult {
	const name = "Configuration"
	if _, err := os.Stat(s.settings.ConfigPath); os.IsNotExist(err) {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    configs.FileName + " not found, using defaults",
			Suggestion: "Run 'gitflow config init --project <type>' to save the project settings",
		}
	}
	return CheckResult{Name: name, Status: CheckPass, Message: s.settings.ConfigPath}
}

func checkProjectType(_ context.Context, s *session) CheckResult {
	const name = "Project type"
	t, err := s.cfg.ProjectType()
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: err.Error(),
			Suggestion: "Set [project] type to maven or webpack in " + configs.FileName}
	}
	if t == "" {
		return CheckResult{Name: name, Status: CheckWarning, Message: "not configured, will be asked for",
			Suggestion: "Set [project] type in " + configs.FileName + " or pass --project"}
	}
	return CheckResult{Name: name, Status: CheckPass, Message: t.Label()}
}

func checkDescriptor(_ context.Context, s *session) CheckResult {
	const name = "Project descriptor"
	t, _ := s.cfg.ProjectType()

	var candidates []string
	switch t {
	case project.Maven:
		candidates = []string{project.Descriptor}
	case project.Webpack:
		candidates = []string{s.cfg.Project.Manifest}
	default:
		candidates = []string{project.Descriptor, s.cfg.Project.Manifest}
	}

	for _, c := range candidates {
		if _, err := os.Stat(filepath.Join(s.settings.RootPath, c)); err == nil {
			return CheckResult{Name: name, Status: CheckPass, Message: c}
		}
	}
	return CheckResult{
		Name:       name,
		Status:     CheckError,
		Message:    fmt.Sprintf("none of %v found in %s", candidates, s.settings.RootPath),
		Suggestion: "Run gitflow from the root of a Maven or Webpack project",
	}
}

func checkRemote(ctx context.Context, s *session) CheckResult {
	const name = "Remote"
	url, err := s.repo.RemoteURL(ctx)
	if err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("remote %q is not configured", s.repo.Remote()),
			Suggestion: fmt.Sprintf("Add it with 'git remote add %s <url>' or set [git] remote", s.repo.Remote()),
		}
	}
	return CheckResult{Name: name, Status: CheckPass, Message: s.repo.Remote() + " " + url}
}

func checkLongLivedBranches(ctx context.Context, s *session) CheckResult {
	const name = "Branches"
	var missing []string
	for _, role := range []naming.Role{naming.Develop, naming.Master} {
		b := role.Prefix()
		local, err := s.repo.BranchExists(ctx, b, false)
		if err != nil {
			return CheckResult{Name: name, Status: CheckError, Message: err.Error()}
		}
		remote, err := s.repo.BranchExists(ctx, b, true)
		if err != nil {
			return CheckResult{Name: name, Status: CheckError, Message: err.Error()}
		}
		if !local && !remote {
			missing = append(missing, b)
		}
	}
	if len(missing) > 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("missing %v", missing),
			Suggestion: "Create the develop and master branches before running a flow",
		}
	}
	return CheckResult{Name: name, Status: CheckPass, Message: "develop and master exist"}
}

func checkLastTag(ctx context.Context, s *session) CheckResult {
	const name = "Last release"
	tag, ok, err := s.repo.LastTagName(ctx)
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: err.Error()}
	}
	if !ok {
		return CheckResult{
			Name:    name,
			Status:  CheckWarning,
			Message: "no tags yet, hotfix flows are unavailable until the first release",
		}
	}
	v, err := version.ParseTag(tag)
	if err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("latest tag %s is not a release tag", tag),
			Suggestion: "Release tags look like v1.2.0.RELEASE.20240101",
		}
	}
	return CheckResult{Name: name, Status: CheckPass, Message: fmt.Sprintf("%s (%s)", tag, v.Number())}
}

func checkWorkingTree(ctx context.Context, s *session) CheckResult {
	const name = "Working tree"
	dirty, err := s.repo.HasUncommittedChanges(ctx)
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: err.Error()}
	}

	var on string
	if branch, err := s.repo.CurrentBranch(ctx); err == nil && branch != "" {
		on = " on " + branch
		if branch == "HEAD" {
			on = " (detached HEAD)"
		}
	}

	if dirty {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    "tracked files have uncommitted changes" + on,
			Suggestion: "Commit or stash your changes; flows commit every tracked change",
		}
	}
	return CheckResult{Name: name, Status: CheckPass, Message: "clean" + on}
}

// calculateDoctorSummary counts checks by status.
func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, r := range results {
		switch r.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}
