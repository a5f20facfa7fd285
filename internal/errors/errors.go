package errors

import (
	"errors"

	"github.com/PolarWolf314/gitflow/internal/shell"
	"github.com/PolarWolf314/gitflow/internal/version"
)

// Prerequisite errors indicate the repository is not in a state the flow can start from.
// Re-run the flow after fixing the condition.
var (
	// ErrNoReleaseTag indicates no release tag is reachable, so there is no last release to build on.
	ErrNoReleaseTag = errors.New("no release tag exists")

	// ErrBranchNotFound indicates a branch that must be created out-of-band is missing locally and remotely.
	ErrBranchNotFound = errors.New("branch does not exist")

	// ErrNotSnapshot indicates a snapshot version was required but a different qualifier was found.
	ErrNotSnapshot = errors.New("version is not a SNAPSHOT version")

	// ErrVersionNotFound indicates the project adapter could not report a version.
	ErrVersionNotFound = errors.New("project version not found")

	// ErrManifestNotFound indicates the project descriptor (pom.xml, package.json) is missing.
	ErrManifestNotFound = errors.New("project descriptor not found")

	// ErrGitTooOld indicates the installed git predates the commands the flows rely on.
	ErrGitTooOld = errors.New("git version is too old")
)

// CLI errors indicate problems with how the tool was invoked.
var (
	// ErrAborted indicates the user declined the confirmation prompt.
	ErrAborted = errors.New("aborted by user")

	// ErrNotInteractive indicates a prompt was needed but stdin is not a terminal.
	ErrNotInteractive = errors.New("stdin is not a terminal")

	// ErrUnknownProjectType indicates the project type is not maven or webpack.
	ErrUnknownProjectType = errors.New("unknown project type")

	// ErrUnknownFlow indicates the requested flow kind does not exist.
	ErrUnknownFlow = errors.New("unknown flow")

	// ErrMissingSourceBranch indicates a specific release was requested without a source branch.
	ErrMissingSourceBranch = errors.New("release source branch is required")

	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD format.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrNoHistory indicates no flow has been recorded in this repository yet.
	ErrNoHistory = errors.New("no flow history found")

	// ErrNotGitRepo indicates the working directory is not inside a git work tree.
	ErrNotGitRepo = errors.New("not a git repository")
)

var prerequisites = []error{
	ErrNoReleaseTag,
	ErrBranchNotFound,
	ErrNotSnapshot,
	ErrVersionNotFound,
	ErrManifestNotFound,
	ErrGitTooOld,
}

// IsPrerequisiteMissing reports whether err is caused by a missing prerequisite.
func IsPrerequisiteMissing(err error) bool {
	for _, target := range prerequisites {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsParseError reports whether err is caused by a malformed version string.
func IsParseError(err error) bool {
	return errors.Is(err, version.ErrInvalid)
}

// IsDriverFailure reports whether err is caused by a failed git or build tool invocation.
func IsDriverFailure(err error) bool {
	return errors.Is(err, shell.ErrCommandFailed)
}

// Is is errors.Is, re-exported so callers need only one errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As, re-exported so callers need only one errors import.
func As(err error, target any) bool {
	return errors.As(err, target)
}
