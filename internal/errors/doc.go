// Package errors provides typed error values for gitflow.
//
// Every failure in a flow is fatal: the flow stops, the CLI prints one line
// naming the offending value and exits non-zero. Nothing is rolled back;
// flows are designed to be re-run from the top once the cause is fixed.
//
// # Error Categories
//
//   - Prerequisite errors: the repository is not ready (ErrNoReleaseTag,
//     ErrBranchNotFound, ErrNotSnapshot, ErrVersionNotFound). Check with
//     IsPrerequisiteMissing.
//   - Parse errors: a version or tag string is malformed. These are
//     *version.ParseError values; check with IsParseError.
//   - Driver failures: git or the build tool exited non-zero. These are
//     *shell.CommandError values; check with IsDriverFailure.
//   - CLI errors: invocation problems such as ErrAborted or ErrNotInteractive.
//
// # Usage
//
// Wrap with context using %w so the category survives:
//
//	return nil, fmt.Errorf("test branch %s: %w", name, errors.ErrBranchNotFound)
//
// Handle in the CLI layer:
//
//	if kerrors.IsPrerequisiteMissing(err) {
//	    // explain what to fix before re-running
//	}
package errors
