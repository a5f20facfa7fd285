// Package workflows provides high-level orchestration for gitflow commands.
//
// Workflows coordinate configuration, the git driver, the project adapter,
// the flow engine and the history log to implement complete user-facing
// features. Each workflow handles a single command's business logic,
// independent of CLI concerns like prompts, spinners and output formatting.
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// # Available Workflows
//
//   - Prepare: resolves configuration and checks git before prompting
//   - Run: runs one flow and records it in the history
//   - Verify: checks git and builds the project
//   - Log: reads and filters the flow history
//   - ConfigInit, ConfigShow: manage .gitflow.toml
//   - SetProperty: rewrites a Maven version property
//   - Doctor: reports conditions that would stop a flow
//
// # Error Handling
//
// Workflows return errors wrapping the sentinels of internal/errors, so the
// CLI layer can choose messages with errors.Is:
//
//	result, err := workflows.Run(ctx, opts)
//	if kerrors.IsPrerequisiteMissing(err) {
//	    // explain what to fix before re-running
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Cancelling it kills the git or mvn process that is running.
package workflows
