// Package utils provides small helpers shared across gitflow's packages.
//
// # Filesystem Utilities
//
//   - FindRepoRoot: walks up directories to find the enclosing .git
//   - GitDir: resolves the git metadata directory, including linked worktrees
//
// # Terminal Utilities
//
//   - IsTerminal, IsOutputTerminal: decide whether prompts and spinners can be shown
//
// # String Utilities
//
//   - FormatBranches, Truncate: output helpers for branch lists and log lines
package utils
