// Package audit records the history of flow runs.
//
// Every flow run, successful or not, appends one JSON object to
//
//	<git-dir>/gitflow/audit.jsonl
//
// Keeping the file inside the git directory means recording history never
// shows up as a working-tree change, which would otherwise trip the
// commit-if-changed checks of the next flow. The history is local to the
// clone and is not pushed.
//
// Each entry carries a UTC timestamp, a random run ID, the git user.email,
// the flow name and its outcome: the resulting branch, version, tag, next
// feature branch and pushed refs, or the error that stopped it.
//
// Use ReadEntries to load the history for display; malformed lines are
// skipped so a partial write does not hide the rest of the file.
package audit
