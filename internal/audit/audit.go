package audit

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the format of Entry.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// FileName is the history file inside gitflow's state directory.
const FileName = "audit.jsonl"

// Status values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Entry records one flow run.
type Entry struct {
	Timestamp string `json:"ts"`     // RFC3339 with microseconds, UTC.
	RunID     string `json:"run_id"` // Random UUID per invocation.
	User      string `json:"user"`   // git user.email, or the OS username.
	Flow      string `json:"flow"`
	Project   string `json:"project,omitempty"`
	Status    string `json:"status"`

	// Optional fields depending on flow and outcome.
	Source     string   `json:"source,omitempty"`      // For release-specific.
	Branch     string   `json:"branch,omitempty"`      // Branch checked out at the end.
	Created    bool     `json:"created,omitempty"`     // Branch was created by this run.
	Version    string   `json:"version,omitempty"`     // Version written or found.
	Tag        string   `json:"tag,omitempty"`         // For releases.
	NextBranch string   `json:"next_branch,omitempty"` // For release-test.
	Pushed     []string `json:"pushed,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// NewEntry starts an entry for flow with a fresh run ID.
func NewEntry(flow, user string) Entry {
	return Entry{
		RunID: uuid.NewString(),
		User:  user,
		Flow:  flow,
	}
}

// Time parses the entry timestamp.
func (e Entry) Time() (time.Time, error) {
	return time.Parse(TimestampLayout, e.Timestamp)
}

// LogPath returns the history file under stateDir.
// Returns an empty string if stateDir is empty.
func LogPath(stateDir string) string {
	if stateDir == "" {
		return ""
	}
	return filepath.Join(stateDir, FileName)
}

// Log appends entry to the history under stateDir.
// Recording is best-effort: a flow that already ran must not fail because its
// history could not be written, so errors are returned for the caller to warn
// about, never to abort on.
func Log(stateDir string, entry Entry) error {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampLayout)
	}

	logPath := LogPath(stateDir)
	if logPath == "" {
		return nil
	}
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return err
	}

	// #nosec G306 -- history is readable by anyone who can read the repository.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}

// ReadEntries reads all entries recorded under stateDir.
// Returns an empty slice if the history doesn't exist.
func ReadEntries(stateDir string) ([]Entry, error) {
	logPath := LogPath(stateDir)
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into entries.
// Malformed lines, such as a partial write, are skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
