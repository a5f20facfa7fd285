package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/gitflow/internal/audit"
	"github.com/PolarWolf314/gitflow/internal/configs"
	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	"github.com/PolarWolf314/gitflow/internal/flow"
	"github.com/PolarWolf314/gitflow/internal/timeparse"
	"github.com/PolarWolf314/gitflow/internal/utils"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Dir is any directory inside the work tree. Defaults to the working directory.
	Dir string

	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// User filters entries by user (case-insensitive).
	User string

	// Flows filters entries by flow names (comma-separated).
	Flows string

	// Failed keeps only runs that stopped with an error.
	Failed bool

	// Since keeps entries from this day on. Accepts YYYY-MM-DD, offsets such
	// as 7d and phrases such as "yesterday".
	Since string

	// Until keeps entries up to the end of this day, in the same forms as Since.
	Until string

	// Now anchors relative dates. Defaults to time.Now.
	Now func() time.Time
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered history entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the flow history.
//
// Returns ErrNotGitRepo outside a work tree.
// Returns ErrNoHistory if no flow has been recorded.
// Returns ErrInvalidDateFormat if a date filter is malformed.
// Returns ErrUnknownFlow if a flow filter is not a flow name.
func Log(_ context.Context, opts LogOptions) (*LogResult, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	settings, err := configs.InitProjectSettings(dir)
	if err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries(settings.StatePath)
	if err != nil {
		return nil, fmt.Errorf("reading flow history: %w", err)
	}
	if entries == nil {
		return nil, kerrors.ErrNoHistory
	}

	result := &LogResult{TotalEntriesBeforeFilter: len(entries)}
	filtered := entries

	if opts.User != "" {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return strings.EqualFold(e.User, opts.User)
		})
	}

	if opts.Flows != "" {
		flows := make(map[string]bool)
		for _, f := range strings.Split(opts.Flows, ",") {
			if strings.TrimSpace(f) == "" {
				continue
			}
			kind, err := flow.ParseKind(f)
			if err != nil {
				return nil, fmt.Errorf("--flow: %w", err)
			}
			flows[string(kind)] = true
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return flows[strings.ToLower(e.Flow)]
		})
	}

	if opts.Failed {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return e.Status == audit.StatusFailed
		})
	}

	now := time.Now()
	if opts.Now != nil {
		now = opts.Now()
	}

	if opts.Since != "" {
		sinceTime, err := timeparse.Day(opts.Since, now)
		if err != nil {
			return nil, fmt.Errorf("%w: --since %s, use YYYY-MM-DD, an offset like 7d or a phrase like \"yesterday\"", kerrors.ErrInvalidDateFormat, err)
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, err := e.Time()
			return err == nil && !t.Before(sinceTime)
		})
	}

	if opts.Until != "" {
		untilTime, err := timeparse.EndOfDay(opts.Until, now)
		if err != nil {
			return nil, fmt.Errorf("%w: --until %s, use YYYY-MM-DD, an offset like 7d or a phrase like \"yesterday\"", kerrors.ErrInvalidDateFormat, err)
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, err := e.Time()
			return err == nil && !t.After(untilTime)
		})
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// The limit always keeps the most recent entries.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterEntries(entries []audit.Entry, keep func(audit.Entry) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

// FormatDate formats a timestamp string to YYYY-MM-DD format.
func FormatDate(ts string) string {
	t, err := time.Parse(audit.TimestampLayout, ts)
	if err != nil {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	return t.Format(timeparse.DateLayout)
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, err := time.Parse(audit.TimestampLayout, ts)
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails describes what a run produced, or why it failed.
func FormatDetails(e audit.Entry) string {
	if e.Status == audit.StatusFailed {
		return "failed: " + e.Error
	}

	var parts []string
	if e.Source != "" {
		parts = append(parts, "from "+e.Source)
	}
	if e.Tag != "" {
		parts = append(parts, "tag "+e.Tag)
	}
	if e.Branch != "" {
		b := "on " + e.Branch
		if e.Created {
			b += " (created)"
		}
		parts = append(parts, b)
	}
	if e.NextBranch != "" && e.NextBranch != e.Branch {
		parts = append(parts, "next "+e.NextBranch)
	}
	if e.Version != "" {
		parts = append(parts, "version "+e.Version)
	}
	if len(e.Pushed) > 0 {
		parts = append(parts, "pushed "+strings.Join(e.Pushed, " "))
	}
	return strings.Join(parts, ", ")
}

// FormatDetailsOneline is FormatDetails cut down to the single most useful value.
func FormatDetailsOneline(e audit.Entry) string {
	switch {
	case e.Status == audit.StatusFailed:
		return "failed: " + utils.Truncate(e.Error, 60)
	case e.Tag != "":
		return e.Tag
	default:
		return e.Branch
	}
}
