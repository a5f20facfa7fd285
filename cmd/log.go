package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PolarWolf314/gitflow/internal/audit"
	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	"github.com/PolarWolf314/gitflow/internal/ui"
	"github.com/PolarWolf314/gitflow/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit   int
	logReverse bool
	logUser    string
	logFlow    string
	logFailed  bool
	logSince   string
	logUntil   string
	logOneline bool
	logJSON    bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logUser, "user", "", "filter by user email")
	logCmd.Flags().StringVar(&logFlow, "flow", "", "filter by flow (comma-separated)")
	logCmd.Flags().BoolVar(&logFailed, "failed", false, "show only runs that failed")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries from this day on (YYYY-MM-DD, 7d, \"yesterday\")")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries up to this day (YYYY-MM-DD, 7d, \"yesterday\")")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logUser = ""
	logFlow = ""
	logFailed = false
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the flow history",
	Long: `Displays every flow run in this repository: who ran it, when, and what
it produced. Failed runs are recorded too.

Examples:
  gitflow log                                  # View full history
  gitflow log -n 10                            # Last 10 entries
  gitflow log --reverse                        # Most recent first
  gitflow log --user alice@example.com         # Filter by user
  gitflow log --flow release-test,release-hotfix
  gitflow log --failed                         # Only failed runs
  gitflow log --since 2024-01-01               # Filter by date
  gitflow log --since 2w --until yesterday     # Relative dates
  gitflow log --json                           # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	spinner, cleanup := startSpinner("Loading flow history...", verbose)
	defer cleanup()

	opts := workflows.LogOptions{
		Limit:   logLimit,
		Reverse: logReverse,
		User:    logUser,
		Flows:   logFlow,
		Failed:  logFailed,
		Since:   logSince,
		Until:   logUntil,
	}

	result, err := workflows.Log(commandContext(cmd), opts)
	if err != nil {
		spinner.FinalMSG = formatLogError(err)
		if isLogUnexpectedError(err) {
			return reported(err)
		}
		return nil
	}

	Logger.Debugf("Parsed %d entries from flow history", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	spinner.FinalMSG = ""
	if len(result.Entries) == 0 {
		spinner.FinalMSG = "No flow history entries found matching the filters."
		return nil
	}

	// Stop the spinner before printing the entries.
	cleanup()

	if logJSON {
		return outputLogJSON(result.Entries)
	}
	if logOneline {
		outputLogOneline(result.Entries)
		return nil
	}
	outputLogDefault(result.Entries)
	return nil
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoHistory):
		return ui.Info.Sprint("ℹ") + " No flow history yet. Runs are recorded once a flow has been started."
	case errors.Is(err, kerrors.ErrInvalidDateFormat), errors.Is(err, kerrors.ErrUnknownFlow):
		return ui.Error.Sprint("✗") + " " + err.Error()
	case errors.Is(err, kerrors.ErrNotGitRepo):
		return formatError(err)
	default:
		return ui.Error.Sprint("✗") + " Failed to read flow history: " + err.Error()
	}
}

// isLogUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isLogUnexpectedError(err error) bool {
	return !errors.Is(err, kerrors.ErrNoHistory)
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogOneline(entries []audit.Entry) {
	for _, e := range entries {
		date := workflows.FormatDate(e.Timestamp)
		details := workflows.FormatDetailsOneline(e)
		fmt.Printf("%s %s %s %s\n", date, e.User, e.Flow, details)
	}
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		details := workflows.FormatDetails(e)
		fmt.Printf("%-19s  %-25s  %-16s  %s\n", datetime, e.User, e.Flow, details)
	}
}
