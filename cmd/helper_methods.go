package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	"github.com/PolarWolf314/gitflow/internal/shell"
	"github.com/PolarWolf314/gitflow/internal/ui"
	"github.com/PolarWolf314/gitflow/internal/utils"
	"github.com/briandowns/spinner"
	"github.com/charmbracelet/huh"
)

// startSpinner creates a spinner with the given message. It animates only when
// stdout is a terminal and neither verbose nor debug mode is on.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// appends one to the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	// Piped output gets the final message only, not the animation frames.
	animate := quiet && utils.IsOutputTerminal()
	if animate {
		s.Start()
	}
	if quiet {
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ensureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if animate {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// reportedError is an error whose message has already been shown to the user.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err: err}
}

// IsReported reports whether the command already printed err.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// formatError renders err as a red ✗ line, followed by a hint when one applies.
func formatError(err error) string {
	msg := ui.Error.Sprint("✗") + " " + err.Error()

	var cmdErr *shell.CommandError
	switch {
	case errors.Is(err, kerrors.ErrNotGitRepo):
		return msg + "\n" + ui.Info.Sprint("→") + " Run gitflow inside a git work tree"

	case errors.Is(err, kerrors.ErrUnknownProjectType):
		return msg + "\n" + ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--project maven") + " or " +
			ui.Flag.Sprint("--project webpack") + ", or run " + ui.Code.Sprint("gitflow config init")

	case errors.Is(err, kerrors.ErrNoReleaseTag):
		return msg + "\n" + ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("gitflow release test") + " to cut the first release"

	case errors.Is(err, kerrors.ErrGitTooOld):
		return msg + "\n" + ui.Info.Sprint("→") + " gitflow needs git switch, upgrade git"

	case errors.Is(err, kerrors.ErrNotInteractive):
		return msg + "\n" + ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--yes") + " to run without a terminal"

	case errors.As(err, &cmdErr):
		return msg + "\n" + ui.Info.Sprint("→") + " " + ui.Code.Sprint(cmdErr.CommandLine()) +
			" failed. Fix the cause and re-run, finished steps are skipped"

	case kerrors.IsPrerequisiteMissing(err):
		return msg + "\n" + ui.Info.Sprint("→") + " Fix the above and re-run the flow"

	case kerrors.IsParseError(err):
		return msg + "\n" + ui.Info.Sprint("→") + " Versions look like 1.2.0, 1.2.0-SNAPSHOT or 1.2.0.RELEASE"
	}
	return msg
}

// confirm asks a yes/no question. Declining or pressing ctrl+c returns false.
func confirm(question string) (bool, error) {
	if !utils.IsTerminal() {
		return false, kerrors.ErrNotInteractive
	}

	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Run").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// outputJSON writes v to stdout as indented JSON.
func outputJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
