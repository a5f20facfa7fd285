package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/gitflow/internal/ui"
	"github.com/PolarWolf314/gitflow/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	doctorJSONOutput bool
	// doctorExitFunc is the function called to exit with a specific code.
	// Can be overridden for testing.
	doctorExitFunc = os.Exit
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSONOutput, "json", false, "output in JSON format")
}

func resetDoctorCommandState() {
	doctorJSONOutput = false
	doctorExitFunc = os.Exit
}

// SetDoctorExitFunc sets the exit function for testing purposes.
func SetDoctorExitFunc(f func(int)) {
	doctorExitFunc = f
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the repository is ready for the flows",
	Long: `Runs read-only health checks and reports what would stop a flow.

The doctor command checks:
  - Git version
  - .gitflow.toml and the project type
  - The project descriptor (pom.xml or package.json)
  - The configured remote
  - The develop and master branches
  - The latest tag being a release tag
  - Uncommitted changes to tracked files

Exit codes:
  0 - All checks passed
  1 - Warnings found (non-critical issues)
  2 - Errors found (a flow would fail)

Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting doctor command")

	spinner, cleanup := startSpinner("Running health checks...", verbose)

	result, err := workflows.Doctor(commandContext(cmd), workflowOptions(cmd))
	if err != nil {
		spinner.FinalMSG = formatError(err)
		cleanup()
		return reported(err)
	}

	for _, check := range result.Checks {
		Logger.Debugf("Check %s: status=%s, message=%s", check.Name, check.Status.String(), check.Message)
	}

	cleanup()

	if doctorJSONOutput {
		if err := outputJSON(result); err != nil {
			return err
		}
	} else {
		printDoctorResults(result)
		switch {
		case result.Summary.Errors > 0:
			fmt.Println(ui.Error.Sprint("✗") + " Health checks completed with errors")
		case result.Summary.Warnings > 0:
			fmt.Println(ui.Warning.Sprint("⚠") + " Health checks completed with warnings")
		default:
			fmt.Println(ui.Success.Sprint("✓") + " Health checks completed")
		}
	}

	// Set exit code based on results.
	if result.Summary.Errors > 0 {
		doctorExitFunc(2)
	} else if result.Summary.Warnings > 0 {
		doctorExitFunc(1)
	}
	return nil
}

// printDoctorResults prints the doctor results in a human-readable format.
func printDoctorResults(result *workflows.DoctorResult) {
	for _, check := range result.Checks {
		var statusIcon string
		switch check.Status {
		case workflows.CheckPass:
			statusIcon = ui.Success.Sprint("✓")
		case workflows.CheckWarning:
			statusIcon = ui.Warning.Sprint("⚠")
		case workflows.CheckError:
			statusIcon = ui.Error.Sprint("✗")
		}
		fmt.Printf("%s %-18s %s\n", statusIcon, check.Name, check.Message)
	}

	fmt.Println()
	fmt.Printf("Summary: %d passed", result.Summary.Passed)
	if result.Summary.Warnings > 0 {
		fmt.Printf(", %s", ui.Warning.Sprint(fmt.Sprintf("%d warning(s)", result.Summary.Warnings)))
	}
	if result.Summary.Errors > 0 {
		fmt.Printf(", %s", ui.Error.Sprint(fmt.Sprintf("%d error(s)", result.Summary.Errors)))
	}
	fmt.Println()

	if len(result.Suggestions) > 0 {
		fmt.Println()
		fmt.Println("Suggestions:")
		for _, suggestion := range result.Suggestions {
			fmt.Printf("  %s %s\n", ui.Info.Sprint("→"), suggestion)
		}
	}
	fmt.Println()
}
