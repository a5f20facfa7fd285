package cmd

import (
	"fmt"

	"github.com/PolarWolf314/gitflow/internal/ui"
	"github.com/PolarWolf314/gitflow/internal/workflows"
	"github.com/spf13/cobra"
)

var mavenCmd = &cobra.Command{
	Use:   "maven",
	Short: "Maven helpers",
}

var setPropertyCmd = &cobra.Command{
	Use:   "set-property <name> <value>",
	Short: "Set a version property in the Maven build",
	Long: `Runs mvn versions:set-property for one property, for example the version
of a sibling module. The change is not committed.

Examples:
  gitflow maven set-property shared-lib.version 2.3.0-SNAPSHOT`,
	Args: cobra.ExactArgs(2),
	RunE: runSetProperty,
}

func init() {
	mavenCmd.AddCommand(setPropertyCmd)
}

func runSetProperty(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting maven set-property command")

	spinner, cleanup := startSpinner(fmt.Sprintf("Setting %s...", args[0]), verbose)
	defer cleanup()

	err := workflows.SetProperty(commandContext(cmd), workflows.SetPropertyOptions{
		Options: workflowOptions(cmd),
		Name:    args[0],
		Value:   args[1],
	})
	if err != nil {
		spinner.FinalMSG = formatError(err)
		return reported(err)
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + " Set " + ui.Highlight.Sprint(args[0]) + " to " +
		ui.Version.Sprint(args[1]) + "\n" +
		ui.Info.Sprint("→") + " Review and commit the change"
	return nil
}
