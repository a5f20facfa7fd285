package cmd

import (
	"fmt"

	"github.com/PolarWolf314/gitflow/internal/ui"
	"github.com/PolarWolf314/gitflow/internal/workflows"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check git and build the project",
	Long: `Checks that git is recent enough and that the project builds, without
running a flow.

For Maven projects this runs mvn clean package -DskipTests -U followed by
mvn clean. For Webpack projects the manifest must exist.

Examples:
  gitflow verify
  gitflow verify --project maven`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting verify command")

	spinner, cleanup := startSpinner("Verifying project...", verbose)
	defer cleanup()

	result, err := workflows.Verify(commandContext(cmd), workflowOptions(cmd))
	if err != nil {
		spinner.FinalMSG = formatError(err)
		return reported(err)
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + " " + result.ProjectType.Label() + " project at " +
		ui.Path.Sprint(result.Root) + " is ready\n" +
		fmt.Sprintf("  git %s", result.GitVersion)
	return nil
}
