package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/PolarWolf314/gitflow/internal/configs"
	"github.com/PolarWolf314/gitflow/internal/ui"
	"github.com/PolarWolf314/gitflow/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	configInitForce bool
	configShowJSON  bool
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the .gitflow.toml project configuration",
	Long: `Provides commands for the per-repository configuration file.

.gitflow.toml lives at the repository root and holds:
  [project] type, manifest, maven_command
  [git]     command, remote, push_branches, push_tags

Command-line flags override the file.

Examples:
  # Save the project type so flows stop asking for it
  gitflow config init --project maven

  # Show the configuration flows will run with
  gitflow config show`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write .gitflow.toml at the repository root",
	Long: `Writes .gitflow.toml from the defaults and the given flags.

Examples:
  gitflow config init --project webpack
  gitflow config init --project maven --push --push-tags
  gitflow config init --project maven --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing .gitflow.toml")
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigInitState resets the config command flags for testing.
func resetConfigInitState() {
	configInitForce = false
	configShowJSON = false
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting config init command")

	result, err := workflows.ConfigInit(commandContext(cmd), workflows.ConfigInitOptions{
		Options: workflowOptions(cmd),
		Force:   configInitForce,
	})
	if err != nil {
		fmt.Println(formatError(err))
		return reported(err)
	}

	verb := "Created"
	if result.Overwritten {
		verb = "Overwrote"
	}
	fmt.Println(ui.Success.Sprint("✓") + " " + verb + " " + ui.Path.Sprint(result.Path))
	if result.Config.Project.Type == "" {
		fmt.Println(ui.Info.Sprint("→") + " No project type set, flows will ask for one. Pass " +
			ui.Flag.Sprint("--project") + " to save it")
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting config show command")

	result, err := workflows.ConfigShow(commandContext(cmd), workflowOptions(cmd))
	if err != nil {
		fmt.Println(formatError(err))
		return reported(err)
	}

	if configShowJSON {
		return outputJSON(result)
	}

	source := ui.Path.Sprint(result.Path)
	if !result.Exists {
		source = "defaults (" + configs.FileName + " not found)"
	}
	fmt.Println(ui.Muted.Sprint("# " + source))

	enc := toml.NewEncoder(cmd.OutOrStdout())
	enc.Indent = "  "
	return enc.Encode(result.Config)
}
