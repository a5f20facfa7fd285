package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/PolarWolf314/gitflow/cmd"
	"github.com/PolarWolf314/gitflow/internal/ui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gitflow",
	Short: "gitflow - feature, hotfix and release branches for Maven and Webpack projects",
	Long: `gitflow drives the develop/master branching model with plain git.

It creates feature and hotfix branches named after the project version,
merges test and hotfix branches into master, commits the release version,
tags it v<M.m.p>.RELEASE.<YYYYMMDD> and moves develop to the next SNAPSHOT.
Every step is safe to re-run after a failure.

Run without arguments to choose a flow interactively.

Usage:
  gitflow [command] [flags]

Available Commands:
  feature    Create or enter the feature branch of develop's version
  hotfix     Create or enter the hotfix branch of the next patch
  release    Release a test, hotfix or specific branch into master
  verify     Check git and build the project
  doctor     Check the repository is ready for the flows
  log        View the flow history
  config     Manage .gitflow.toml
  maven      Maven helpers

Run 'gitflow help <command>' for more details on a specific command.
`,
	Args:             cobra.NoArgs,
	PersistentPreRun: cmd.InitLogger,
	RunE:             cmd.RunInteractive,
	SilenceErrors:    true,
	SilenceUsage:     true,
}

func init() {
	cmd.AddPersistentFlags(rootCmd)
	rootCmd.AddCommand(cmd.Commands()...)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !cmd.IsReported(err) {
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" "+err.Error())
	}
	code := cmd.ExitCode(err)
	stop()
	os.Exit(code)
}
