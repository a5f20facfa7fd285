package cmd

import (
	"errors"

	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	logger "github.com/PolarWolf314/gitflow/internal/logging"
	"github.com/PolarWolf314/gitflow/internal/shell"
	"github.com/PolarWolf314/gitflow/internal/workflows"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	projectType string
	push        bool
	pushTags    bool
	assumeYes   bool
	verifyFirst bool

	// runner replaces git and mvn in tests. nil runs the real binaries.
	runner shell.Runner
)

// AddPersistentFlags registers the flags shared by every gitflow command.
func AddPersistentFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&debug, "debug", "d", false, "enable debug output")
	flags.StringVar(&projectType, "project", "", "project type (maven or webpack), overrides .gitflow.toml")
	flags.BoolVar(&push, "push", false, "push the updated branches to the remote")
	flags.BoolVar(&pushTags, "push-tags", false, "push tags after a release")
	flags.BoolVarP(&assumeYes, "yes", "y", false, "run without asking for confirmation")
	flags.BoolVar(&verifyFirst, "verify", false, "build the project before running the flow")
}

// InitLogger builds the Logger from the persistent flags. It is the
// PersistentPreRun of the root command.
func InitLogger(cmd *cobra.Command, args []string) {
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}
	Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
}

// Commands returns the gitflow subcommands.
func Commands() []*cobra.Command {
	return []*cobra.Command{
		featureCmd,
		hotfixCmd,
		releaseCmd,
		verifyCmd,
		doctorCmd,
		logCmd,
		ConfigCmd,
		mavenCmd,
	}
}

// workflowOptions translates the persistent flags. The push settings of
// .gitflow.toml are only overridden when the flag was given.
func workflowOptions(cmd *cobra.Command) workflows.Options {
	opts := workflows.Options{
		ProjectType: projectType,
		Logger:      Logger,
		Runner:      runner,
	}
	if cmd.Flags().Changed("push") {
		v := push
		opts.PushBranches = &v
	}
	if cmd.Flags().Changed("push-tags") {
		v := pushTags
		opts.PushTags = &v
	}
	return opts
}

// ExitCode maps the error returned by a command to the process exit status.
// A cancelled confirmation is not a failure.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, kerrors.ErrAborted) {
		return 0
	}
	return 1
}

// Helper functions for testing

// SetRunner replaces the process runner used for git and mvn.
func SetRunner(r shell.Runner) {
	runner = r
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	projectType = ""
	push = false
	pushTags = false
	assumeYes = false
	verifyFirst = false
	runner = nil
	resetLogCommandState()
	resetDoctorCommandState()
	resetConfigInitState()
	for _, c := range Commands() {
		resetCobraFlagState(c)
	}
}

// resetCobraFlagState clears Changed on every flag of cmd and its children to
// prevent test pollution.
func resetCobraFlagState(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetCobraFlagState(c)
	}
}
