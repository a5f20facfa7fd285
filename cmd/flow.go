package cmd

import (
	"context"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	"github.com/PolarWolf314/gitflow/internal/flow"
	"github.com/PolarWolf314/gitflow/internal/ui"
	"github.com/PolarWolf314/gitflow/internal/workflows"
	"github.com/spf13/cobra"
)

var featureCmd = &cobra.Command{
	Use:   "feature",
	Short: "Create or enter the feature branch of develop's version",
	Long: `Creates or enters feature/<version>, where <version> is the SNAPSHOT version
found on develop. The version is not bumped.

Running it again is safe: an existing branch is checked out and pulled.

Examples:
  gitflow feature
  gitflow feature --project webpack --yes
  gitflow feature --push`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFlow(cmd, flow.Request{Kind: flow.KindFeature})
	},
}

var hotfixCmd = &cobra.Command{
	Use:   "hotfix",
	Short: "Create or enter the hotfix branch of the next patch",
	Long: `Creates or enters hotfix/<M.m.p+1>, based on the latest release tag. A new
branch gets the <M.m.p+1>-SNAPSHOT version committed.

Examples:
  gitflow hotfix
  gitflow hotfix --project maven --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFlow(cmd, flow.Request{Kind: flow.KindHotfix})
	},
}

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Release a test, hotfix or specific branch into master",
	Long: `Merges a branch into master, commits the release version and tags it
v<M.m.p>.RELEASE.<YYYYMMDD>.

Examples:
  gitflow release test                       # release test/<next minor>
  gitflow release hotfix                     # release hotfix/<next patch>
  gitflow release specific feature/1.4.0     # release any SNAPSHOT branch`,
}

var releaseTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Release the test branch of the next minor version",
	Long: `Releases test/<M.m+1.0>, tags it, then moves develop to the next SNAPSHOT
and creates the matching feature branch.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFlow(cmd, flow.Request{Kind: flow.KindReleaseTest})
	},
}

var releaseHotfixCmd = &cobra.Command{
	Use:   "hotfix",
	Short: "Release the hotfix branch of the next patch",
	Long: `Releases hotfix/<M.m.p+1>, tags it and merges master back into develop.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFlow(cmd, flow.Request{Kind: flow.KindReleaseHotfix})
	},
}

var releaseSpecificCmd = &cobra.Command{
	Use:   "specific <branch>",
	Short: "Release the SNAPSHOT version found on a branch",
	Long: `Releases the SNAPSHOT version of <branch> from master. Nothing is merged
back; release the matching feature and test branches yourself afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFlow(cmd, flow.Request{Kind: flow.KindReleaseSpecific, SourceBranch: args[0]})
	},
}

func init() {
	releaseCmd.AddCommand(releaseTestCmd)
	releaseCmd.AddCommand(releaseHotfixCmd)
	releaseCmd.AddCommand(releaseSpecificCmd)
}

// runFlow resolves the configuration, echoes the parameters, asks for
// confirmation unless --yes was given and runs the flow.
func runFlow(cmd *cobra.Command, req flow.Request) error {
	Logger.Infof("Starting %s flow", req.Kind)
	ctx := commandContext(cmd)
	opts := workflowOptions(cmd)

	prep, err := workflows.Prepare(ctx, opts)
	if err != nil {
		fmt.Println(formatError(err))
		return reported(err)
	}
	if prep.ProjectType == "" {
		err := fmt.Errorf("no project type configured: %w", kerrors.ErrUnknownProjectType)
		fmt.Println(formatError(err))
		return reported(err)
	}

	return confirmAndRun(ctx, opts, prep, req)
}

func confirmAndRun(ctx context.Context, opts workflows.Options, prep *workflows.PrepareResult, req flow.Request) error {
	fmt.Println(ui.ParameterTable(parameterRows(prep, req)))

	if !assumeYes {
		ok, err := confirm(fmt.Sprintf("Run the %s flow?", req.Kind))
		if err != nil {
			fmt.Println(formatError(err))
			return reported(err)
		}
		if !ok {
			fmt.Println(ui.Warning.Sprint("⚠") + " Cancelled, nothing was changed")
			return reported(kerrors.ErrAborted)
		}
	}

	spinner, cleanup := startSpinner(fmt.Sprintf("Running %s flow...", req.Kind), verbose)
	defer cleanup()

	res, err := workflows.Run(ctx, workflows.RunOptions{
		Options: opts,
		Request: req,
		Verify:  verifyFirst,
	})
	if err != nil {
		spinner.FinalMSG = formatError(err)
		return reported(err)
	}

	spinner.FinalMSG = formatFlowResult(res)
	return nil
}

// parameterRows is the echo shown before anything changes.
func parameterRows(prep *workflows.PrepareResult, req flow.Request) []ui.Row {
	rows := []ui.Row{
		{Name: "Project", Value: prep.ProjectType.Label()},
		{Name: "Flow", Value: string(req.Kind)},
	}
	if req.SourceBranch != "" {
		rows = append(rows, ui.Row{Name: "Source branch", Value: req.SourceBranch})
	}
	rows = append(rows,
		ui.Row{Name: "Repository", Value: prep.Root},
		ui.Row{Name: "Remote", Value: prep.Remote},
		ui.Row{Name: "Push branches", Value: yesNo(prep.PushBranches)},
	)
	if req.Kind.IsRelease() {
		rows = append(rows, ui.Row{Name: "Push tags", Value: yesNo(prep.PushTags)})
	}
	rows = append(rows, ui.Row{Name: "Verify build", Value: yesNo(verifyFirst)})
	return rows
}

func formatFlowResult(res *workflows.RunResult) string {
	var b strings.Builder
	b.WriteString(ui.Success.Sprint("✓") + " " + flowTitle(res.Kind) + " flow completed\n")

	if res.Tag != "" {
		fmt.Fprintf(&b, "  Tag:     %s\n", ui.Tag.Sprint(res.Tag))
	}
	if res.Branch != "" {
		branch := ui.Branch.Sprint(res.Branch)
		if res.Created {
			branch += " " + ui.Muted.Sprint("(created)")
		}
		fmt.Fprintf(&b, "  Branch:  %s\n", branch)
	}
	if res.Version != "" {
		fmt.Fprintf(&b, "  Version: %s\n", ui.Version.Sprint(res.Version))
	}
	if len(res.Pushed) > 0 {
		fmt.Fprintf(&b, "  Pushed:  %s\n", strings.Join(res.Pushed, " "))
	}
	if res.Warning != "" {
		b.WriteString(ui.Warning.Sprint("⚠") + " " + res.Warning + "\n")
	}
	if res.AuditErr != nil {
		b.WriteString(ui.Warning.Sprint("⚠") + " Flow history not recorded: " + res.AuditErr.Error() + "\n")
	}
	return b.String()
}

func flowTitle(k flow.Kind) string {
	switch k {
	case flow.KindFeature:
		return "Feature"
	case flow.KindHotfix:
		return "Hotfix"
	case flow.KindReleaseTest:
		return "Test release"
	case flow.KindReleaseHotfix:
		return "Hotfix release"
	case flow.KindReleaseSpecific:
		return "Specific release"
	}
	return string(k)
}

// commandContext returns the context given to ExecuteContext, or Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
