package cmd

import (
	"errors"
	"fmt"

	kerrors "github.com/PolarWolf314/gitflow/internal/errors"
	"github.com/PolarWolf314/gitflow/internal/flow"
	"github.com/PolarWolf314/gitflow/internal/naming"
	"github.com/PolarWolf314/gitflow/internal/project"
	"github.com/PolarWolf314/gitflow/internal/ui"
	"github.com/PolarWolf314/gitflow/internal/utils"
	"github.com/PolarWolf314/gitflow/internal/workflows"
	"github.com/charmbracelet/huh"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

const releaseChoice = "release"

// RunInteractive asks for the project type, the flow and its parameters,
// then runs it. It is the Run of the root command.
func RunInteractive(cmd *cobra.Command, args []string) error {
	if !utils.IsTerminal() {
		err := fmt.Errorf("interactive mode needs a terminal: %w", kerrors.ErrNotInteractive)
		fmt.Println(formatError(err) + "\n" + ui.Info.Sprint("→") + " Use " +
			ui.Code.Sprint("gitflow feature") + ", " + ui.Code.Sprint("gitflow hotfix") + " or " +
			ui.Code.Sprint("gitflow release") + " in scripts")
		return reported(err)
	}

	fmt.Println()
	figure.NewColorFigure("gitflow", "small", "green", true).Print()
	fmt.Println()

	ctx := commandContext(cmd)
	opts := workflowOptions(cmd)

	prep, err := workflows.Prepare(ctx, opts)
	if err != nil {
		fmt.Println(formatError(err))
		return reported(err)
	}

	choice, err := askFlow(prep)
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Println(ui.Warning.Sprint("⚠") + " Cancelled, nothing was changed")
		return reported(kerrors.ErrAborted)
	}
	if err != nil {
		return err
	}

	opts.ProjectType = string(choice.projectType)
	opts.PushBranches = &choice.pushBranches
	opts.PushTags = &choice.pushTags
	prep.ProjectType = choice.projectType
	prep.PushBranches = choice.pushBranches
	prep.PushTags = choice.pushTags

	return confirmAndRun(ctx, opts, prep, choice.request)
}

type flowChoice struct {
	projectType  project.Type
	request      flow.Request
	pushBranches bool
	pushTags     bool
}

// askFlow runs the selection forms. Later forms depend on earlier answers, so
// each step is its own form.
func askFlow(prep *workflows.PrepareResult) (*flowChoice, error) {
	typ := string(prep.ProjectType)
	if typ == "" {
		typ = string(project.Maven)
	}
	var typeOptions []huh.Option[string]
	for _, t := range project.Types() {
		typeOptions = append(typeOptions, huh.NewOption(t.Label(), string(t)))
	}

	kind := string(flow.KindFeature)
	flowOptions := []huh.Option[string]{
		huh.NewOption("Feature", string(flow.KindFeature)),
		huh.NewOption("Hotfix", string(flow.KindHotfix)),
		huh.NewOption("Release", releaseChoice),
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Project type").
				Description("How the version is read and written").
				Options(typeOptions...).
				Value(&typ),

			huh.NewSelect[string]().
				Title("Flow").
				Options(flowOptions...).
				Value(&kind),
		),
	).WithTheme(huh.ThemeDracula()).Run()
	if err != nil {
		return nil, err
	}

	choice := &flowChoice{
		projectType:  project.Type(typ),
		pushBranches: prep.PushBranches,
		pushTags:     prep.PushTags,
	}

	if kind == releaseChoice {
		kind = string(flow.KindReleaseTest)
		releaseOptions := []huh.Option[string]{
			huh.NewOption("Test", string(flow.KindReleaseTest)),
			huh.NewOption("Hotfix", string(flow.KindReleaseHotfix)),
			huh.NewOption("Specific branch", string(flow.KindReleaseSpecific)),
		}
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Release").
					Description("Which branch goes into master").
					Options(releaseOptions...).
					Value(&kind),
			),
		).WithTheme(huh.ThemeDracula()).Run()
		if err != nil {
			return nil, err
		}
	}

	choice.request.Kind = flow.Kind(kind)
	if choice.request.Kind == flow.KindReleaseSpecific {
		source, err := askSourceBranch(prep.Branches)
		if err != nil {
			return nil, err
		}
		choice.request.SourceBranch = source
	}

	fields := []huh.Field{
		huh.NewConfirm().
			Title("Push branches to " + prep.Remote + "?").
			Value(&choice.pushBranches),
	}
	if choice.request.Kind.IsRelease() {
		fields = append(fields, huh.NewConfirm().
			Title("Push tags to "+prep.Remote+"?").
			Value(&choice.pushTags))
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula()).Run(); err != nil {
		return nil, err
	}

	return choice, nil
}

// askSourceBranch offers the local branches except master.
func askSourceBranch(branches []string) (string, error) {
	var options []huh.Option[string]
	for _, b := range branches {
		if b == naming.Master.Prefix() {
			continue
		}
		options = append(options, huh.NewOption(b, b))
	}
	if len(options) == 0 {
		return "", fmt.Errorf("no local branch to release: %w", kerrors.ErrMissingSourceBranch)
	}

	var source string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Source branch").
				Description("Its SNAPSHOT version is released").
				Options(options...).
				Height(10).
				Value(&source),
		),
	).WithTheme(huh.ThemeDracula()).Run()
	return source, err
}
