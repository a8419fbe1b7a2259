package command

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/limaJavier/eligibility/internal/config"
	"github.com/limaJavier/eligibility/internal/view"
	"github.com/limaJavier/eligibility/pkg/model"
)

type ResolveOptions struct {
	Transcript string
	Completed  []string
}

func NewResolveCommand(cli *CLI) *cobra.Command {
	var opts ResolveOptions

	cmd := &cobra.Command{
		Use:   "resolve [COURSE...]",
		Short: "List the courses a student is eligible for",
		Long: view.Highlight("eligibility resolve [COURSE...] [-t transcript]") + "\n\n" +
			"Resolve the eligibility groups for the completed courses given as arguments\n" +
			"and/or read from a transcript file (a JSON or YAML list, or a mapping with a\n" +
			"completedCourses list).\n\n" +
			"Examples:\n" +
			"  # Courses open to a student who completed two math courses\n" +
			"  eligibility resolve MATH19500 MATH20100\n\n" +
			"  # Same, reading the transcript and printing the API payload\n" +
			"  eligibility resolve -t transcript.json -o json\n",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Completed = args
			return RunResolve(cli, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Transcript, "transcript", "t", "", "Path to a transcript file")
	cmd.Flags().Bool(config.KeyStrict, false, "Fail when the catalog has diagnostics findings")
	return cmd
}

func RunResolve(cli *CLI, opts ResolveOptions) error {
	catalog, _, err := cli.LoadCatalog()
	if err != nil {
		return err
	}
	if err := cli.checkStrict(model.Diagnose(catalog)); err != nil {
		return err
	}

	completed, err := loadCompleted(opts)
	if err != nil {
		return err
	}
	unknown := lo.Filter(completed.UnsortedList(), func(course string, _ int) bool { return !catalog.Contains(course) })
	if len(unknown) > 0 {
		cli.Logger().Info("completed courses outside the catalog", "courses", unknown)
	}

	resolver := model.NewTwoPhaseResolver()
	groups, err := resolver.Resolve(catalog, completed)
	if err != nil {
		return err
	}
	if !resolver.Verify(groups, catalog, completed) {
		return errors.New("resolved groups failed verification")
	}
	cli.Logger().Debug("eligibility resolved", "completed", completed.Len(), "groups", len(groups))

	return view.NewResolveView(cli.Viewer).Render(view.ResolveResult{
		Completed: sets.List(completed),
		Groups:    groups,
	})
}

func loadCompleted(opts ResolveOptions) (model.CompletedSet, error) {
	completed := model.NewCompletedSet(opts.Completed...)
	if opts.Transcript == "" {
		return completed, nil
	}

	transcript, err := model.CompletedFromFile(opts.Transcript)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load transcript %q", opts.Transcript)
	}
	return completed.Union(transcript), nil
}
