package command

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/limaJavier/eligibility/internal/config"
	"github.com/limaJavier/eligibility/internal/view"
	"github.com/limaJavier/eligibility/pkg/model"
)

func NewValidateCommand(cli *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog for data entry mistakes",
		Long: view.Highlight("eligibility validate [--catalog file] [--strict]") + "\n\n" +
			"Load the catalog, reporting malformed entries as errors, and list the findings\n" +
			"that do not prevent resolution: references to unknown courses, courses naming\n" +
			"themselves, prerequisite cycles and the courses they make unreachable.\n",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunValidate(cli)
		},
	}

	cmd.Flags().Bool(config.KeyStrict, false, "Exit with an error when there are findings")
	return cmd
}

func RunValidate(cli *CLI) error {
	catalog, source, err := cli.LoadCatalog()
	if err != nil {
		return err
	}

	result := view.ValidateResult{
		Source:      source,
		Courses:     catalog.Len(),
		Diagnostics: model.Diagnose(catalog),
	}
	if err := view.NewValidateView(cli.Viewer).Render(result); err != nil {
		return err
	}

	if cli.Config.Strict && result.HasFindings() {
		return errors.Errorf("strict mode: catalog has %d finding(s)", result.Diagnostics.Count())
	}
	return nil
}
