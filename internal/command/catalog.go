package command

import (
	"github.com/spf13/cobra"

	"github.com/limaJavier/eligibility/internal/view"
)

func NewCatalogCommand(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the catalog in use",
		Long: view.Highlight("eligibility catalog [--catalog file] [-o json|yaml]") + "\n\n" +
			"Print the catalog in resolution order. JSON and YAML output can be read back\n" +
			"with --catalog.\n",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, _, err := cli.LoadCatalog()
			if err != nil {
				return err
			}
			return view.NewCatalogView(cli.Viewer).Render(catalog)
		},
	}
}
