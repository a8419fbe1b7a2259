package command

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/limaJavier/eligibility/internal/config"
	"github.com/limaJavier/eligibility/internal/version"
	"github.com/limaJavier/eligibility/internal/view"
)

const (
	configFlag = "config"
	debugFlag  = "debug"
)

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eligibility",
		Short: "Compute the courses a student may take next",
		Long: view.Highlight("Usage: eligibility [global options] <subcommand> [args]") + "\n\n" +
			"eligibility resolves which courses, or bundles of courses that must be taken\n" +
			"together, a student is eligible for given the courses already completed and a\n" +
			"catalog of prerequisites, corequisites and either-of requirements.\n",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				_ = cmd.Help()
			}
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().String(configFlag, "", "Config file (default: eligibility.yaml next to the binary or in the working directory)")
	cmd.PersistentFlags().StringP(config.KeyOutput, "o", "", "Output format. One of: (human | json | yaml)")
	cmd.PersistentFlags().String(config.KeyCatalog, "", "Catalog file (JSON or YAML); the embedded catalog when empty")
	cmd.PersistentFlags().Bool(debugFlag, false, "Set log level to debug")
	return cmd
}

// AddCommands registers all subcommands to the root command.
func AddCommands(root *cobra.Command, cli *CLI) {
	root.AddCommand(
		NewResolveCommand(cli),
		NewValidateCommand(cli),
		NewCatalogCommand(cli),
		NewVersionCommand(cli),
	)
}

// NewApp returns the root command with every subcommand wired to a CLI writing results to out and logs to logs
func NewApp(out, logs io.Writer) (*cobra.Command, *CLI) {
	root := NewRootCommand()
	cli := NewCLI(view.ViewHuman, out, logs, view.LogLevelSilent)
	AddCommands(root, cli)

	// The viewer depends on flags, hence it is rebuilt once cobra has parsed them
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return cli.Configure(cmd)
	}
	root.SetOut(out)
	root.SetErr(logs)
	setUsageTemplate(root)
	root.SetVersionTemplate("{{.Version}}\n")
	return root, cli
}

func setUsageTemplate(root *cobra.Command) {
	cobra.AddTemplateFunc("StyleHeading", color.RGB(50, 108, 229).SprintFunc())
	usageTemplate := strings.NewReplacer(
		`Usage:`, `{{StyleHeading "Usage:"}}`,
		`Examples:`, `{{StyleHeading "Examples:"}}`,
		`Available Commands:`, `{{StyleHeading "Available Commands:"}}`,
		`Flags:`, `{{StyleHeading "Options:"}}`,
		`Global Flags:`, `{{StyleHeading "Global Options:"}}`,
	).Replace(root.UsageTemplate())
	root.SetUsageTemplate(usageTemplate)
}

func Execute() {
	// Disable color output if NO_COLOR is set in the environment
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		color.NoColor = true
	}

	root, _ := NewApp(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			view.NewStream(os.Stderr).Println(view.Alert("Error:"), msg)
		}
		os.Exit(1)
	}
}
