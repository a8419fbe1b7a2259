package command

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/limaJavier/eligibility/internal/config"
	"github.com/limaJavier/eligibility/internal/view"
	"github.com/limaJavier/eligibility/pkg/catalog"
	"github.com/limaJavier/eligibility/pkg/model"
)

// Source reported for the catalog embedded in the binary
const embeddedSource = "embedded"

// CLI is a global context passed to all commands.
// It holds the shared state (settings and the current viewer) and is propagated from root to subcommands.
type CLI struct {
	view.Viewer
	*view.Stream
	Config config.Config

	out  io.Writer
	logs io.Writer
}

func NewCLI(vt view.ViewType, out, logs io.Writer, logLevel view.LogLevel) *CLI {
	s := view.NewStream(out)
	return &CLI{
		Viewer: view.NewViewer(vt, s, logs, logLevel),
		Stream: s,
		out:    out,
		logs:   logs,
	}
}

// Configure loads the settings for cmd, once cobra has parsed its flags, and rebuilds the viewer from them
func (cli *CLI) Configure(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString(configFlag)
	conf, err := config.New(configFile)
	if err != nil {
		return err
	}
	if err := config.BindFlags(conf, cmd.Flags(), config.KeyCatalog, config.KeyOutput, config.KeyStrict); err != nil {
		return err
	}
	settings, err := config.Load(conf)
	if err != nil {
		return err
	}

	viewType, err := view.ParseOutputFormat(settings.Output)
	if err != nil {
		return err
	}
	logLevel, err := view.ParseLogLevel(settings.Log)
	if err != nil {
		return err
	}
	if debug, _ := cmd.Flags().GetBool(debugFlag); debug {
		logLevel = view.LogLevelDebug
	}

	cli.Config = settings
	cli.Stream = view.NewStream(cli.out)
	cli.Viewer = view.NewViewer(viewType, cli.Stream, cli.logs, logLevel)
	cli.Logger().Debug("configuration loaded", "file", conf.ConfigFileUsed(), "output", viewType.String(), "catalog", settings.Catalog)
	return nil
}

// LoadCatalog returns the configured catalog and where it came from
func (cli *CLI) LoadCatalog() (*model.Catalog, string, error) {
	if cli.Config.Catalog == "" {
		cli.Logger().Debug("using embedded catalog")
		return catalog.Default(), embeddedSource, nil
	}

	loaded, err := model.CatalogFromFile(cli.Config.Catalog)
	if err != nil {
		return nil, cli.Config.Catalog, errors.Wrapf(err, "cannot load catalog %q", cli.Config.Catalog)
	}
	cli.Logger().Debug("catalog loaded", "file", cli.Config.Catalog, "courses", loaded.Len())
	return loaded, cli.Config.Catalog, nil
}

// checkStrict fails when strict mode is on and diagnostics has findings
func (cli *CLI) checkStrict(diagnostics model.Diagnostics) error {
	for _, unknown := range diagnostics.UnknownReferences {
		cli.Logger().Warn("unknown reference", "course", unknown.Course, "field", unknown.Field, "reference", unknown.Reference)
	}
	if !cli.Config.Strict || diagnostics.IsEmpty() {
		return nil
	}
	return errors.Errorf("strict mode: catalog has %d finding(s), run validate for details", diagnostics.Count())
}
