package cli

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/klothoplatform/servgraph/pkg/cli_config"
	"github.com/klothoplatform/servgraph/pkg/closenicely"
	"github.com/klothoplatform/servgraph/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type ServgraphMain struct {
	Version string
}

var cfg struct {
	verbose   bool
	color     string
	logFormat string
	config    string
}

func (sm ServgraphMain) Main() {
	root := sm.RootCommand()

	err := root.Execute()
	if err != nil {
		ErrorHandler{Verbose: cfg.verbose}.PrintErr(err)
		closenicely.FuncOrDebug(zap.L().Sync, "logger")
		os.Exit(1)
	}
	closenicely.FuncOrDebug(zap.L().Sync, "logger")
}

// RootCommand builds the `servgraph` command tree.
func (sm ServgraphMain) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "servgraph",
		Short:             "Compile an application graph into a Serverless Framework service",
		Version:           sm.Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogger,
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "Verbose logging")
	flags.StringVar(&cfg.color, "color", cli_config.ColorEnvVar.GetOr("auto"), "Colored output: auto, always or never")
	flags.StringVar(&cfg.logFormat, "log-format", "console", "Log format: console or json")
	flags.StringVarP(&cfg.config, "config", "c", "", "Project file (defaults to servgraph.{yaml,yml,json,toml} in the working directory)")

	root.AddCommand(
		renderCommand(),
		validateCommand(),
		graphCommand(),
		runtimesCommand(),
	)
	return root
}

func setupLogger(cmd *cobra.Command, args []string) error {
	switch cfg.color {
	case "always", "on":
		color.NoColor = false
	case "never", "off":
		color.NoColor = true
	}

	opts := logging.LogOpts{
		Verbose:  cfg.verbose,
		Color:    cfg.color,
		Encoding: cfg.logFormat,
	}
	z, err := opts.NewLogger()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(z)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, z))
	return nil
}
