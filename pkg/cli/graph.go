package cli

import (
	"os"

	"github.com/klothoplatform/servgraph/pkg/closenicely"
	"github.com/klothoplatform/servgraph/pkg/config"
	"github.com/klothoplatform/servgraph/pkg/logging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var graphCfg struct {
	project config.Project
	output  string
}

func graphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [model file]",
		Short: "Print the model as a Graphviz DOT graph",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGraph,
	}
	cmd.Flags().StringVarP(&graphCfg.output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func runGraph(cmd *cobra.Command, args []string) error {
	log := logging.GetLogger(cmd.Context()).Named("graph")

	project, err := loadProject(log, graphCfg.project, args)
	if err != nil {
		return err
	}
	m, err := loadModel(log, project.ModelPath())
	if err != nil {
		return err
	}

	if graphCfg.output == "" {
		return m.WriteDOT(cmd.OutOrStdout())
	}
	f, err := os.Create(graphCfg.output)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", graphCfg.output)
	}
	defer closenicely.OrDebug(f, graphCfg.output)
	return m.WriteDOT(f)
}
