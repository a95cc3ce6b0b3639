package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/klothoplatform/servgraph/pkg/compiler"
	"github.com/klothoplatform/servgraph/pkg/config"
	"github.com/klothoplatform/servgraph/pkg/logging"
	"github.com/spf13/cobra"
)

var validateCfg struct {
	project config.Project
}

func validateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [model file]",
		Short: "Check the model and compile it without writing anything",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runValidate,
	}
	projectFlags(cmd.Flags(), &validateCfg.project)
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := logging.GetLogger(cmd.Context()).Named("validate")

	project, err := loadProject(log, validateCfg.project, args)
	if err != nil {
		return err
	}
	m, err := loadModel(log, project.ModelPath())
	if err != nil {
		return err
	}
	rt, err := resolveRuntime(log, project.Runtime)
	if err != nil {
		return err
	}

	c := compiler.Compiler{
		Service: project.Service,
		Stage:   project.Stage,
		Region:  project.Region,
		Log:     log,
	}
	ctx, err := c.Compile(m, rt.ID)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if diags := ctx.Diagnostics.ErrOrNil(); diags != nil {
		color.New(color.FgYellow).Fprintf(w, "%s: %d nodes, %d diagnostics\n", project.ModelPath(), m.Len(), len(ctx.Diagnostics))
		for _, d := range ctx.Diagnostics {
			fmt.Fprintf(w, "  - %v\n", d)
		}
		return nil
	}
	color.New(color.FgGreen).Fprintf(w, "%s: %d nodes, valid\n", project.ModelPath(), m.Len())
	return nil
}
