package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/klothoplatform/servgraph/pkg/compiler"
	"github.com/klothoplatform/servgraph/pkg/config"
	"github.com/klothoplatform/servgraph/pkg/infra/serverless"
	kio "github.com/klothoplatform/servgraph/pkg/io"
	"github.com/klothoplatform/servgraph/pkg/logging"
	"github.com/klothoplatform/servgraph/pkg/template"
	"github.com/klothoplatform/servgraph/pkg/yaml_util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var renderCfg struct {
	project config.Project
	sets    []string
	dryRun  bool
	strict  bool
}

func renderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [model file]",
		Short: "Render the service definition and function scaffolds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	flags := cmd.Flags()
	projectFlags(flags, &renderCfg.project)
	flags.StringVarP(&renderCfg.project.OutDir, "out-dir", "o", "", "Output directory")
	flags.StringVarP(&renderCfg.project.Format, "format", "F", "", "Output format: yaml or json")
	flags.StringArrayVar(&renderCfg.sets, "set", nil, "Override a value of the service definition, as `path=value` with a dotted path (yaml only, repeatable)")
	flags.BoolVar(&renderCfg.dryRun, "dry-run", false, "Print the service definition instead of writing files")
	flags.BoolVar(&renderCfg.strict, "strict", false, "Fail when any diagnostic is reported")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	log := logging.GetLogger(cmd.Context()).Named("render")

	sets, err := parseSets(renderCfg.sets)
	if err != nil {
		return err
	}
	flagged := renderCfg.project
	flagged.Set = sets
	project, err := loadProject(log, flagged, args)
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
	format, err := serverless.ParseFormat(project.Format)
	if err != nil {
		return err
	}

	c := compiler.Compiler{
		Service: project.Service,
		Stage:   project.Stage,
		Region:  project.Region,
		Format:  format,
		Log:     log,
	}
	result, err := c.Render(m, rt.ID)
	if err != nil {
		return err
	}
	if result.Diagnostics != nil && renderCfg.strict {
		return errors.Wrap(result.Diagnostics, "diagnostics reported in strict mode")
	}

	plugin := serverless.Plugin{Format: format}
	if err := applyOverrides(result.Files, plugin, project); err != nil {
		return err
	}

	if renderCfg.dryRun {
		for _, f := range result.Files {
			if f.Path() == plugin.FileName() {
				_, err := f.WriteTo(cmd.OutOrStdout())
				return err
			}
		}
		return nil
	}

	if err := kio.OutputTo(cmd.Context(), result.Files, project.OutPath()); err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), project.OutPath(), result)
	return nil
}

// applyOverrides sets every `--set` path in the service definition, in sorted path order. The
// result must still decode as a service definition; `--strict` also rejects unknown keys.
func applyOverrides(files []kio.File, plugin serverless.Plugin, project config.Project) error {
	if len(project.Set) == 0 {
		return nil
	}
	if plugin.Format == serverless.JSON {
		return errors.New("overrides are only supported for the yaml format")
	}
	mode := yaml_util.Lenient
	if renderCfg.strict {
		mode = yaml_util.Strict
	}
	for _, f := range files {
		raw, ok := f.(*kio.RawFile)
		if !ok || raw.Path() != plugin.FileName() {
			continue
		}
		content := raw.Content
		for _, path := range project.SetPaths() {
			var err error
			content, err = yaml_util.SetValue(content, path, project.Set[path])
			if err != nil {
				return errors.Wrapf(err, "could not apply override %s", path)
			}
		}
		if err := yaml_util.CheckValid[template.Document](content, mode); err != nil {
			return errors.Wrap(err, "overrides do not fit the service definition")
		}
		content, err := yaml_util.UnquoteDirectives(content)
		if err != nil {
			return err
		}
		raw.Content = content
	}
	return nil
}

func printSummary(w io.Writer, outDir string, result *compiler.Result) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	for _, f := range result.Files {
		size, _ := kio.Size(f)
		fmt.Fprintf(w, "  %s %s\n", filepath.Join(outDir, f.Path()), color.HiBlackString("(%d bytes)", size))
	}
	green.Fprintf(w, "Wrote %d files to %s\n", len(result.Files), bold.Sprint(outDir))

	if result.Diagnostics != nil {
		count := 1
		if merr, ok := result.Diagnostics.(interface{ Unwrap() []error }); ok {
			count = len(merr.Unwrap())
		}
		yellow.Fprintf(w, "%d diagnostics, some resources were left out\n", count)
	}
}
