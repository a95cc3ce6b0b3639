package cli

import (
	"path/filepath"
	"strings"

	"github.com/klothoplatform/servgraph/pkg/cli_config"
	"github.com/klothoplatform/servgraph/pkg/config"
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/runtimes"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const defaultRuntime = "nodejs8.10"

// projectFlags registers the settings that can override the project file.
func projectFlags(flags *pflag.FlagSet, p *config.Project) {
	flags.StringVarP(&p.Runtime, "runtime", "r", "", "Runtime id or language (defaults to $"+string(cli_config.RuntimeEnvVar)+", then "+defaultRuntime+")")
	flags.StringVar(&p.Service, "service", "", "Service name")
	flags.StringVar(&p.Stage, "stage", "", "Provider stage")
	flags.StringVar(&p.Region, "region", "", "Provider region")
}

// loadProject reads the project file, if any, and applies the command line settings over it.
func loadProject(log *zap.Logger, flagged config.Project, args []string) (config.Project, error) {
	var project config.Project

	path := cfg.config
	if path == "" {
		path = config.FindConfig(".")
	}
	if path != "" {
		var err error
		project, err = config.ReadConfig(path)
		if err != nil {
			return project, err
		}
		log.Debug("Read project file", zap.String("path", path), zap.String("format", project.FileFormat))
	}

	if len(args) > 0 {
		flagged.Model = args[0]
	}
	// Paths in the project file are relative to it, paths on the command line to the working directory.
	for _, p := range []*string{&flagged.Model, &flagged.OutDir} {
		if *p == "" {
			continue
		}
		abs, err := filepath.Abs(*p)
		if err != nil {
			return project, errors.Wrapf(err, "could not resolve %s", *p)
		}
		*p = abs
	}
	project.Merge(flagged)

	if project.Runtime == "" {
		project.Runtime = cli_config.RuntimeEnvVar.GetOr(defaultRuntime)
	}
	if project.OutDir == "" {
		project.OutDir = config.DefaultOutDir
	}
	if project.ModelPath() == "" {
		return project, errors.New("no model file given: pass it as an argument or set 'model' in the project file")
	}
	return project, nil
}

// parseSets reads `path=value` overrides. Only the first `=` separates the path, so values may
// contain `=` and `,`.
func parseSets(sets []string) (map[string]string, error) {
	if len(sets) == 0 {
		return nil, nil
	}
	parsed := make(map[string]string, len(sets))
	for _, s := range sets {
		path, value, ok := strings.Cut(s, "=")
		if !ok || path == "" {
			return nil, errors.Errorf("override %q must be given as path=value", s)
		}
		parsed[path] = value
	}
	return parsed, nil
}

// loadModel reads the model, completes missing reverse edges, and checks that every edge resolves.
func loadModel(log *zap.Logger, path string) (*model.Model, error) {
	m, err := model.LoadFile(path)
	if err != nil {
		return nil, err
	}
	m.Link()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	log.Debug("Loaded model", zap.String("path", path), zap.Int("nodes", m.Len()))
	return m, nil
}

func resolveRuntime(log *zap.Logger, idOrLanguage string) (*runtimes.Runtime, error) {
	rt, err := runtimes.Resolve(idOrLanguage)
	if err != nil {
		return nil, err
	}
	if rt.ID != idOrLanguage {
		log.Info("Resolved runtime", zap.String("requested", idOrLanguage), zap.String("runtime", rt.ID))
	}
	return rt, nil
}
