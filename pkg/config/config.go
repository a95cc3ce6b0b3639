package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/klothoplatform/servgraph/pkg/closenicely"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type (
	// Project is the `servgraph` project file. Command line flags take precedence over it.
	Project struct {
		Service string `json:"service,omitempty" yaml:"service,omitempty" toml:"service,omitempty"`
		// Runtime is a runtime id (`nodejs18.x`) or a language (`nodejs`) meaning its newest runtime.
		Runtime string `json:"runtime,omitempty" yaml:"runtime,omitempty" toml:"runtime,omitempty"`
		Stage   string `json:"stage,omitempty" yaml:"stage,omitempty" toml:"stage,omitempty"`
		Region  string `json:"region,omitempty" yaml:"region,omitempty" toml:"region,omitempty"`
		// Model is the path to the model file, relative to the project file.
		Model  string `json:"model,omitempty" yaml:"model,omitempty" toml:"model,omitempty"`
		// OutDir is the output directory, relative to the project file.
		OutDir string `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty"`
		// Format is the output format, `yaml` or `json`.
		Format string `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
		// Set holds dotted-path overrides applied to the rendered service definition.
		Set map[string]string `json:"set,omitempty" yaml:"set,omitempty" toml:"set,omitempty"`

		// FileFormat is the format the project file was read from.
		FileFormat string `json:"-" yaml:"-" toml:"-"`
		// Dir is the directory of the project file.
		Dir string `json:"-" yaml:"-" toml:"-"`
	}
)

const (
	DefaultOutDir = "serverless"
)

var DefaultFileNames = []string{"servgraph.yaml", "servgraph.yml", "servgraph.json", "servgraph.toml"}

func ReadConfig(fpath string) (Project, error) {
	var cfg Project

	f, err := os.Open(fpath)
	if err != nil {
		return cfg, err
	}
	defer closenicely.OrDebug(f, fpath)

	switch filepath.Ext(fpath) {
	case ".json":
		dec := json.NewDecoder(f)
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
		cfg.FileFormat = "json"

	case ".yaml", ".yml":
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
		cfg.FileFormat = "yaml"

	case ".toml":
		dec := toml.NewDecoder(f)
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
		cfg.FileFormat = "toml"

	default:
		return cfg, errors.Errorf("unsupported config file extension %q", filepath.Ext(fpath))
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "could not read config %s", fpath)
	}
	cfg.Dir = filepath.Dir(fpath)
	return cfg, nil
}

// FindConfig returns the first default project file present in dir, or "" if there is none.
func FindConfig(dir string) string {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Merge overrides the settings with the non-empty settings of `other`.
func (cfg *Project) Merge(other Project) {
	if other.Service != "" {
		cfg.Service = other.Service
	}
	if other.Runtime != "" {
		cfg.Runtime = other.Runtime
	}
	if other.Stage != "" {
		cfg.Stage = other.Stage
	}
	if other.Region != "" {
		cfg.Region = other.Region
	}
	if other.Model != "" {
		cfg.Model = other.Model
	}
	if other.OutDir != "" {
		cfg.OutDir = other.OutDir
	}
	if other.Format != "" {
		cfg.Format = other.Format
	}
	if len(other.Set) > 0 && cfg.Set == nil {
		cfg.Set = make(map[string]string, len(other.Set))
	}
	for k, v := range other.Set {
		cfg.Set[k] = v
	}
}

// ModelPath resolves the model path against the project file's directory.
func (cfg Project) ModelPath() string {
	return cfg.resolve(cfg.Model)
}

// OutPath resolves the output directory against the project file's directory.
func (cfg Project) OutPath() string {
	return cfg.resolve(cfg.OutDir)
}

func (cfg Project) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || cfg.Dir == "" {
		return path
	}
	return filepath.Join(cfg.Dir, path)
}

// SetPaths returns the override paths sorted, so overrides apply in a stable order.
func (cfg Project) SetPaths() []string {
	paths := make([]string, 0, len(cfg.Set))
	for k := range cfg.Set {
		paths = append(paths, k)
	}
	sort.Strings(paths)
	return paths
}
