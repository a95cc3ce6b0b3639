package runtimes

import (
	"bytes"
	"embed"
	"sort"
	"strings"
	"text/template"

	sprig "github.com/Masterminds/sprig/v3"
	"github.com/coreos/go-semver/semver"
	"github.com/lithammer/dedent"
	"github.com/pkg/errors"
)

type (
	// Runtime describes the scaffold generated for functions of one execution runtime.
	Runtime struct {
		ID            string
		Language      string
		Version       string
		FileExtension string
		// Handler is the name of the exported handler in the starting code.
		Handler      string
		IgnoreFile   string
		StartingCode string
	}

	scaffold struct {
		Handler string
		Message string
	}
)

const (
	NodeJS = "nodejs"
	Python = "python"

	// IgnoreFileName is shared by every function of a compilation.
	IgnoreFileName = ".gitignore"

	defaultHandler = "handler"
	welcomeMessage = "Go Serverless v1.0! Your function executed successfully!"
)

var ErrUnknownRuntime = errors.New("unknown runtime")

//go:embed templates/*.tmpl
var files embed.FS

var nodeIgnore = strings.TrimLeft(dedent.Dedent(`
	# package directories
	node_modules
	jspm_packages

	# Serverless directories
	.serverless
	`), "\n")

var pythonIgnore = strings.TrimLeft(dedent.Dedent(`
	# Distribution / packaging
	.Python
	env/
	build/
	develop-eggs/
	dist/
	downloads/
	eggs/
	.eggs/
	lib/
	lib64/
	parts/
	sdist/
	var/
	*.egg-info/
	.installed.cfg
	*.egg

	# Serverless directories
	.serverless
	`), "\n")

var catalog = map[string]*Runtime{}

func init() {
	nodeCode := mustRender("templates/nodejs.tmpl", scaffold{Handler: defaultHandler, Message: welcomeMessage})
	pythonCode := mustRender("templates/python.tmpl", scaffold{Handler: defaultHandler, Message: welcomeMessage})

	for _, v := range []string{"8.10", "18.x"} {
		register(&Runtime{
			Language:      NodeJS,
			Version:       v,
			FileExtension: "js",
			Handler:       defaultHandler,
			IgnoreFile:    nodeIgnore,
			StartingCode:  nodeCode,
		})
	}
	for _, v := range []string{"3.7", "3.11"} {
		register(&Runtime{
			Language:      Python,
			Version:       v,
			FileExtension: "py",
			Handler:       defaultHandler,
			IgnoreFile:    pythonIgnore,
			StartingCode:  pythonCode,
		})
	}
}

func register(r *Runtime) {
	r.ID = r.Language + r.Version
	catalog[r.ID] = r
}

func mustRender(name string, data scaffold) string {
	content, err := files.ReadFile(name)
	if err != nil {
		panic(err)
	}
	t, err := template.New(name).Funcs(sprig.HermeticTxtFuncMap()).Parse(string(content))
	if err != nil {
		panic(err)
	}
	buf := new(bytes.Buffer)
	if err := t.Execute(buf, data); err != nil {
		panic(err)
	}
	return buf.String()
}

// Lookup returns the registered runtime. The returned value is shared and must not be modified.
func Lookup(id string) (*Runtime, error) {
	r, ok := catalog[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownRuntime, "%q (supported: %s)", id, strings.Join(IDs(), ", "))
	}
	return r, nil
}

// IDs lists the registered runtime ids, sorted.
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Latest returns the newest registered runtime for the given language.
func Latest(language string) (*Runtime, error) {
	var (
		latest  *Runtime
		latestV *semver.Version
	)
	for _, id := range IDs() {
		r := catalog[id]
		if r.Language != language {
			continue
		}
		v, err := r.SemVer()
		if err != nil {
			return nil, err
		}
		if latestV == nil || latestV.LessThan(*v) {
			latest, latestV = r, v
		}
	}
	if latest == nil {
		return nil, errors.Wrapf(ErrUnknownRuntime, "no runtime for language %q", language)
	}
	return latest, nil
}

// Resolve accepts either a registered runtime id or a bare language name, in which case the
// newest runtime of that language is returned.
func Resolve(idOrLanguage string) (*Runtime, error) {
	if r, ok := catalog[idOrLanguage]; ok {
		return r, nil
	}
	for _, r := range catalog {
		if r.Language == idOrLanguage {
			return Latest(idOrLanguage)
		}
	}
	return Lookup(idOrLanguage)
}

// SemVer parses the runtime's version, treating `x` wildcards as 0 (`18.x` is 18.0.0).
func (r *Runtime) SemVer() (*semver.Version, error) {
	parts := strings.Split(r.Version, ".")
	for i, p := range parts {
		if p == "x" {
			parts[i] = "0"
		}
	}
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	v, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return nil, errors.Wrapf(err, "runtime %s has an invalid version", r.ID)
	}
	return v, nil
}

// FileName is the scaffold source file name for the function with the given id.
func (r *Runtime) FileName(functionID string) string {
	return functionID + "." + r.FileExtension
}

// HandlerRef is the handler reference the deployment descriptor uses for the function.
func (r *Runtime) HandlerRef(functionID string) string {
	return functionID + "." + r.Handler
}
