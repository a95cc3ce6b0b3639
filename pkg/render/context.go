package render

import (
	"github.com/klothoplatform/servgraph/pkg/logging"
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/multierr"
	"github.com/klothoplatform/servgraph/pkg/runtimes"
	"github.com/klothoplatform/servgraph/pkg/template"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Context is the in-progress output of one compilation. It is populated node by node and never
// shared between compilations.
type Context struct {
	Model    *model.Model
	Runtime  *runtimes.Runtime
	Registry Registry
	Document *template.Document
	// Files maps relative output paths to their contents, excluding the document itself.
	Files map[string]string
	Log   *zap.Logger
	// Diagnostics collects the non-fatal problems that left parts of the document out.
	Diagnostics multierr.Error
}

func NewContext(m *model.Model, runtime *runtimes.Runtime, registry Registry, service string, log *zap.Logger) *Context {
	if log == nil {
		log = zap.L()
	}
	return &Context{
		Model:    m,
		Runtime:  runtime,
		Registry: registry,
		Document: template.NewDocument(service, runtime.ID),
		Files:    make(map[string]string),
		Log:      log,
	}
}

func (ctx *Context) RuntimeID() string {
	return ctx.Runtime.ID
}

// Node returns the model node with the given id.
func (ctx *Context) Node(id string) (*model.Node, error) {
	n, ok := ctx.Model.Node(id)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNode, "node %q", id)
	}
	return n, nil
}

// RulesOf looks up the rules for the type of node `id`. This is the dispatch step for edges:
// the caller picks which endpoint's rules to use, and the type of that endpoint picks the rules.
func (ctx *Context) RulesOf(id string) (Rules, error) {
	t, err := ctx.Model.TypeOf(id)
	if err != nil {
		return nil, err
	}
	return ctx.Registry.For(t)
}

// IsType reports whether node `id` exists and has the given type.
func (ctx *Context) IsType(id string, t model.NodeType) bool {
	actual, err := ctx.Model.TypeOf(id)
	return err == nil && actual == t
}

// Resource returns the already rendered CloudFormation resource with the given logical id.
func (ctx *Context) Resource(id string) (*template.Resource, error) {
	r, ok := ctx.Document.Resources.Resources[id]
	if !ok {
		return nil, errors.Wrapf(ErrMissingResource, "resource %q", id)
	}
	return r, nil
}

func (ctx *Context) SetResource(id string, r *template.Resource) {
	ctx.Document.Resources.Resources[id] = r
}

// Function returns the already rendered function with the given id.
func (ctx *Context) Function(id string) (*template.Function, error) {
	f, ok := ctx.Document.Functions[id]
	if !ok {
		return nil, errors.Wrapf(ErrMissingResource, "function %q", id)
	}
	return f, nil
}

func (ctx *Context) SetFile(path, content string) {
	ctx.Files[path] = content
}

// AddFileIfAbsent adds the file unless one already exists at the path. It returns whether the
// file was added.
func (ctx *Context) AddFileIfAbsent(path, content string) bool {
	if _, ok := ctx.Files[path]; ok {
		return false
	}
	ctx.Files[path] = content
	return true
}

// Diagnose records a non-fatal problem with the node. Compilation continues.
func (ctx *Context) Diagnose(node *model.Node, err error) {
	err = errors.Wrapf(err, "%s %q", node.Type, node.ID)
	ctx.Log.Warn(err.Error(), logging.NodeField(node))
	ctx.Diagnostics.Append(err)
}
