package compiler

import (
	"github.com/klothoplatform/servgraph/pkg/infra/serverless"
	"github.com/klothoplatform/servgraph/pkg/io"
	"github.com/klothoplatform/servgraph/pkg/logging"
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/render"
	"github.com/klothoplatform/servgraph/pkg/render/rules"
	"github.com/klothoplatform/servgraph/pkg/runtimes"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type (
	// Compiler turns a model into a service definition. The zero value uses the default rules
	// and writes YAML.
	Compiler struct {
		Registry render.Registry
		Service  string
		Stage    string
		Region   string
		Format   serverless.Format
		Log      *zap.Logger
	}

	Result struct {
		// Files are sorted by path.
		Files []io.File
		// Diagnostics holds the non-fatal problems found while compiling, or nil.
		Diagnostics error
	}
)

func (c *Compiler) registry() render.Registry {
	if c.Registry == nil {
		return rules.Default()
	}
	return c.Registry
}

func (c *Compiler) log() *zap.Logger {
	if c.Log == nil {
		return zap.L()
	}
	return c.Log
}

// Compile renders every node of the model, in model order, into a fresh context. The first
// fatal error stops the compilation and is returned as a *render.NodeError. The model is expected
// to be referentially valid.
func (c *Compiler) Compile(m *model.Model, runtimeID string) (*render.Context, error) {
	rt, err := runtimes.Lookup(runtimeID)
	if err != nil {
		return nil, err
	}
	log := c.log().Named("compiler")
	log.Debug("Compiling", zap.Int("nodes", m.Len()), zap.String("runtime", rt.ID))

	ctx := render.NewContext(m, rt, c.registry(), c.Service, log)
	ctx.Document.Provider.Stage = c.Stage
	ctx.Document.Provider.Region = c.Region

	for _, node := range m.Nodes() {
		nodeRules, err := ctx.Registry.For(node.Type)
		if err != nil {
			return nil, render.NewNodeError(node, err)
		}
		log.Debug("Rendering node", logging.NodeField(node))
		if err := nodeRules.Resource(ctx, node); err != nil {
			return nil, render.NewNodeError(node, err)
		}
	}
	return ctx, nil
}

// Render compiles the model and serializes the result.
func (c *Compiler) Render(m *model.Model, runtimeID string) (*Result, error) {
	ctx, err := c.Compile(m, runtimeID)
	if err != nil {
		return nil, err
	}
	plugin := serverless.Plugin{Format: c.Format}
	files, err := plugin.Translate(ctx.Document, ctx.Files)
	if err != nil {
		return nil, errors.Wrapf(err, "%s plugin failed", plugin.Name())
	}
	return &Result{
		Files:       files,
		Diagnostics: ctx.Diagnostics.ErrOrNil(),
	}, nil
}
