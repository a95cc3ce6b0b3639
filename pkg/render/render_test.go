package render

import (
	"testing"

	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/runtimes"
	"github.com/klothoplatform/servgraph/pkg/template"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type noopRules struct{}

func (noopRules) Resource(*Context, *model.Node) error { return nil }
func (noopRules) Event(*Context, string, string) error { return nil }
func (noopRules) Policy(*Context, string, string) (*template.Statement, error) {
	return nil, nil
}

func newTestContext(t *testing.T, registry Registry, nodes ...*model.Node) *Context {
	rt, err := runtimes.Lookup("nodejs8.10")
	require.NoError(t, err)
	return NewContext(model.New(nodes...), rt, registry, "", zap.NewNop())
}

func Test_NewContext(t *testing.T) {
	assert := assert.New(t)
	ctx := newTestContext(t, Registry{})

	assert.Equal("nodejs8.10", ctx.RuntimeID())
	assert.Equal("serverless", ctx.Document.Service)
	assert.Equal("nodejs8.10", ctx.Document.Provider.Runtime)
	assert.Empty(ctx.Files)
	assert.NoError(ctx.Diagnostics.ErrOrNil())
}

func Test_RulesOf(t *testing.T) {
	assert := assert.New(t)
	ctx := newTestContext(t,
		Registry{model.Fn: noopRules{}},
		&model.Node{ID: "worker", Type: model.Fn},
		&model.Node{ID: "uploads", Type: model.Bucket},
	)

	rules, err := ctx.RulesOf("worker")
	assert.NoError(err)
	assert.Equal(noopRules{}, rules)

	_, err = ctx.RulesOf("uploads")
	assert.True(errors.Is(err, ErrNoRules))

	_, err = ctx.RulesOf("missing")
	assert.True(errors.Is(err, ErrUnknownNode))

	assert.True(ctx.IsType("worker", model.Fn))
	assert.False(ctx.IsType("worker", model.Bucket))
	assert.False(ctx.IsType("missing", model.Fn))
}

func Test_RegistryMissing(t *testing.T) {
	assert := assert.New(t)
	r := Registry{model.Fn: noopRules{}}
	missing := r.Missing()
	assert.Len(missing, len(model.NodeTypes())-1)
	assert.NotContains(missing, model.Fn)
}

func Test_ResourceLookups(t *testing.T) {
	assert := assert.New(t)
	ctx := newTestContext(t, Registry{})

	_, err := ctx.Resource("table")
	assert.True(errors.Is(err, ErrMissingResource))
	_, err = ctx.Function("fn")
	assert.True(errors.Is(err, ErrMissingResource))

	res := &template.Resource{Type: "AWS::DynamoDB::Table"}
	ctx.SetResource("table", res)
	got, err := ctx.Resource("table")
	assert.NoError(err)
	assert.Same(res, got)
}

func Test_AddFileIfAbsent(t *testing.T) {
	assert := assert.New(t)
	ctx := newTestContext(t, Registry{})

	assert.True(ctx.AddFileIfAbsent(".gitignore", "a"))
	assert.False(ctx.AddFileIfAbsent(".gitignore", "b"))
	assert.Equal("a", ctx.Files[".gitignore"])

	ctx.SetFile(".gitignore", "c")
	assert.Equal("c", ctx.Files[".gitignore"])
}

func Test_Diagnose(t *testing.T) {
	assert := assert.New(t)
	core, logs := observer.New(zap.WarnLevel)
	ctx := newTestContext(t, Registry{})
	ctx.Log = zap.New(core)

	node := &model.Node{ID: "clicks", Type: model.DeliveryStream}
	ctx.Diagnose(node, ErrMissingDestination)

	assert.True(errors.Is(ctx.Diagnostics.ErrOrNil(), ErrMissingDestination))
	entries := logs.TakeAll()
	if assert.Len(entries, 1) {
		assert.Contains(entries[0].Message, `deliveryStream "clicks"`)
	}
}

func Test_NodeError(t *testing.T) {
	assert := assert.New(t)
	node := &model.Node{ID: "rule", Type: model.IotRule}
	cause := &UnsupportedConnectionError{Source: "rule", Target: "orders", TargetType: model.Table}

	err := NewNodeError(node, cause)
	assert.Equal(`error rendering iotRule "rule": connection type not supported (table): rule -> orders`, err.Error())

	var unsupported *UnsupportedConnectionError
	assert.True(errors.As(err, &unsupported))
	assert.Equal(model.Table, unsupported.TargetType)

	assert.Same(err, NewNodeError(&model.Node{ID: "other"}, err), "node errors are not nested")
}
