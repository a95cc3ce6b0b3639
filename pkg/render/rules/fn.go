package rules

import (
	"github.com/klothoplatform/servgraph/pkg/logging"
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/render"
	"github.com/klothoplatform/servgraph/pkg/runtimes"
	"github.com/klothoplatform/servgraph/pkg/template"
	"github.com/pkg/errors"
)

// Fn renders Lambda functions. A function is where most edges are resolved: each source is asked
// for the event that triggers the function and each target for the statement that lets the
// function use it.
type Fn struct{}

func (Fn) Resource(ctx *render.Context, node *model.Node) error {
	rt := ctx.Runtime
	ctx.AddFileIfAbsent(runtimes.IgnoreFileName, rt.IgnoreFile)

	fn := &template.Function{
		Handler:     rt.HandlerRef(node.ID),
		Description: node.Description,
	}
	ctx.Document.Functions[node.ID] = fn
	ctx.SetFile(rt.FileName(node.ID), rt.StartingCode)

	if len(node.From) > 0 {
		fn.Events = []template.Event{}
		for _, src := range node.From {
			ctx.Log.Debug("Trigger "+src+" -> "+node.ID, logging.EdgeField(src, node.ID))
			rules, err := ctx.RulesOf(src)
			if err != nil {
				return err
			}
			if err := rules.Event(ctx, node.ID, src); err != nil {
				return errors.Wrapf(err, "could not add trigger %s -> %s", src, node.ID)
			}
		}
	}

	if len(node.To) > 0 {
		statements, err := collectPolicies(ctx, node)
		if err != nil {
			return err
		}
		if err := attachPolicy(ctx, node, statements); err != nil {
			return err
		}
	}
	return nil
}

// attachPolicy gives functions their statements directly. Any other node type reusing the fan-out
// gets them as a policy document on its resource.
func attachPolicy(ctx *render.Context, node *model.Node, statements []template.Statement) error {
	if len(statements) == 0 {
		return nil
	}
	if node.Type == model.Fn {
		fn, err := ctx.Function(node.ID)
		if err != nil {
			return err
		}
		fn.IAMRoleStatements = append(fn.IAMRoleStatements, statements...)
		ctx.Document.AddPlugin(template.IAMRolesPerFunctionPlugin)
		return nil
	}
	res, err := ctx.Resource(node.ID)
	if err != nil {
		return err
	}
	return res.AddPolicy(template.NewPolicyDocument(statements...))
}

// Event does nothing: an edge between functions is an invocation, not a trigger.
func (Fn) Event(ctx *render.Context, targetID, sourceID string) error {
	ctx.Log.Debug("Function to function connection is an invocation", logging.EdgeField(sourceID, targetID))
	return nil
}

func (Fn) Policy(ctx *render.Context, sourceID, targetID string) (*template.Statement, error) {
	return statement(
		[]string{"lambda:InvokeFunction", "lambda:InvokeAsync"},
		template.Arn(template.FunctionLogicalID(targetID)),
	), nil
}
