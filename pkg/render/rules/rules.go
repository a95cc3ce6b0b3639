// Package rules holds the rendering rules of every node type.
package rules

import (
	"github.com/klothoplatform/servgraph/pkg/logging"
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/render"
	"github.com/klothoplatform/servgraph/pkg/template"
	"github.com/pkg/errors"
)

type (
	// noEvent is embedded by types that never trigger anything.
	noEvent struct{}

	// noPolicy is embedded by types that have no permissions to grant.
	noPolicy struct{}
)

func (noEvent) Event(ctx *render.Context, targetID, sourceID string) error {
	ctx.Log.Debug("Connection is not a trigger", logging.EdgeField(sourceID, targetID))
	return nil
}

func (noPolicy) Policy(ctx *render.Context, sourceID, targetID string) (*template.Statement, error) {
	return nil, nil
}

// resourceEvent is the event a composite (non-function) target declares in its `Events` map.
type resourceEvent struct {
	name  string
	event template.ResourceEvent
	// policies are appended to the target's `Policies` alongside the event.
	policies []any
}

// addEvent adds a trigger from `sourceID` to `targetID`. Functions get `fnEvent` appended to
// their event list, any other target gets `resEvent` in its event map.
func addEvent(ctx *render.Context, targetID string, fnEvent template.Event, resEvent resourceEvent) error {
	if ctx.IsType(targetID, model.Fn) {
		fn, err := ctx.Function(targetID)
		if err != nil {
			return err
		}
		fn.Events = append(fn.Events, fnEvent)
		return nil
	}

	res, err := ctx.Resource(targetID)
	if err != nil {
		return err
	}
	if err := res.AddEvent(resEvent.name, resEvent.event); err != nil {
		return errors.Wrapf(err, "could not add event to %q", targetID)
	}
	for _, p := range resEvent.policies {
		if err := res.AddPolicy(p); err != nil {
			return errors.Wrapf(err, "could not add policy to %q", targetID)
		}
	}
	return nil
}

// statement returns a pointer to an allow statement, the form Policy returns.
func statement(actions []string, resources ...any) *template.Statement {
	s := template.Allow(actions, resources...)
	return &s
}

// collectPolicies asks the rules of every target of `node`, in edge order, for the statement
// granting `node` access to it. Targets with nothing to grant are diagnosed and skipped.
func collectPolicies(ctx *render.Context, node *model.Node) ([]template.Statement, error) {
	var statements []template.Statement
	for _, dst := range node.To {
		ctx.Log.Debug("Policy "+node.ID+" -> "+dst, logging.EdgeField(node.ID, dst))
		rules, err := ctx.RulesOf(dst)
		if err != nil {
			return nil, err
		}
		stmt, err := rules.Policy(ctx, node.ID, dst)
		if err != nil {
			return nil, errors.Wrapf(err, "could not build policy for %s -> %s", node.ID, dst)
		}
		if stmt == nil {
			ctx.Diagnose(node, errors.Wrapf(render.ErrNoPolicy, "%s -> %s", node.ID, dst))
			continue
		}
		statements = append(statements, *stmt)
	}
	return statements, nil
}

// targetsByType returns, for each wanted type, the last node of that type among `ids`.
func targetsByType(ctx *render.Context, ids []string, wanted ...model.NodeType) (map[model.NodeType]string, error) {
	found := make(map[model.NodeType]string, len(wanted))
	for _, id := range ids {
		t, err := ctx.Model.TypeOf(id)
		if err != nil {
			return nil, err
		}
		for _, w := range wanted {
			if t == w {
				found[t] = id
			}
		}
	}
	return found, nil
}
