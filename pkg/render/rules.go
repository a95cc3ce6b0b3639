package render

import (
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/template"
	"github.com/pkg/errors"
)

type (
	// Rules renders one node type. Which method runs for an edge is decided by the type of the
	// edge's other endpoint: a function asks each of its sources for an Event and each of its
	// targets for a Policy.
	Rules interface {
		// Resource adds the node's own entries (and any companion resources or files) to the
		// context's document.
		Resource(ctx *Context, node *model.Node) error

		// Event is called on the source's rules for an edge `sourceID -> targetID` that is a
		// trigger. It adds the event to the target function or composite resource.
		Event(ctx *Context, targetID, sourceID string) error

		// Policy is called on the target's rules for an edge `sourceID -> targetID` that grants
		// permissions. It returns the statement authorising the source to act on the target, or
		// nil if the type has nothing to grant.
		Policy(ctx *Context, sourceID, targetID string) (*template.Statement, error)
	}

	Registry map[model.NodeType]Rules
)

// For returns the rules of the node type.
func (r Registry) For(t model.NodeType) (Rules, error) {
	rules, ok := r[t]
	if !ok {
		return nil, errors.Wrapf(ErrNoRules, "node type %q", t)
	}
	return rules, nil
}

// Missing lists the node types without rules.
func (r Registry) Missing() []model.NodeType {
	var missing []model.NodeType
	for _, t := range model.NodeTypes() {
		if _, ok := r[t]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}
