package model

import (
	"strings"

	"github.com/klothoplatform/servgraph/pkg/multierr"
	"github.com/klothoplatform/servgraph/pkg/set"
	"github.com/pkg/errors"
)

// Validate checks referential integrity: every node has a unique, non-empty id usable as a file
// name and a known type, and every edge names a node in the model. It does not check for cycles
// or any other structural property.
func (m *Model) Validate() error {
	var errs multierr.Error
	seen := make(set.Set[string])
	for i, n := range m.nodes {
		if n.ID == "" {
			errs.Append(errors.Errorf("node at index %d has no id", i))
			continue
		}
		if strings.ContainsAny(n.ID, `/\`) || n.ID == "." || n.ID == ".." {
			errs.Append(errors.Errorf("node id %q is not a valid file name", n.ID))
		}
		if seen.Contains(n.ID) {
			errs.Append(errors.Errorf("duplicate node id %q", n.ID))
		}
		seen.Add(n.ID)

		if !n.Type.Valid() {
			errs.Append(errors.Errorf("node %q has unknown type %q", n.ID, n.Type))
		}
		for _, from := range n.From {
			if _, ok := m.index[from]; !ok {
				errs.Append(errors.Wrapf(ErrUnknownNode, "node %q: incoming edge from %q", n.ID, from))
			}
		}
		for _, to := range n.To {
			if _, ok := m.index[to]; !ok {
				errs.Append(errors.Wrapf(ErrUnknownNode, "node %q: outgoing edge to %q", n.ID, to))
			}
		}
	}
	return errs.ErrOrNil()
}
