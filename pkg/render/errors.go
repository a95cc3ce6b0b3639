package render

import (
	"fmt"

	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/pkg/errors"
)

type (
	// NodeError is a fatal failure while rendering a node. It aborts the compilation.
	NodeError struct {
		NodeID   string
		NodeType model.NodeType
		Cause    error
	}

	// UnsupportedConnectionError is returned for an edge whose endpoint types have no meaning.
	UnsupportedConnectionError struct {
		Source     string
		Target     string
		TargetType model.NodeType
	}
)

var (
	ErrUnknownNode        = model.ErrUnknownNode
	ErrNoRules            = errors.New("no rendering rules")
	ErrMissingResource    = errors.New("resource not rendered")
	ErrMissingDestination = errors.New("missing destination")
	ErrNoPolicy           = errors.New("connection grants no permissions")
)

func NewNodeError(node *model.Node, cause error) *NodeError {
	if nerr, ok := cause.(*NodeError); ok {
		return nerr
	}
	return &NodeError{
		NodeID:   node.ID,
		NodeType: node.Type,
		Cause:    cause,
	}
}

func (err *NodeError) Error() string {
	return fmt.Sprintf("error rendering %s %q: %v", err.NodeType, err.NodeID, err.Cause)
}

func (err *NodeError) Unwrap() error {
	return err.Cause
}

func (err *UnsupportedConnectionError) Error() string {
	return fmt.Sprintf("connection type not supported (%s): %s -> %s", err.TargetType, err.Source, err.Target)
}
