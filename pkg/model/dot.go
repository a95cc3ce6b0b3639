package model

import (
	"fmt"
	"io"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/pkg/errors"
)

type Graph = graph.Graph[string, *Node]

var shapes = map[NodeType]string{
	Fn:              "box",
	StepFn:          "box",
	Bucket:          "cylinder",
	Table:           "cylinder",
	Stream:          "cds",
	DeliveryStream:  "cds",
	AnalyticsStream: "cds",
	Topic:           "parallelogram",
	Api:             "house",
	Schedule:        "circle",
	CognitoIdentity: "octagon",
	IotRule:         "hexagon",
}

// Graph builds a directed graph view of the model from the `to` edges.
func (m *Model) Graph() (Graph, error) {
	g := graph.New(func(n *Node) string { return n.ID }, graph.Directed())
	for _, n := range m.nodes {
		attribs := map[string]string{
			"label": fmt.Sprintf(`%s\n(%s)`, n.ID, n.Type),
		}
		if shape, ok := shapes[n.Type]; ok {
			attribs["shape"] = shape
		}
		err := g.AddVertex(n, graph.VertexAttributes(attribs))
		if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, errors.Wrapf(err, "adding node %q", n.ID)
		}
	}
	for _, n := range m.nodes {
		for _, to := range n.To {
			err := g.AddEdge(n.ID, to)
			switch {
			case err == nil, errors.Is(err, graph.ErrEdgeAlreadyExists):
			case errors.Is(err, graph.ErrVertexNotFound):
				return nil, errors.Wrapf(ErrUnknownNode, "edge %s -> %s", n.ID, to)
			default:
				return nil, errors.Wrapf(err, "adding edge %s -> %s", n.ID, to)
			}
		}
	}
	return g, nil
}

// WriteDOT renders the model as a Graphviz DOT document.
func (m *Model) WriteDOT(w io.Writer) error {
	g, err := m.Graph()
	if err != nil {
		return err
	}
	return draw.DOT(g, w, func(d *draw.Description) {
		d.Attributes["rankdir"] = "LR"
	})
}
