package model

import (
	"github.com/pkg/errors"
)

type (
	NodeType string

	// Node is one cloud resource or function in the application graph. The ID doubles as the
	// resource's logical name in the generated document.
	Node struct {
		ID          string   `json:"id"`
		Type        NodeType `json:"type"`
		Description string   `json:"description,omitempty"`
		From        []string `json:"from,omitempty"`
		To          []string `json:"to,omitempty"`
	}

	// Model is the read-only application graph. Nodes are kept in the order they were added, which is
	// the order the compiler visits them in.
	Model struct {
		nodes []*Node
		index map[string]*Node
	}
)

const (
	Bucket          NodeType = "bucket"
	Table           NodeType = "table"
	Api             NodeType = "api"
	Stream          NodeType = "stream"
	DeliveryStream  NodeType = "deliveryStream"
	AnalyticsStream NodeType = "analyticsStream"
	Schedule        NodeType = "schedule"
	Topic           NodeType = "topic"
	Fn              NodeType = "fn"
	StepFn          NodeType = "stepFn"
	CognitoIdentity NodeType = "cognitoIdentity"
	IotRule         NodeType = "iotRule"
)

var ErrUnknownNode = errors.New("unknown node")

var nodeTypes = []NodeType{
	Bucket, Table, Api, Stream, DeliveryStream, AnalyticsStream,
	Schedule, Topic, Fn, StepFn, CognitoIdentity, IotRule,
}

// NodeTypes returns every supported node type.
func NodeTypes() []NodeType {
	types := make([]NodeType, len(nodeTypes))
	copy(types, nodeTypes)
	return types
}

func (t NodeType) Valid() bool {
	for _, known := range nodeTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t NodeType) String() string {
	return string(t)
}

func New(nodes ...*Node) *Model {
	m := &Model{index: make(map[string]*Node, len(nodes))}
	for _, n := range nodes {
		m.Add(n)
	}
	return m
}

// Add appends the node to the model. A node with an id already present replaces the old entry
// in the index but both stay in the enumeration order; callers wanting a clean model should run
// [Model.Validate].
func (m *Model) Add(n *Node) {
	if m.index == nil {
		m.index = make(map[string]*Node)
	}
	m.nodes = append(m.nodes, n)
	m.index[n.ID] = n
}

func (m *Model) Node(id string) (*Node, bool) {
	n, ok := m.index[id]
	return n, ok
}

func (m *Model) Nodes() []*Node {
	return m.nodes
}

func (m *Model) Len() int {
	return len(m.nodes)
}

// TypeOf returns the type of the node with the given id. Node types are static metadata, so this
// holds regardless of which nodes have already been compiled.
func (m *Model) TypeOf(id string) (NodeType, error) {
	n, ok := m.index[id]
	if !ok {
		return "", errors.Wrapf(ErrUnknownNode, "node %q", id)
	}
	return n.Type, nil
}

// Connect adds a `from -> to` edge, recording it on both endpoints. Both nodes must already exist.
func (m *Model) Connect(from, to string) error {
	src, ok := m.index[from]
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "edge source %q", from)
	}
	dst, ok := m.index[to]
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "edge target %q", to)
	}
	src.To = append(src.To, to)
	dst.From = append(dst.From, from)
	return nil
}

// Link completes edges that were only declared on one side. Existing edge order is preserved and
// missing ids are appended. Edges to unknown nodes are left untouched for [Model.Validate] to report.
func (m *Model) Link() {
	has := func(ids []string, id string) bool {
		for _, v := range ids {
			if v == id {
				return true
			}
		}
		return false
	}
	for _, n := range m.nodes {
		for _, to := range n.To {
			if dst, ok := m.index[to]; ok && !has(dst.From, n.ID) {
				dst.From = append(dst.From, n.ID)
			}
		}
		for _, from := range n.From {
			if src, ok := m.index[from]; ok && !has(src.To, n.ID) {
				src.To = append(src.To, n.ID)
			}
		}
	}
}
