package model

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/klothoplatform/servgraph/pkg/closenicely"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

type (
	modelFile struct {
		Nodes nodeList `json:"nodes"`
	}

	// nodeList accepts either a list of nodes or a map of id to node.
	nodeList []*Node
)

func (l *nodeList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}
	if trimmed[0] == '[' {
		var nodes []*Node
		if err := json.Unmarshal(trimmed, &nodes); err != nil {
			return err
		}
		*l = nodes
		return nil
	}

	var byID map[string]*Node
	if err := json.Unmarshal(trimmed, &byID); err != nil {
		return err
	}
	keys := make([]string, 0, len(byID))
	for k := range byID {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	nodes := make([]*Node, 0, len(keys))
	for _, k := range keys {
		n := byID[k]
		if n == nil {
			n = &Node{}
		}
		switch n.ID {
		case "":
			n.ID = k
		case k:
		default:
			return errors.Errorf("node keyed %q declares id %q", k, n.ID)
		}
		nodes = append(nodes, n)
	}
	*l = nodes
	return nil
}

// Load reads a model from YAML or JSON. The model is returned as written; run [Model.Link] and
// [Model.Validate] to complete and check it.
func Load(r io.Reader) (*Model, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not read model")
	}
	var f modelFile
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, errors.Wrap(err, "could not parse model")
	}
	for i, n := range f.Nodes {
		if n == nil {
			return nil, errors.Errorf("node at index %d is empty", i)
		}
	}
	return New(f.Nodes...), nil
}

func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer closenicely.OrDebug(f, path)
	m, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	return m, nil
}
