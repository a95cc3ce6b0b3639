package logging

import (
	"github.com/klothoplatform/servgraph/pkg/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	nodeField struct {
		n *model.Node
	}

	edgeField struct {
		from, to string
	}

	fileField struct {
		path string
		size int
	}
)

func (f nodeField) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("id", f.n.ID)
	enc.AddString("type", string(f.n.Type))
	if len(f.n.From) > 0 {
		enc.AddInt("in", len(f.n.From))
	}
	if len(f.n.To) > 0 {
		enc.AddInt("out", len(f.n.To))
	}
	return nil
}

func NodeField(n *model.Node) zap.Field {
	return zap.Object("node", nodeField{n: n})
}

func (f edgeField) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("from", f.from)
	enc.AddString("to", f.to)
	return nil
}

func EdgeField(from, to string) zap.Field {
	return zap.Object("edge", edgeField{from: from, to: to})
}

func (f fileField) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("path", f.path)
	enc.AddInt("bytes", f.size)
	return nil
}

// FileField describes an output file by its path and size.
func FileField(path string, size int) zap.Field {
	return zap.Object("file", fileField{path: path, size: size})
}
