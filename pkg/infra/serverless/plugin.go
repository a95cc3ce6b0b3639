// Package serverless writes the Serverless Framework service definition.
package serverless

import (
	"bytes"
	"encoding/json"
	"sync"

	kio "github.com/klothoplatform/servgraph/pkg/io"
	"github.com/klothoplatform/servgraph/pkg/template"
	"github.com/klothoplatform/servgraph/pkg/yaml_util"
	"github.com/pkg/errors"
)

type (
	Format string

	Plugin struct {
		Format Format
	}
)

const (
	YAML Format = "yaml"
	JSON Format = "json"

	DefaultFormat = YAML
)

var bufPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return DefaultFormat, nil
	case YAML, JSON:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", errors.Errorf("unsupported format %q (supported: %s, %s)", s, YAML, JSON)
	}
}

func (p Plugin) Name() string {
	return "serverless"
}

// FileName is the name the Serverless Framework looks for the service definition under.
func (p Plugin) FileName() string {
	if p.Format == JSON {
		return "serverless.json"
	}
	return "serverless.yml"
}

// Translate serializes the document and returns it along with the other files, sorted by path.
func (p Plugin) Translate(doc *template.Document, files map[string]string) ([]kio.File, error) {
	content, err := p.Serialize(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "could not serialize %s", p.FileName())
	}
	if _, ok := files[p.FileName()]; ok {
		return nil, errors.Errorf("file %s would overwrite the service definition", p.FileName())
	}

	out := kio.FromMap(files)
	out = append(out, &kio.RawFile{FPath: p.FileName(), Content: content})
	kio.SortByPath(out)
	return out, nil
}

func (p Plugin) Serialize(doc *template.Document) ([]byte, error) {
	switch p.Format {
	case JSON:
		buf := bufPool.Get().(*bytes.Buffer)
		defer func() {
			buf.Reset()
			bufPool.Put(buf)
		}()
		enc := json.NewEncoder(buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		return bytes.Clone(buf.Bytes()), nil

	case YAML, "":
		content, err := yaml_util.Marshal(doc)
		if err != nil {
			return nil, err
		}
		return yaml_util.UnquoteDirectives(content)

	default:
		return nil, errors.Errorf("unsupported format %q", p.Format)
	}
}
