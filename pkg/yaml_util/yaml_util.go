package yaml_util

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type CheckMode bool

const (
	Lenient = CheckMode(false)
	Strict  = CheckMode(true)

	Indent = 2
)

// intrinsicTags are the CloudFormation short form intrinsics.
var intrinsicTags = []string{
	"Base64", "Cidr", "Condition", "And", "Equals", "If", "Not", "Or", "FindInMap",
	"GetAtt", "GetAZs", "ImportValue", "Join", "Select", "Split", "Sub", "Transform", "Ref",
}

// Marshal encodes v with the indentation used for every generated document.
func Marshal(v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(Indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnquoteDirectives turns string scalars written as an intrinsic, such as `'!Ref MyBucket'`, into
// tagged nodes (`!Ref MyBucket`). Left as strings they would be read back as plain text instead of
// intrinsics. A flow collection after the tag, as in `!Join ['', [a, b]]`, becomes a tagged
// collection.
func UnquoteDirectives(content []byte) ([]byte, error) {
	if strings.TrimSpace(string(content)) == "" {
		return content, nil
	}
	var tree yaml.Node
	if err := yaml.Unmarshal(content, &tree); err != nil {
		return nil, err
	}
	if !tagDirectives(&tree) {
		return content, nil
	}
	return Marshal(&tree)
}

// tagDirectives rewrites the directive scalars under node in place and reports whether any was found.
func tagDirectives(node *yaml.Node) bool {
	changed := false
	for i, child := range node.Content {
		if node.Kind == yaml.MappingNode && i%2 == 0 {
			continue // keys
		}
		if child.Kind != yaml.ScalarNode {
			if tagDirectives(child) {
				changed = true
			}
			continue
		}
		if child.Tag != "!!str" {
			continue
		}
		tag, rest, ok := splitDirective(child.Value)
		if !ok {
			continue
		}
		node.Content[i] = directiveNode(child, tag, rest)
		changed = true
	}
	return changed
}

func splitDirective(value string) (tag, rest string, ok bool) {
	if !strings.HasPrefix(value, "!") {
		return "", "", false
	}
	name, rest, found := strings.Cut(value[1:], " ")
	if !found {
		return "", "", false
	}
	for _, t := range intrinsicTags {
		if t == name {
			return "!" + name, strings.TrimSpace(rest), true
		}
	}
	return "", "", false
}

// directiveNode builds the tagged replacement for scalar. The rest of the value is read as YAML
// so quoting and flow collections keep their meaning; anything else stays a plain scalar.
func directiveNode(scalar *yaml.Node, tag, rest string) *yaml.Node {
	tagged := &yaml.Node{
		Kind:        yaml.ScalarNode,
		Tag:         tag,
		Value:       rest,
		Line:        scalar.Line,
		Column:      scalar.Column,
		HeadComment: scalar.HeadComment,
		LineComment: scalar.LineComment,
		FootComment: scalar.FootComment,
	}

	var parsed yaml.Node
	if err := yaml.Unmarshal([]byte(rest), &parsed); err != nil || len(parsed.Content) == 0 {
		return tagged
	}
	value := parsed.Content[0]
	switch {
	case value.Kind == yaml.ScalarNode:
		tagged.Value = value.Value
	case value.Style&yaml.FlowStyle != 0:
		value.Tag = tag
		value.Line, value.Column = scalar.Line, scalar.Column
		value.LineComment = scalar.LineComment
		return value
	}
	return tagged
}

// SetValue upserts the value the content yaml to a given value, specified by a dotted path. For example, setting
// `provider.region` to `eu-west-1` is equivalent to upserting the following yaml:
//
//	provider:
//	  region: eu-west-1
//
// This method will make a best effort to preserve comments, as per the `yaml` package's abilities. You may overwrite
// scalars, but you may not overwrite a non-scalar. You may also specify a path that doesn't exist in the source yaml,
// as long as none of the paths correspond to existing elements other than yaml mappings.
func SetValue(content []byte, optionPath string, optionValue string) ([]byte, error) {
	var tree yaml.Node
	if err := yaml.Unmarshal(content, &tree); err != nil {
		return nil, err
	}

	segments := strings.Split(optionPath, ".")
	var topNode *yaml.Node
	if len(tree.Content) == 0 {
		topNode = &yaml.Node{Kind: yaml.MappingNode}
	} else {
		topNode = tree.Content[0] // the tree's root is a DocumentNode; we assume one document
	}
	setOptionAtNode := topNode
	for _, segment := range segments[:len(segments)-1] {
		if setOptionAtNode.Kind != yaml.MappingNode {
			return nil, errors.Errorf(`can't set the path "%s"`, optionPath)
		}
		if child := findChild(setOptionAtNode.Content, segment); child != nil {
			setOptionAtNode = child
		} else {
			newSubMap := &yaml.Node{Kind: yaml.MappingNode}
			setOptionAtNode.Content = append(setOptionAtNode.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: segment},
				newSubMap,
			)
			setOptionAtNode = newSubMap
		}
	}

	if setOptionAtNode.Kind != yaml.MappingNode {
		return nil, errors.Errorf(`can't set the path "%s"`, optionPath)
	}
	lastSegment := segments[len(segments)-1]
	if currValue := findChild(setOptionAtNode.Content, lastSegment); currValue != nil {
		if currValue.Kind != yaml.ScalarNode {
			return nil, errors.Errorf(`"%s" cannot be a scalar`, optionPath)
		}
		currValue.Tag = "" // if the existing type isn't a string, we want to reset it
		currValue.Style = 0
		currValue.Value = optionValue
	} else {
		setOptionAtNode.Content = append(setOptionAtNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: lastSegment},
			&yaml.Node{Kind: yaml.ScalarNode, Value: optionValue},
		)
	}

	return Marshal(topNode)
}

// CheckValid validates that the given yaml actually represents the type provided, and returns a non-nil error
// describing the problem if it doesn't. You need to explicitly provide the type to be checked:
//
//	CheckValid[MyCoolType](contents)
//
// The strict flag governs whether the check will allow unknown fields.
func CheckValid[T any](content []byte, mode CheckMode) error {
	if strings.TrimSpace(string(content)) == "" {
		// the decoder will fail on this (EOF), but we want to consider it valid yaml
		return nil
	}
	var ignored T
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(bool(mode))
	return decoder.Decode(&ignored)
}

// YamlErrors returns the yaml.TypeError errors if the given err is a TypeError; otherwise, it just returns a
// single-element array of the given error's string (disregarding any wrapped errors).
func YamlErrors(err error) []string {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return typeErr.Errors
	}
	return []string{err.Error()}
}

func findChild(within []*yaml.Node, named string) *yaml.Node {
	for i := 0; i < len(within); i += 2 {
		node := within[i]
		if node.Kind == yaml.ScalarNode && node.Value == named {
			return within[i+1]
		}
	}
	return nil
}
