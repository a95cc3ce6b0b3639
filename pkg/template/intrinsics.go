package template

import "encoding/json"

type (
	// Ref is the CloudFormation `Ref` intrinsic. For most resources it resolves to the physical name,
	// for SNS topics and state machines to the ARN.
	Ref struct {
		Name string
	}

	// GetAtt is the `Fn::GetAtt` intrinsic.
	GetAtt struct {
		Resource  string
		Attribute string
	}

	// Join is the `Fn::Join` intrinsic. Values may be strings or other intrinsics.
	Join struct {
		Delimiter string
		Values    []any
	}
)

var (
	AccountID = Ref{Name: "AWS::AccountId"}
	Region    = Ref{Name: "AWS::Region"}
)

func Arn(resource string) GetAtt {
	return GetAtt{Resource: resource, Attribute: "Arn"}
}

func Concat(values ...any) Join {
	return Join{Values: values}
}

func (r Ref) longForm() map[string]any {
	return map[string]any{"Ref": r.Name}
}

func (r Ref) MarshalYAML() (any, error) {
	return r.longForm(), nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.longForm())
}

func (g GetAtt) longForm() map[string]any {
	return map[string]any{"Fn::GetAtt": []string{g.Resource, g.Attribute}}
}

func (g GetAtt) MarshalYAML() (any, error) {
	return g.longForm(), nil
}

func (g GetAtt) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.longForm())
}

func (j Join) longForm() map[string]any {
	values := j.Values
	if values == nil {
		values = []any{}
	}
	return map[string]any{"Fn::Join": []any{j.Delimiter, values}}
}

func (j Join) MarshalYAML() (any, error) {
	return j.longForm(), nil
}

func (j Join) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.longForm())
}
