package template

const (
	PolicyVersion = "2012-10-17"

	Allowed = "Allow"
)

type (
	PolicyDocument struct {
		Version   string      `yaml:"Version" json:"Version"`
		Statement []Statement `yaml:"Statement" json:"Statement"`
	}

	Statement struct {
		Sid       string                    `yaml:"Sid,omitempty" json:"Sid,omitempty"`
		Effect    string                    `yaml:"Effect" json:"Effect"`
		Principal *Principal                `yaml:"Principal,omitempty" json:"Principal,omitempty"`
		Action    []string                  `yaml:"Action" json:"Action"`
		Resource  []any                     `yaml:"Resource,omitempty" json:"Resource,omitempty"`
		Condition map[string]map[string]any `yaml:"Condition,omitempty" json:"Condition,omitempty"`
	}

	Principal struct {
		Service   string `yaml:"Service,omitempty" json:"Service,omitempty"`
		Federated string `yaml:"Federated,omitempty" json:"Federated,omitempty"`
	}

	// InlinePolicy is an entry of a role's `Policies` list.
	InlinePolicy struct {
		PolicyName     string         `yaml:"PolicyName" json:"PolicyName"`
		PolicyDocument PolicyDocument `yaml:"PolicyDocument" json:"PolicyDocument"`
	}
)

// Allow builds a statement allowing the actions on the resources.
func Allow(actions []string, resources ...any) Statement {
	return Statement{
		Effect:   Allowed,
		Action:   actions,
		Resource: resources,
	}
}

func NewPolicyDocument(statements ...Statement) PolicyDocument {
	if statements == nil {
		statements = []Statement{}
	}
	return PolicyDocument{
		Version:   PolicyVersion,
		Statement: statements,
	}
}

// AssumeRolePolicy is the trust policy letting the given AWS service assume a role.
func AssumeRolePolicy(service string) PolicyDocument {
	return NewPolicyDocument(Statement{
		Effect:    Allowed,
		Principal: &Principal{Service: service},
		Action:    []string{"sts:AssumeRole"},
	})
}
