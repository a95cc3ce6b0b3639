package rules

import (
	"encoding/json"

	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/render"
	"github.com/klothoplatform/servgraph/pkg/template"
	"github.com/pkg/errors"
)

const StateMachineType = "AWS::StepFunctions::StateMachine"

type (
	// StepFn renders Step Functions state machines with a placeholder definition. The execution
	// role is expected to exist already.
	StepFn struct {
		noEvent
	}

	stateMachineDefinition struct {
		Comment string                `json:"Comment"`
		StartAt string                `json:"StartAt"`
		States  map[string]passState `json:"States"`
	}

	passState struct {
		Type   string `json:"Type"`
		Result string `json:"Result"`
		End    bool   `json:"End"`
	}
)

var helloWorld = stateMachineDefinition{
	Comment: "A Hello World example",
	StartAt: "HelloWorld",
	States: map[string]passState{
		"HelloWorld": {Type: "Pass", Result: "Hello World!", End: true},
	},
}

func (StepFn) Resource(ctx *render.Context, node *model.Node) error {
	definition, err := json.MarshalIndent(helloWorld, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not marshal state machine definition")
	}
	ctx.SetResource(node.ID, &template.Resource{
		Type: StateMachineType,
		Properties: template.Properties{
			"RoleArn":          template.StatesExecutionRoleARN(),
			"DefinitionString": string(definition),
		},
	})
	return nil
}

func (StepFn) Policy(ctx *render.Context, sourceID, targetID string) (*template.Statement, error) {
	return statement(
		[]string{
			"states:DescribeExecution",
			"states:GetExecutionHistory",
			"states:ListExecutions",
			"states:StartExecution",
			"states:StopExecution",
		},
		template.Ref{Name: targetID},
	), nil
}
