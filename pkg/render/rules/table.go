package rules

import (
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/render"
	"github.com/klothoplatform/servgraph/pkg/template"
)

const TableType = "AWS::DynamoDB::Table"

// Table renders DynamoDB tables keyed by `id` and `version`, with a stream of both images.
type Table struct{}

func (Table) Resource(ctx *render.Context, node *model.Node) error {
	ctx.SetResource(node.ID, &template.Resource{
		Type: TableType,
		Properties: template.Properties{
			"AttributeDefinitions": []template.Properties{
				{"AttributeName": "id", "AttributeType": "S"},
				{"AttributeName": "version", "AttributeType": "N"},
			},
			"KeySchema": []template.Properties{
				{"AttributeName": "id", "KeyType": "HASH"},
				{"AttributeName": "version", "KeyType": "RANGE"},
			},
			"BillingMode": "PAY_PER_REQUEST",
			"StreamSpecification": template.Properties{
				"StreamViewType": "NEW_AND_OLD_IMAGES",
			},
		},
	})
	return nil
}

func (Table) Event(ctx *render.Context, targetID, sourceID string) error {
	streamArn := template.GetAtt{Resource: sourceID, Attribute: "StreamArn"}
	return addEvent(ctx, targetID,
		template.Event{Stream: &template.StreamEvent{Type: "dynamodb", Arn: streamArn}},
		resourceEvent{
			name: "Table" + sourceID,
			event: template.ResourceEvent{
				Type:       "DynamoDB",
				Properties: streamEventProperties(streamArn),
			},
		},
	)
}

func (Table) Policy(ctx *render.Context, sourceID, targetID string) (*template.Statement, error) {
	return statement(
		[]string{"dynamodb:GetItem", "dynamodb:PutItem"},
		template.Arn(targetID),
	), nil
}

// streamEventProperties reads from the oldest record in batches of 10.
func streamEventProperties(stream any) template.Properties {
	return template.Properties{
		"Stream":           stream,
		"StartingPosition": "TRIM_HORIZON",
		"BatchSize":        10,
	}
}
