package rules

import (
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/render"
	"github.com/klothoplatform/servgraph/pkg/template"
)

const (
	AnalyticsApplicationType = "AWS::KinesisAnalytics::Application"
	AnalyticsOutputType      = "AWS::KinesisAnalytics::ApplicationOutput"

	analyticsPrincipal = "kinesisanalytics.amazonaws.com"
)

// AnalyticsStream renders a Kinesis Analytics application reading from at most one stream or
// delivery stream and writing to at most one of each. Every input and output is optional.
type AnalyticsStream struct {
	noEvent
	noPolicy
}

func AnalyticsRoleID(appID string) string {
	return appID + "Role"
}

func AnalyticsOutputID(appID string) string {
	return appID + "Outputs"
}

func (AnalyticsStream) Resource(ctx *render.Context, node *model.Node) error {
	inputs, err := targetsByType(ctx, node.From, model.Stream, model.DeliveryStream)
	if err != nil {
		return err
	}
	outputs, err := targetsByType(ctx, node.To, model.Stream, model.DeliveryStream)
	if err != nil {
		return err
	}
	roleID := AnalyticsRoleID(node.ID)
	outputID := AnalyticsOutputID(node.ID)
	roleArn := template.Arn(roleID)

	input := template.Properties{
		"NamePrefix": "exampleNamePrefix",
		"InputSchema": template.Properties{
			"RecordColumns": []template.Properties{{
				"Name":    "example",
				"SqlType": "VARCHAR(16)",
				"Mapping": "$.example",
			}},
			"RecordFormat": template.Properties{
				"RecordFormatType": "JSON",
				"MappingParameters": template.Properties{
					"JSONMappingParameters": template.Properties{"RecordRowPath": "$"},
				},
			},
		},
	}
	if id, ok := inputs[model.Stream]; ok {
		input["KinesisStreamsInput"] = template.Properties{"ResourceARN": template.Arn(id), "RoleARN": roleArn}
	}
	if id, ok := inputs[model.DeliveryStream]; ok {
		input["KinesisFirehoseInput"] = template.Properties{"ResourceARN": template.FirehoseARN(id), "RoleARN": roleArn}
	}

	app := template.Properties{
		"ApplicationName": node.ID,
		"Inputs":          []template.Properties{input},
	}
	if node.Description != "" {
		app["ApplicationDescription"] = node.Description
	}
	ctx.SetResource(node.ID, &template.Resource{Type: AnalyticsApplicationType, Properties: app})

	// The application's role is deliberately wide open.
	ctx.SetResource(roleID, &template.Resource{
		Type: RoleType,
		Properties: template.Properties{
			"AssumeRolePolicyDocument": template.AssumeRolePolicy(analyticsPrincipal),
			"Path":                     "/",
			"Policies": []template.InlinePolicy{{
				PolicyName:     "Open",
				PolicyDocument: template.NewPolicyDocument(template.Allow([]string{"*"}, "*")),
			}},
		},
	})

	output := template.Properties{
		"Name":              "exampleOutput",
		"DestinationSchema": template.Properties{"RecordFormatType": "CSV"},
	}
	if id, ok := outputs[model.Stream]; ok {
		output["KinesisStreamsOutput"] = template.Properties{"ResourceARN": template.Arn(id), "RoleARN": roleArn}
	}
	if id, ok := outputs[model.DeliveryStream]; ok {
		output["KinesisFirehoseOutput"] = template.Properties{"ResourceARN": template.FirehoseARN(id), "RoleARN": roleArn}
	}
	ctx.SetResource(outputID, &template.Resource{
		Type:      AnalyticsOutputType,
		DependsOn: []string{node.ID},
		Properties: template.Properties{
			"ApplicationName": template.Ref{Name: node.ID},
			"Output":          output,
		},
	})
	return nil
}
