package rules

import (
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/render"
	"github.com/klothoplatform/servgraph/pkg/template"
)

const (
	TopicRuleType  = "AWS::IoT::TopicRule"
	PermissionType = "AWS::Lambda::Permission"

	iotPrincipal = "iot.amazonaws.com"
	topicRuleSQL = "SELECT temp FROM 'Some/Topic' WHERE temp > 60"
	republishTo  = "Output/Topic"
)

// IotRule renders IoT topic rules. Rules start disabled; each outgoing edge adds an action.
type IotRule struct {
	noEvent
	noPolicy
}

func PublishRoleID(ruleID string) string {
	return ruleID + "PublishRole"
}

func InvokePermissionID(ruleID, fnID string) string {
	return ruleID + template.NormalizeName(fnID) + "InvokePermission"
}

// Resource fails with an UnsupportedConnectionError for targets other than functions and rules.
// Unlike a delivery stream without a bucket, this aborts the compilation.
func (IotRule) Resource(ctx *render.Context, node *model.Node) error {
	actions := []template.Properties{}
	for _, dst := range node.To {
		t, err := ctx.Model.TypeOf(dst)
		if err != nil {
			return err
		}
		switch t {
		case model.Fn:
			fnArn := template.Arn(template.FunctionLogicalID(dst))
			actions = append(actions, template.Properties{
				"Lambda": template.Properties{"FunctionArn": fnArn},
			})
			ctx.SetResource(InvokePermissionID(node.ID, dst), &template.Resource{
				Type: PermissionType,
				Properties: template.Properties{
					"Action":       "lambda:InvokeFunction",
					"FunctionName": fnArn,
					"Principal":    iotPrincipal,
					"SourceArn":    template.Arn(node.ID),
				},
			})

		case model.IotRule:
			roleID := PublishRoleID(dst)
			actions = append(actions, template.Properties{
				"Republish": template.Properties{
					"Topic":   republishTo,
					"RoleArn": template.Arn(roleID),
				},
			})
			ctx.SetResource(roleID, &template.Resource{
				Type: RoleType,
				Properties: template.Properties{
					"AssumeRolePolicyDocument": template.AssumeRolePolicy(iotPrincipal),
					"Policies": []template.InlinePolicy{{
						PolicyName: "publish",
						PolicyDocument: template.NewPolicyDocument(template.Allow(
							[]string{"iot:Publish"},
							template.IoTTopicARN("Output/*"),
						)),
					}},
				},
			})

		default:
			return &render.UnsupportedConnectionError{Source: node.ID, Target: dst, TargetType: t}
		}
	}

	payload := template.Properties{
		"RuleDisabled": true,
		"Sql":          topicRuleSQL,
		"Actions":      actions,
	}
	if node.Description != "" {
		payload["Description"] = node.Description
	}
	ctx.SetResource(node.ID, &template.Resource{
		Type:       TopicRuleType,
		Properties: template.Properties{"TopicRulePayload": payload},
	})
	return nil
}
