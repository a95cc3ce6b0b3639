package rules

import (
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/render"
	"github.com/klothoplatform/servgraph/pkg/template"
	"github.com/pkg/errors"
)

const (
	DeliveryStreamType = "AWS::KinesisFirehose::DeliveryStream"
	RoleType           = "AWS::IAM::Role"
	PolicyType         = "AWS::IAM::Policy"

	firehosePrincipal = "firehose.amazonaws.com"
)

// DeliveryStream renders a Kinesis Firehose delivering into a bucket, optionally transformed by a
// function, together with its delivery role and policy.
type DeliveryStream struct {
	noEvent
}

func DeliveryRoleID(streamID string) string {
	return streamID + "DeliveryRole"
}

func DeliveryPolicyID(streamID string) string {
	return streamID + "DeliveryPolicy"
}

// Resource emits nothing when the stream has no bucket destination. That is recorded as a
// diagnostic and compilation goes on.
func (DeliveryStream) Resource(ctx *render.Context, node *model.Node) error {
	targets, err := targetsByType(ctx, node.To, model.Bucket, model.Fn)
	if err != nil {
		return err
	}
	bucketID, ok := targets[model.Bucket]
	if !ok {
		ctx.Diagnose(node, errors.Wrap(render.ErrMissingDestination, "delivery stream without a bucket destination"))
		return nil
	}
	roleID := DeliveryRoleID(node.ID)
	policyID := DeliveryPolicyID(node.ID)

	destination := template.Properties{
		"BucketARN": template.Arn(bucketID),
		"BufferingHints": template.Properties{
			"IntervalInSeconds": 60,
			"SizeInMBs":         50,
		},
		"CompressionFormat": "UNCOMPRESSED",
		"Prefix":            "firehose/",
		"RoleARN":           template.Arn(roleID),
	}
	if fnID, ok := targets[model.Fn]; ok {
		destination["ProcessingConfiguration"] = template.Properties{
			"Enabled": true,
			"Processors": []template.Properties{{
				"Type": "Lambda",
				"Parameters": []template.Properties{{
					"ParameterName":  "LambdaArn",
					"ParameterValue": template.Arn(template.FunctionLogicalID(fnID)),
				}},
			}},
		}
	}

	ctx.SetResource(node.ID, &template.Resource{
		Type:      DeliveryStreamType,
		DependsOn: []string{policyID},
		Properties: template.Properties{
			"ExtendedS3DestinationConfiguration": destination,
		},
	})

	ctx.SetResource(roleID, &template.Resource{
		Type: RoleType,
		Properties: template.Properties{
			"AssumeRolePolicyDocument": template.NewPolicyDocument(template.Statement{
				Effect:    template.Allowed,
				Principal: &template.Principal{Service: firehosePrincipal},
				Action:    []string{"sts:AssumeRole"},
				Condition: map[string]map[string]any{
					"StringEquals": {"sts:ExternalId": template.AccountID},
				},
			}),
		},
	})

	ctx.SetResource(policyID, &template.Resource{
		Type: PolicyType,
		Properties: template.Properties{
			"PolicyName": "firehose_delivery_policy",
			"PolicyDocument": template.NewPolicyDocument(template.Allow(
				[]string{
					"s3:AbortMultipartUpload",
					"s3:GetBucketLocation",
					"s3:GetObject",
					"s3:ListBucket",
					"s3:ListBucketMultipartUploads",
					"s3:PutObject",
				},
				template.Arn(bucketID),
				template.Concat(template.Arn(bucketID), "/*"),
			)),
			"Roles": []any{template.Ref{Name: roleID}},
		},
	})
	return nil
}

func (DeliveryStream) Policy(ctx *render.Context, sourceID, targetID string) (*template.Statement, error) {
	return statement(
		[]string{"firehose:PutRecord", "firehose:PutRecordBatch"},
		template.FirehoseARN(targetID),
	), nil
}
