package rules

import (
	"testing"

	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/render"
	"github.com/klothoplatform/servgraph/pkg/template"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func Test_DeliveryStream(t *testing.T) {
	tests := []struct {
		name          string
		to            []string
		wantProcessor bool
	}{
		{name: "bucket only", to: []string{"archive"}},
		{name: "bucket and processor", to: []string{"transform", "archive"}, wantProcessor: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			ctx := newContext(t,
				&model.Node{ID: "firehose", Type: model.DeliveryStream, To: tt.to},
				&model.Node{ID: "archive", Type: model.Bucket},
				&model.Node{ID: "transform", Type: model.Fn},
			)
			require.NoError(t, renderAll(ctx))
			assert.NoError(ctx.Diagnostics.ErrOrNil())

			stream, err := ctx.Resource("firehose")
			require.NoError(t, err)
			assert.Equal(DeliveryStreamType, stream.Type)
			assert.Equal([]string{"firehoseDeliveryPolicy"}, stream.DependsOn)

			dest, ok := stream.Properties["ExtendedS3DestinationConfiguration"].(template.Properties)
			require.True(t, ok)
			assert.Equal(template.Arn("archive"), dest["BucketARN"])
			assert.Equal(template.Arn("firehoseDeliveryRole"), dest["RoleARN"])
			assert.Equal("firehose/", dest["Prefix"])

			if tt.wantProcessor {
				processing, ok := dest["ProcessingConfiguration"].(template.Properties)
				require.True(t, ok)
				processors := processing["Processors"].([]template.Properties)
				params := processors[0]["Parameters"].([]template.Properties)
				assert.Equal(template.Arn("TransformLambdaFunction"), params[0]["ParameterValue"])
			} else {
				assert.NotContains(dest, "ProcessingConfiguration")
			}

			role, err := ctx.Resource("firehoseDeliveryRole")
			require.NoError(t, err)
			assert.Equal(RoleType, role.Type)
			trust := role.Properties["AssumeRolePolicyDocument"].(template.PolicyDocument)
			assert.Equal("firehose.amazonaws.com", trust.Statement[0].Principal.Service)

			policy, err := ctx.Resource("firehoseDeliveryPolicy")
			require.NoError(t, err)
			assert.Equal(PolicyType, policy.Type)
			assert.Equal([]any{template.Ref{Name: "firehoseDeliveryRole"}}, policy.Properties["Roles"])
		})
	}
}

func Test_DeliveryStreamWithoutBucket(t *testing.T) {
	assert := assert.New(t)
	core, logs := observer.New(zap.WarnLevel)
	ctx := newContext(t,
		&model.Node{ID: "firehose", Type: model.DeliveryStream, To: []string{"transform"}},
		&model.Node{ID: "transform", Type: model.Fn},
		&model.Node{ID: "orders", Type: model.Table},
	)
	ctx.Log = zap.New(core)

	require.NoError(t, renderAll(ctx), "a missing destination does not abort rendering")

	resources := ctx.Document.Resources.Resources
	assert.NotContains(resources, "firehose")
	assert.NotContains(resources, "firehoseDeliveryRole")
	assert.NotContains(resources, "firehoseDeliveryPolicy")
	assert.Contains(resources, "orders")
	assert.Contains(ctx.Document.Functions, "transform")

	assert.True(errors.Is(ctx.Diagnostics.ErrOrNil(), render.ErrMissingDestination))
	entries := logs.TakeAll()
	if assert.Len(entries, 1) {
		assert.Contains(entries[0].Message, `deliveryStream "firehose"`)
	}
}

func Test_AnalyticsStream(t *testing.T) {
	tests := []struct {
		name        string
		node        *model.Node
		wantInputs  []string
		wantOutputs []string
	}{
		{
			name: "unconnected",
			node: &model.Node{ID: "app"},
		},
		{
			name:        "stream to stream",
			node:        &model.Node{ID: "app", From: []string{"in"}, To: []string{"out"}},
			wantInputs:  []string{"KinesisStreamsInput"},
			wantOutputs: []string{"KinesisStreamsOutput"},
		},
		{
			name:        "delivery streams",
			node:        &model.Node{ID: "app", From: []string{"fhIn"}, To: []string{"fhOut"}},
			wantInputs:  []string{"KinesisFirehoseInput"},
			wantOutputs: []string{"KinesisFirehoseOutput"},
		},
		{
			name:        "everything",
			node:        &model.Node{ID: "app", From: []string{"in", "fhIn"}, To: []string{"out", "fhOut"}},
			wantInputs:  []string{"KinesisStreamsInput", "KinesisFirehoseInput"},
			wantOutputs: []string{"KinesisStreamsOutput", "KinesisFirehoseOutput"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			tt.node.Type = model.AnalyticsStream
			tt.node.Description = "Counts clicks"
			ctx := newContext(t,
				tt.node,
				&model.Node{ID: "in", Type: model.Stream},
				&model.Node{ID: "out", Type: model.Stream},
				&model.Node{ID: "fhIn", Type: model.DeliveryStream},
				&model.Node{ID: "fhOut", Type: model.DeliveryStream},
			)
			require.NoError(t, AnalyticsStream{}.Resource(ctx, tt.node))

			app, err := ctx.Resource("app")
			require.NoError(t, err)
			assert.Equal(AnalyticsApplicationType, app.Type)
			assert.Equal("app", app.Properties["ApplicationName"])
			assert.Equal("Counts clicks", app.Properties["ApplicationDescription"])
			input := app.Properties["Inputs"].([]template.Properties)[0]
			for _, key := range []string{"KinesisStreamsInput", "KinesisFirehoseInput"} {
				if contains(tt.wantInputs, key) {
					assert.Contains(input, key)
				} else {
					assert.NotContains(input, key)
				}
			}

			out, err := ctx.Resource("appOutputs")
			require.NoError(t, err)
			assert.Equal(AnalyticsOutputType, out.Type)
			assert.Equal([]string{"app"}, out.DependsOn)
			output := out.Properties["Output"].(template.Properties)
			for _, key := range []string{"KinesisStreamsOutput", "KinesisFirehoseOutput"} {
				if contains(tt.wantOutputs, key) {
					assert.Contains(output, key)
				} else {
					assert.NotContains(output, key)
				}
			}
			if contains(tt.wantOutputs, "KinesisFirehoseOutput") {
				fh := output["KinesisFirehoseOutput"].(template.Properties)
				assert.Equal(template.FirehoseARN("fhOut"), fh["ResourceARN"])
			}

			role, err := ctx.Resource("appRole")
			require.NoError(t, err)
			policies := role.Properties["Policies"].([]template.InlinePolicy)
			assert.Equal("Open", policies[0].PolicyName)
			assert.Equal([]string{"*"}, policies[0].PolicyDocument.Statement[0].Action)
		})
	}
}

func Test_AnalyticsStreamWithoutDescription(t *testing.T) {
	node := &model.Node{ID: "app", Type: model.AnalyticsStream}
	ctx := newContext(t, node)
	require.NoError(t, AnalyticsStream{}.Resource(ctx, node))

	app, err := ctx.Resource("app")
	require.NoError(t, err)
	assert.NotContains(t, app.Properties, "ApplicationDescription")
}

func Test_CognitoIdentity(t *testing.T) {
	assert := assert.New(t)
	core, logs := observer.New(zap.WarnLevel)
	ctx := newContext(t,
		&model.Node{ID: "pool", Type: model.CognitoIdentity, To: []string{"orders", "cron", "alerts"}},
		&model.Node{ID: "orders", Type: model.Table},
		&model.Node{ID: "cron", Type: model.Schedule},
		&model.Node{ID: "alerts", Type: model.Topic},
	)
	ctx.Log = zap.New(core)
	require.NoError(t, renderAll(ctx))

	pool, err := ctx.Resource("pool")
	require.NoError(t, err)
	assert.Equal(IdentityPoolType, pool.Type)
	assert.Equal(true, pool.Properties["AllowUnauthenticatedIdentities"])

	role, err := ctx.Resource("poolCognitoUnauthRole")
	require.NoError(t, err)
	trust := role.Properties["AssumeRolePolicyDocument"].(template.PolicyDocument)
	assert.Equal("cognito-identity.amazonaws.com", trust.Statement[0].Principal.Federated)
	assert.Equal(template.Ref{Name: "pool"}, trust.Statement[0].Condition["StringEquals"]["cognito-identity.amazonaws.com:aud"])

	policy, err := ctx.Resource("poolCognitoUnauthPolicy")
	require.NoError(t, err)
	doc := policy.Properties["PolicyDocument"].(template.PolicyDocument)
	if assert.Len(doc.Statement, 2) {
		assert.Equal([]string{"dynamodb:GetItem", "dynamodb:PutItem"}, doc.Statement[0].Action)
		assert.Equal([]string{"sns:Publish"}, doc.Statement[1].Action)
	}

	attachment, err := ctx.Resource("poolRoleAttachment")
	require.NoError(t, err)
	assert.Equal(template.Ref{Name: "pool"}, attachment.Properties["IdentityPoolId"])

	assert.True(errors.Is(ctx.Diagnostics.ErrOrNil(), render.ErrNoPolicy))
	assert.Equal(1, logs.Len())
}

func Test_CognitoIdentityWithoutTargets(t *testing.T) {
	node := &model.Node{ID: "pool", Type: model.CognitoIdentity}
	ctx := newContext(t, node)
	require.NoError(t, CognitoIdentity{}.Resource(ctx, node))

	policy, err := ctx.Resource("poolCognitoUnauthPolicy")
	require.NoError(t, err)
	doc := policy.Properties["PolicyDocument"].(template.PolicyDocument)
	assert.NotNil(t, doc.Statement)
	assert.Empty(t, doc.Statement)
}

func Test_IotRule(t *testing.T) {
	assert := assert.New(t)
	ctx := newContext(t,
		&model.Node{ID: "rule", Type: model.IotRule, Description: "Too hot", To: []string{"alarm-handler", "forward"}},
		&model.Node{ID: "alarm-handler", Type: model.Fn},
		&model.Node{ID: "forward", Type: model.IotRule},
	)
	require.NoError(t, renderAll(ctx))

	rule, err := ctx.Resource("rule")
	require.NoError(t, err)
	assert.Equal(TopicRuleType, rule.Type)
	payload := rule.Properties["TopicRulePayload"].(template.Properties)
	assert.Equal(true, payload["RuleDisabled"])
	assert.Equal("Too hot", payload["Description"])
	assert.Equal([]template.Properties{
		{"Lambda": template.Properties{"FunctionArn": template.Arn("AlarmDashhandlerLambdaFunction")}},
		{"Republish": template.Properties{"Topic": "Output/Topic", "RoleArn": template.Arn("forwardPublishRole")}},
	}, payload["Actions"])

	permission, err := ctx.Resource("ruleAlarmDashhandlerInvokePermission")
	require.NoError(t, err)
	assert.Equal(PermissionType, permission.Type)
	assert.Equal(template.Arn("rule"), permission.Properties["SourceArn"])

	role, err := ctx.Resource("forwardPublishRole")
	require.NoError(t, err)
	policies := role.Properties["Policies"].([]template.InlinePolicy)
	assert.Equal(
		[]any{template.IoTTopicARN("Output/*")},
		policies[0].PolicyDocument.Statement[0].Resource,
	)

	forward, err := ctx.Resource("forward")
	require.NoError(t, err)
	assert.Equal([]template.Properties{}, forward.Properties["TopicRulePayload"].(template.Properties)["Actions"])
	assert.NotContains(forward.Properties["TopicRulePayload"], "Description")
}

func Test_IotRuleUnsupportedTarget(t *testing.T) {
	assert := assert.New(t)
	node := &model.Node{ID: "rule", Type: model.IotRule, To: []string{"orders"}}
	ctx := newContext(t, node, &model.Node{ID: "orders", Type: model.Table})

	err := IotRule{}.Resource(ctx, node)

	var unsupported *render.UnsupportedConnectionError
	if assert.True(errors.As(err, &unsupported)) {
		assert.Equal(model.Table, unsupported.TargetType)
		assert.Equal("orders", unsupported.Target)
	}
	assert.Contains(err.Error(), "(table)")
	assert.NotContains(ctx.Document.Resources.Resources, "rule")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
