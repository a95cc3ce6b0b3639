package template

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func Test_IntrinsicsLongForm(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantJSON string
	}{
		{
			name:     "ref",
			value:    Ref{Name: "uploads"},
			wantJSON: `{"Ref":"uploads"}`,
		},
		{
			name:     "get att",
			value:    GetAtt{Resource: "orders", Attribute: "StreamArn"},
			wantJSON: `{"Fn::GetAtt":["orders","StreamArn"]}`,
		},
		{
			name:     "join with nested intrinsics",
			value:    Concat(Arn("uploads"), "/*"),
			wantJSON: `{"Fn::Join":["",[{"Fn::GetAtt":["uploads","Arn"]},"/*"]]}`,
		},
		{
			name:     "empty join",
			value:    Join{Delimiter: ","},
			wantJSON: `{"Fn::Join":[",",[]]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)

			j, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.JSONEq(tt.wantJSON, string(j))

			// YAML and JSON must describe the same structure
			y, err := yaml.Marshal(tt.value)
			require.NoError(t, err)
			var fromYAML, fromJSON any
			require.NoError(t, yaml.Unmarshal(y, &fromYAML))
			require.NoError(t, json.Unmarshal([]byte(tt.wantJSON), &fromJSON))
			assert.Equal(fromJSON, fromYAML)
		})
	}
}

func Test_FunctionLogicalID(t *testing.T) {
	tests := map[string]string{
		"resize":        "ResizeLambdaFunction",
		"image-resize":  "ImageDashresizeLambdaFunction",
		"image_resize":  "ImageUnderscoreresizeLambdaFunction",
		"ProcessOrders": "ProcessOrdersLambdaFunction",
	}
	for name, want := range tests {
		assert.Equal(t, want, FunctionLogicalID(name), name)
	}
}

func Test_FirehoseARN(t *testing.T) {
	assert.Equal(t, Join{Values: []any{
		"arn:aws:firehose:", Region, ":", AccountID, ":deliverystream/clicks",
	}}, FirehoseARN("clicks"))
}

func Test_NewDocument(t *testing.T) {
	assert := assert.New(t)
	doc := NewDocument("", "nodejs8.10")
	assert.Equal("serverless", doc.Service)
	assert.Equal(Provider{Name: "aws", Runtime: "nodejs8.10"}, doc.Provider)
	assert.Empty(doc.Functions)
	assert.Empty(doc.Resources.Resources)
	assert.Empty(doc.Resources.Outputs)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(`service: serverless
provider:
    name: aws
    runtime: nodejs8.10
functions: {}
resources:
    Resources: {}
    Outputs: {}
`, string(out))

	doc.AddPlugin(IAMRolesPerFunctionPlugin)
	doc.AddPlugin(IAMRolesPerFunctionPlugin)
	assert.Equal([]string{IAMRolesPerFunctionPlugin}, doc.Plugins)
}

func Test_ResourceAddEvent(t *testing.T) {
	assert := assert.New(t)
	r := &Resource{Type: "AWS::Serverless::Function"}

	assert.NoError(r.AddEvent("Bucketuploads", ResourceEvent{Type: "S3"}))
	assert.NoError(r.AddEvent("Scheduletick", ResourceEvent{Type: "Schedule"}))
	assert.Equal(map[string]ResourceEvent{
		"Bucketuploads": {Type: "S3"},
		"Scheduletick":  {Type: "Schedule"},
	}, r.Properties["Events"])

	r.Properties["Events"] = "bad"
	assert.Error(r.AddEvent("x", ResourceEvent{}))
}

func Test_ResourceAddPolicy(t *testing.T) {
	assert := assert.New(t)
	r := &Resource{Type: "AWS::Serverless::Function"}

	assert.NoError(r.AddPolicy("AmazonS3ReadOnlyAccess"))
	doc := NewPolicyDocument(Allow([]string{"sns:Publish"}, Ref{Name: "alerts"}))
	assert.NoError(r.AddPolicy(doc))
	assert.Equal([]any{"AmazonS3ReadOnlyAccess", doc}, r.Properties["Policies"])
}

func Test_StatementYAML(t *testing.T) {
	stmt := AssumeRolePolicy("firehose.amazonaws.com").Statement[0]
	out, err := yaml.Marshal(stmt)
	require.NoError(t, err)
	assert.Equal(t, `Effect: Allow
Principal:
    Service: firehose.amazonaws.com
Action:
    - sts:AssumeRole
`, string(out))
}
