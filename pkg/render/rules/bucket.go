package rules

import (
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/render"
	"github.com/klothoplatform/servgraph/pkg/template"
)

const (
	BucketType = "AWS::S3::Bucket"

	objectCreated = "s3:ObjectCreated:*"
	// s3ReadOnly is granted to composite targets instead of a bucket scoped policy, which would be a
	// circular dependency.
	s3ReadOnly = "AmazonS3ReadOnlyAccess"
)

// Bucket renders S3 buckets.
type Bucket struct{}

func (Bucket) Resource(ctx *render.Context, node *model.Node) error {
	ctx.SetResource(node.ID, &template.Resource{Type: BucketType})
	return nil
}

func (Bucket) Event(ctx *render.Context, targetID, sourceID string) error {
	return addEvent(ctx, targetID,
		template.Event{S3: &template.S3Event{Bucket: sourceID, Event: objectCreated}},
		resourceEvent{
			name: "Bucket" + sourceID,
			event: template.ResourceEvent{
				Type: "S3",
				Properties: template.Properties{
					"Bucket": template.Ref{Name: sourceID},
					"Events": objectCreated,
				},
			},
			policies: []any{s3ReadOnly},
		},
	)
}

func (Bucket) Policy(ctx *render.Context, sourceID, targetID string) (*template.Statement, error) {
	return statement(
		[]string{"s3:GetObject", "s3:PutObject"},
		template.Concat(template.Arn(targetID), "/*"),
	), nil
}
