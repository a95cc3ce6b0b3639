package rules

import (
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/render"
	"github.com/klothoplatform/servgraph/pkg/template"
)

const StreamType = "AWS::Kinesis::Stream"

// Stream renders single shard Kinesis data streams.
type Stream struct{}

func (Stream) Resource(ctx *render.Context, node *model.Node) error {
	ctx.SetResource(node.ID, &template.Resource{
		Type:       StreamType,
		Properties: template.Properties{"ShardCount": 1},
	})
	return nil
}

func (Stream) Event(ctx *render.Context, targetID, sourceID string) error {
	arn := template.Arn(sourceID)
	return addEvent(ctx, targetID,
		template.Event{Stream: &template.StreamEvent{Type: "kinesis", Arn: arn}},
		resourceEvent{
			name: "Stream" + sourceID,
			event: template.ResourceEvent{
				Type:       "Kinesis",
				Properties: streamEventProperties(arn),
			},
		},
	)
}

func (Stream) Policy(ctx *render.Context, sourceID, targetID string) (*template.Statement, error) {
	return statement(
		[]string{"kinesis:PutRecord", "kinesis:PutRecords"},
		template.Arn(targetID),
	), nil
}
