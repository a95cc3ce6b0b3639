package rules

import (
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/render"
	"github.com/klothoplatform/servgraph/pkg/template"
)

const TopicType = "AWS::SNS::Topic"

// Topic renders SNS topics.
type Topic struct{}

func (Topic) Resource(ctx *render.Context, node *model.Node) error {
	ctx.SetResource(node.ID, &template.Resource{Type: TopicType})
	return nil
}

func (Topic) Event(ctx *render.Context, targetID, sourceID string) error {
	return addEvent(ctx, targetID,
		template.Event{SNS: sourceID},
		resourceEvent{
			name: "Topic" + sourceID,
			event: template.ResourceEvent{
				Type:       "SNS",
				Properties: template.Properties{"Topic": template.Ref{Name: sourceID}},
			},
		},
	)
}

// Policy grants publishing. A topic's Ref is its ARN.
func (Topic) Policy(ctx *render.Context, sourceID, targetID string) (*template.Statement, error) {
	return statement([]string{"sns:Publish"}, template.Ref{Name: targetID}), nil
}
