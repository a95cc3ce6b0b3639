package rules

import (
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/render"
	"github.com/klothoplatform/servgraph/pkg/template"
)

const scheduleRate = "rate(5 minutes)"

// Schedule renders periodic triggers. Nothing invokes a schedule, so it grants no permissions.
type Schedule struct {
	noPolicy
}

func (Schedule) Resource(ctx *render.Context, node *model.Node) error {
	return nil
}

func (Schedule) Event(ctx *render.Context, targetID, sourceID string) error {
	return addEvent(ctx, targetID,
		template.Event{Schedule: scheduleRate},
		resourceEvent{
			name: "Schedule" + sourceID,
			event: template.ResourceEvent{
				Type:       "Schedule",
				Properties: template.Properties{"Schedule": scheduleRate},
			},
		},
	)
}
