package rules

import (
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/render"
	"github.com/klothoplatform/servgraph/pkg/template"
)

const proxyPath = "/{proxy+}"

// Api renders API Gateway endpoints. The API itself is created by the framework from the
// functions' http events, so it has no resource of its own.
type Api struct{}

func (Api) Resource(ctx *render.Context, node *model.Node) error {
	return nil
}

func (Api) Event(ctx *render.Context, targetID, sourceID string) error {
	return addEvent(ctx, targetID,
		template.Event{HTTP: &template.HTTPEvent{Path: proxyPath, Method: "any"}},
		resourceEvent{
			name: "Api" + sourceID,
			event: template.ResourceEvent{
				Type: "Api",
				Properties: template.Properties{
					"Path":   proxyPath,
					"Method": "ANY",
				},
			},
		},
	)
}

func (Api) Policy(ctx *render.Context, sourceID, targetID string) (*template.Statement, error) {
	return statement([]string{"execute-api:Invoke"}, template.ExecuteAPIWildcardARN()), nil
}
