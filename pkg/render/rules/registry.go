package rules

import (
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/render"
)

var (
	_ render.Rules = Bucket{}
	_ render.Rules = Table{}
	_ render.Rules = Api{}
	_ render.Rules = Stream{}
	_ render.Rules = DeliveryStream{}
	_ render.Rules = AnalyticsStream{}
	_ render.Rules = Schedule{}
	_ render.Rules = Topic{}
	_ render.Rules = Fn{}
	_ render.Rules = StepFn{}
	_ render.Rules = CognitoIdentity{}
	_ render.Rules = IotRule{}
)

// Default returns a registry with the rules of every node type.
func Default() render.Registry {
	return render.Registry{
		model.Bucket:          Bucket{},
		model.Table:           Table{},
		model.Api:             Api{},
		model.Stream:          Stream{},
		model.DeliveryStream:  DeliveryStream{},
		model.AnalyticsStream: AnalyticsStream{},
		model.Schedule:        Schedule{},
		model.Topic:           Topic{},
		model.Fn:              Fn{},
		model.StepFn:          StepFn{},
		model.CognitoIdentity: CognitoIdentity{},
		model.IotRule:         IotRule{},
	}
}
