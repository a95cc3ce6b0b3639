package rules

import (
	"github.com/klothoplatform/servgraph/pkg/model"
	"github.com/klothoplatform/servgraph/pkg/render"
	"github.com/klothoplatform/servgraph/pkg/template"
)

const (
	IdentityPoolType               = "AWS::Cognito::IdentityPool"
	IdentityPoolRoleAttachmentType = "AWS::Cognito::IdentityPoolRoleAttachment"

	cognitoPrincipal = "cognito-identity.amazonaws.com"
)

// CognitoIdentity renders an identity pool whose unauthenticated identities may use every target
// of the node.
type CognitoIdentity struct {
	noEvent
	noPolicy
}

func UnauthRoleID(poolID string) string {
	return poolID + "CognitoUnauthRole"
}

func UnauthPolicyID(poolID string) string {
	return poolID + "CognitoUnauthPolicy"
}

func RoleAttachmentID(poolID string) string {
	return poolID + "RoleAttachment"
}

func (CognitoIdentity) Resource(ctx *render.Context, node *model.Node) error {
	roleID := UnauthRoleID(node.ID)

	ctx.SetResource(node.ID, &template.Resource{
		Type: IdentityPoolType,
		// TODO: unauthenticated access should become a node option rather than the default.
		Properties: template.Properties{"AllowUnauthenticatedIdentities": true},
	})

	ctx.SetResource(roleID, &template.Resource{
		Type: RoleType,
		Properties: template.Properties{
			"AssumeRolePolicyDocument": template.NewPolicyDocument(template.Statement{
				Effect:    template.Allowed,
				Principal: &template.Principal{Federated: cognitoPrincipal},
				Action:    []string{"sts:AssumeRoleWithWebIdentity"},
				Condition: map[string]map[string]any{
					"StringEquals": {
						cognitoPrincipal + ":aud": template.Ref{Name: node.ID},
					},
					"ForAnyValue:StringLike": {
						cognitoPrincipal + ":amr": "unauthenticated",
					},
				},
			}),
		},
	})

	statements, err := collectPolicies(ctx, node)
	if err != nil {
		return err
	}
	ctx.SetResource(UnauthPolicyID(node.ID), &template.Resource{
		Type: PolicyType,
		Properties: template.Properties{
			"PolicyName":     "cognito_unauth_policy",
			"PolicyDocument": template.NewPolicyDocument(statements...),
			"Roles":          []any{template.Ref{Name: roleID}},
		},
	})

	ctx.SetResource(RoleAttachmentID(node.ID), &template.Resource{
		Type: IdentityPoolRoleAttachmentType,
		Properties: template.Properties{
			"IdentityPoolId": template.Ref{Name: node.ID},
			"Roles": template.Properties{
				"unauthenticated": template.Arn(roleID),
			},
		},
	})
	return nil
}
