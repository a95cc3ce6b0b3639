package template

import (
	"github.com/pkg/errors"
)

type (
	// Document is the Serverless Framework service definition (`serverless.yml`).
	Document struct {
		Service   string               `yaml:"service" json:"service"`
		Provider  Provider             `yaml:"provider" json:"provider"`
		Plugins   []string             `yaml:"plugins,omitempty" json:"plugins,omitempty"`
		Functions map[string]*Function `yaml:"functions" json:"functions"`
		Resources Resources            `yaml:"resources" json:"resources"`
	}

	Provider struct {
		Name    string `yaml:"name" json:"name"`
		Runtime string `yaml:"runtime" json:"runtime"`
		Stage   string `yaml:"stage,omitempty" json:"stage,omitempty"`
		Region  string `yaml:"region,omitempty" json:"region,omitempty"`
	}

	Function struct {
		Handler     string `yaml:"handler" json:"handler"`
		Description string `yaml:"description,omitempty" json:"description,omitempty"`
		// Events is nil for functions without triggers and non-nil (possibly empty) otherwise.
		Events            []Event     `yaml:"events,omitempty" json:"events,omitempty"`
		IAMRoleStatements []Statement `yaml:"iamRoleStatements,omitempty" json:"iamRoleStatements,omitempty"`
	}

	// Resources is the raw CloudFormation section of the document.
	Resources struct {
		Resources map[string]*Resource `yaml:"Resources" json:"Resources"`
		Outputs   map[string]any       `yaml:"Outputs" json:"Outputs"`
	}

	Resource struct {
		Type       string     `yaml:"Type" json:"Type"`
		DependsOn  []string   `yaml:"DependsOn,omitempty" json:"DependsOn,omitempty"`
		Properties Properties `yaml:"Properties,omitempty" json:"Properties,omitempty"`
	}

	Properties map[string]any
)

const (
	DefaultService  = "serverless"
	DefaultProvider = "aws"

	// IAMRolesPerFunctionPlugin lets each function carry its own `iamRoleStatements`.
	IAMRolesPerFunctionPlugin = "serverless-iam-roles-per-function"
)

// NewDocument returns the empty document skeleton for the runtime.
func NewDocument(service, runtime string) *Document {
	if service == "" {
		service = DefaultService
	}
	return &Document{
		Service: service,
		Provider: Provider{
			Name:    DefaultProvider,
			Runtime: runtime,
		},
		Functions: make(map[string]*Function),
		Resources: Resources{
			Resources: make(map[string]*Resource),
			Outputs:   make(map[string]any),
		},
	}
}

func (d *Document) AddPlugin(name string) {
	for _, p := range d.Plugins {
		if p == name {
			return
		}
	}
	d.Plugins = append(d.Plugins, name)
}

// AddEvent adds a named event source to the resource's `Events` map, creating it if needed.
func (r *Resource) AddEvent(name string, event ResourceEvent) error {
	if r.Properties == nil {
		r.Properties = make(Properties)
	}
	var events map[string]ResourceEvent
	switch v := r.Properties["Events"].(type) {
	case nil:
		events = make(map[string]ResourceEvent)
		r.Properties["Events"] = events
	case map[string]ResourceEvent:
		events = v
	default:
		return errors.Errorf("resource property Events has unexpected type %T", v)
	}
	events[name] = event
	return nil
}

// AddPolicy appends to the resource's `Policies` list, creating it if needed. Entries may be
// managed policy names or policy documents.
func (r *Resource) AddPolicy(policy any) error {
	if r.Properties == nil {
		r.Properties = make(Properties)
	}
	switch v := r.Properties["Policies"].(type) {
	case nil:
		r.Properties["Policies"] = []any{policy}
	case []any:
		r.Properties["Policies"] = append(v, policy)
	default:
		return errors.Errorf("resource property Policies has unexpected type %T", v)
	}
	return nil
}
