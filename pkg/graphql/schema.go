// Package graphql exposes an export.Snapshot through a read-only GraphQL
// schema so analysis tools can fetch just the slices of a model they need.
package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/faultflow/pkg/export"
)

// GenerateSchema builds a schema over snap with the default result limits.
func GenerateSchema(snap *export.Snapshot) (graphql.Schema, error) {
	return GenerateSchemaWithLimits(snap, DefaultLimitConfig())
}

// GenerateSchemaWithLimits builds a schema over snap whose list queries are
// capped by config.
func GenerateSchemaWithLimits(snap *export.Snapshot, config *LimitConfig) (graphql.Schema, error) {
	if snap == nil {
		return graphql.Schema{}, fmt.Errorf("nil snapshot")
	}
	if err := ValidateLimitConfig(config); err != nil {
		return graphql.Schema{}, err
	}

	t := newTypes(snap)
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"system": &graphql.Field{
				Type: graphql.NewNonNull(t.system),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return snap, nil
				},
			},
			"components": &graphql.Field{
				Type: graphql.NewList(t.component),
				Args: limitArgs(),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return limited(snap.Components, p, config), nil
				},
			},
			"component": &graphql.Field{
				Type: t.component,
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					name, _ := p.Args["name"].(string)
					if c, ok := snap.Component(name); ok {
						return c, nil
					}
					return nil, nil
				},
			},
			"faultModes": &graphql.Field{
				Type: graphql.NewList(t.faultMode),
				Args: limitArgs(graphql.FieldConfigArgument{
					"kind": &graphql.ArgumentConfig{Type: t.faultKind},
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					kind, _ := p.Args["kind"].(string)
					return limited(snap.FaultModesOfKind(kind), p, config), nil
				},
			},
			"errorModes": &graphql.Field{
				Type: graphql.NewList(t.errorMode),
				Args: limitArgs(graphql.FieldConfigArgument{
					"component": &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					component, _ := p.Args["component"].(string)
					return limited(snap.ErrorModesOf(component), p, config), nil
				},
			},
			"failureModes": &graphql.Field{
				Type: graphql.NewList(t.failureMode),
				Args: limitArgs(),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return limited(snap.FailureModes, p, config), nil
				},
			},
			"propagationPorts": &graphql.Field{
				Type: graphql.NewList(t.port),
				Args: limitArgs(graphql.FieldConfigArgument{
					"owner": &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if owner, ok := p.Args["owner"].(string); ok && owner != "" {
						return limited(snap.PortsOf(owner), p, config), nil
					}
					return limited(snap.PropagationPorts, p, config), nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}

type types struct {
	faultKind   *graphql.Enum
	faultMode   *graphql.Object
	errorMode   *graphql.Object
	failureMode *graphql.Object
	port        *graphql.Object
	component   *graphql.Object
	system      *graphql.Object
}

func newTypes(snap *export.Snapshot) *types {
	t := &types{}
	t.faultKind = graphql.NewEnum(graphql.EnumConfig{
		Name: "FaultKind",
		Values: graphql.EnumValueConfigMap{
			"INTERNAL": &graphql.EnumValueConfig{Value: "internal"},
			"EXTERNAL": &graphql.EnumValueConfig{Value: "external"},
		},
	})
	t.faultMode = graphql.NewObject(graphql.ObjectConfig{
		Name: "FaultMode",
		Fields: graphql.Fields{
			"name":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"kind":         &graphql.Field{Type: graphql.NewNonNull(t.faultKind)},
			"distribution": &graphql.Field{Type: graphql.String},
		},
	})
	t.errorMode = graphql.NewObject(graphql.ObjectConfig{
		Name: "ErrorMode",
		Fields: graphql.Fields{
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"component": &graphql.Field{Type: graphql.String},
			"inputs":    &graphql.Field{Type: graphql.NewList(graphql.String)},
			"condition": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"latency":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"failure":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})
	t.failureMode = graphql.NewObject(graphql.ObjectConfig{
		Name: "FailureMode",
		Fields: graphql.Fields{
			"name":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"producer": &graphql.Field{Type: graphql.String},
		},
	})
	t.port = graphql.NewObject(graphql.ObjectConfig{
		Name: "PropagationPort",
		Fields: graphql.Fields{
			"name":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"owner":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"source":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"target":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"targetComponent": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	// Components nest, so their fields are a thunk.
	t.component = graphql.NewObject(graphql.ObjectConfig{
		Name: "Component",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"name":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"parents": &graphql.Field{Type: graphql.NewList(graphql.String)},
				"children": &graphql.Field{
					Type: graphql.NewList(t.component),
					Resolve: func(p graphql.ResolveParams) (any, error) {
						c, ok := p.Source.(export.Component)
						if !ok {
							return nil, nil
						}
						out := make([]export.Component, 0, len(c.Children))
						for _, name := range c.Children {
							if child, ok := snap.Component(name); ok {
								out = append(out, child)
							}
						}
						return out, nil
					},
				},
				"errorModes": &graphql.Field{
					Type: graphql.NewList(t.errorMode),
					Resolve: func(p graphql.ResolveParams) (any, error) {
						if c, ok := p.Source.(export.Component); ok {
							return snap.ErrorModesOf(c.Name), nil
						}
						return nil, nil
					},
				},
				"propagationPorts": &graphql.Field{
					Type: graphql.NewList(t.port),
					Resolve: func(p graphql.ResolveParams) (any, error) {
						if c, ok := p.Source.(export.Component); ok {
							return snap.PortsOf(c.Name), nil
						}
						return nil, nil
					},
				},
			}
		}),
	})
	t.system = graphql.NewObject(graphql.ObjectConfig{
		Name: "System",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"policy": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"topLevel": &graphql.Field{
				Type: t.component,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if c, ok := snap.Component(snap.TopLevel); ok {
						return c, nil
					}
					return nil, nil
				},
			},
		},
	})
	return t
}
