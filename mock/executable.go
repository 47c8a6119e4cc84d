package mock

import (
	"fmt"
	"log/slog"

	"github.com/graphql-go/graphql"

	"github.com/broady/mockql/schema"
)

// Executable builds a graphql-go schema for c. Every field resolves to a
// value from m: scalars and inline objects are generated directly, named
// objects resolve to a placeholder whose own fields are generated as they
// are selected. Resolvers never return errors; a failing generator yields
// null for its field only.
func Executable(c *schema.Compiled, m *Mocker) (*graphql.Schema, error) {
	b := &builder{
		compiled: c,
		mocker:   m,
		objects:  make(map[string]*graphql.Object),
	}

	fields := graphql.Fields{}
	if len(c.Query) == 0 {
		fields[schema.EmptyQueryField] = &graphql.Field{
			Type:        graphql.Boolean,
			Description: "Placeholder while no endpoints are configured.",
		}
	}
	for _, f := range c.Query {
		fields[f.Name] = b.field(f.Type, "Mock data for GET "+f.Route)
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})
	s, err := graphql.NewSchema(graphql.SchemaConfig{Query: query})
	if err != nil {
		return nil, fmt.Errorf("building executable schema: %w", err)
	}
	return &s, nil
}

type builder struct {
	compiled *schema.Compiled
	mocker   *Mocker
	objects  map[string]*graphql.Object
}

func (b *builder) field(t schema.TypeDescriptor, description string) *graphql.Field {
	return &graphql.Field{
		Type:        b.output(t),
		Description: description,
		Resolve:     b.resolver(t),
	}
}

func (b *builder) output(t schema.TypeDescriptor) graphql.Output {
	switch d := t.(type) {
	case *schema.ScalarDescriptor:
		return scalarType(d.Scalar)
	case *schema.ListDescriptor:
		return graphql.NewList(b.output(d.Element))
	case *schema.ObjectDescriptor:
		if d.Name != "" {
			return b.object(d.Name)
		}
	}
	return JSONScalar
}

// object returns the graphql object for a declared type. Types are looked
// up by name so every reference sees the declaration that survived
// compilation.
func (b *builder) object(name string) graphql.Output {
	if obj, ok := b.objects[name]; ok {
		return obj
	}
	decl := b.compiled.FindType(name)
	if decl == nil {
		return JSONScalar
	}
	fields := graphql.Fields{}
	for _, f := range decl.Fields {
		fields[f.Name] = b.field(f.Type, "")
	}
	obj := graphql.NewObject(graphql.ObjectConfig{
		Name:   name,
		Fields: fields,
	})
	b.objects[name] = obj
	return obj
}

func (b *builder) resolver(t schema.TypeDescriptor) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (v any, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				b.mocker.logger.Warn("mock resolver failed",
					slog.String("field", p.Info.FieldName),
					slog.Any("panic", rec))
				v, err = nil, nil
			}
		}()
		return b.placeholder(t), nil
	}
}

func (b *builder) placeholder(t schema.TypeDescriptor) any {
	switch d := t.(type) {
	case *schema.ScalarDescriptor:
		return b.mocker.Scalar(d.Scalar)
	case *schema.ListDescriptor:
		out := make([]any, b.mocker.ListLength())
		for i := range out {
			out[i] = b.placeholder(d.Element)
		}
		return out
	case *schema.ObjectDescriptor:
		if d.Name != "" {
			// Fields of a declared type resolve individually.
			return map[string]any{}
		}
		return b.mocker.Value(d)
	default:
		return nil
	}
}

func scalarType(kind schema.ScalarKind) graphql.Output {
	switch kind {
	case schema.ScalarString:
		return graphql.String
	case schema.ScalarInt:
		return graphql.Int
	case schema.ScalarFloat:
		return graphql.Float
	case schema.ScalarBoolean:
		return graphql.Boolean
	default:
		return JSONScalar
	}
}
