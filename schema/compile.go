package schema

import (
	"errors"
	"fmt"

	"github.com/broady/mockql/config"
)

// ErrInvalidSchema is returned when endpoints cannot be expressed as a
// valid GraphQL schema, for example a sample key like "first-name".
var ErrInvalidSchema = errors.New("invalid schema")

// EmptyQueryField is the placeholder field declared on Query when there are
// no endpoints, since GraphQL object types need at least one field.
const EmptyQueryField = "_empty"

// QueryField is one root field of the compiled Query type.
type QueryField struct {
	// Name is the field name derived from Route.
	Name string

	// Route is the endpoint name the field was compiled from.
	Route string

	// Type is the field type. Named objects appear as the same
	// *ObjectDescriptor listed in Compiled.Types.
	Type TypeDescriptor
}

// Compiled is the schema derived from a list of endpoints.
type Compiled struct {
	// Types are the named object types, in order of first declaration.
	Types []*ObjectDescriptor

	// Query holds the root fields, in order of first declaration.
	Query []QueryField

	sdl string
}

// SDL returns the schema definition language text for the compiled schema.
func (c *Compiled) SDL() string { return c.sdl }

// FindType looks up a named object type. Returns nil if not found.
func (c *Compiled) FindType(name string) *ObjectDescriptor {
	for _, t := range c.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// FindField looks up a root Query field. Returns nil if not found.
func (c *Compiled) FindField(name string) *QueryField {
	for i := range c.Query {
		if c.Query[i].Name == name {
			return &c.Query[i]
		}
	}
	return nil
}

// Compile derives the mock schema for endpoints. It is deterministic: the
// same endpoints always produce the same types, fields and SDL.
//
// Field and type name collisions are resolved last-wins: a later endpoint
// replaces the definition of an earlier one that derived the same name,
// which keeps the position of its first appearance.
func Compile(endpoints []config.Endpoint) (*Compiled, error) {
	c := &Compiled{}
	fieldIndex := make(map[string]int)
	typeIndex := make(map[string]int)

	for _, ep := range endpoints {
		name := FieldName(ep.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: route %q derives an empty field name", ErrInvalidSchema, ep.Name)
		}

		sample, err := DecodeOrdered(ep.Response)
		if err != nil {
			return nil, fmt.Errorf("%w: route %q: %v", ErrInvalidSchema, ep.Name, err)
		}

		typ, named := fieldType(name, sample)
		if named != nil {
			if i, ok := typeIndex[named.Name]; ok {
				c.Types[i] = named
			} else {
				typeIndex[named.Name] = len(c.Types)
				c.Types = append(c.Types, named)
			}
		}

		field := QueryField{Name: name, Route: ep.Name, Type: typ}
		if i, ok := fieldIndex[name]; ok {
			c.Query[i] = field
		} else {
			fieldIndex[name] = len(c.Query)
			c.Query = append(c.Query, field)
		}
	}

	for i := range c.Query {
		c.Query[i].Type = relink(c, c.Query[i].Type)
	}
	c.Types = referencedTypes(c)
	c.sdl = renderSDL(c)
	if err := validateSDL(c.sdl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return c, nil
}

// fieldType returns the Query field type for a response sample and, when
// the response is object-shaped, the named object type to declare.
func fieldType(field string, response any) (TypeDescriptor, *ObjectDescriptor) {
	sample := response
	arr, isList := response.([]any)
	if isList {
		sample = firstNonNull(arr)
		if sample == nil {
			sample = &OrderedObject{}
		}
	}

	obj, ok := sample.(*OrderedObject)
	if !ok {
		return Infer(response), nil
	}

	var elem TypeDescriptor
	var named *ObjectDescriptor
	if len(obj.Keys) == 0 {
		elem = JSON()
	} else {
		named = inferObject(obj)
		named.Name = TypeName(field)
		elem = named
	}
	if isList {
		return List(elem), named
	}
	return elem, named
}

// relink points named object references at the declaration that survived
// a type-name collision.
func relink(c *Compiled, t TypeDescriptor) TypeDescriptor {
	switch d := t.(type) {
	case *ListDescriptor:
		return List(relink(c, d.Element))
	case *ObjectDescriptor:
		if d.Name != "" {
			if decl := c.FindType(d.Name); decl != nil {
				return decl
			}
		}
	}
	return t
}

// referencedTypes drops declarations orphaned by a field collision, where
// the surviving field no longer points at the earlier endpoint's type.
func referencedTypes(c *Compiled) []*ObjectDescriptor {
	used := make(map[string]bool)
	for _, f := range c.Query {
		if name := elementName(f.Type); name != "" {
			used[name] = true
		}
	}
	var out []*ObjectDescriptor
	for _, t := range c.Types {
		if used[t.Name] {
			out = append(out, t)
		}
	}
	return out
}

func elementName(t TypeDescriptor) string {
	if l, ok := t.(*ListDescriptor); ok {
		return elementName(l.Element)
	}
	if t == nil {
		return ""
	}
	return t.TypeName()
}
