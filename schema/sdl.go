package schema

import (
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// TypeRef renders a descriptor as a GraphQL type reference. Inline objects
// have no name in the schema and render as JSON.
func TypeRef(t TypeDescriptor) string {
	switch d := t.(type) {
	case *ScalarDescriptor:
		return d.Scalar.String()
	case *ListDescriptor:
		return "[" + TypeRef(d.Element) + "]"
	case *ObjectDescriptor:
		if d.Name != "" {
			return d.Name
		}
	}
	return ScalarJSON.String()
}

func renderSDL(c *Compiled) string {
	var b strings.Builder
	b.WriteString("scalar JSON\n")

	for _, t := range c.Types {
		b.WriteString("\ntype ")
		b.WriteString(t.Name)
		b.WriteString(" {\n")
		for _, f := range t.Fields {
			b.WriteString("  ")
			b.WriteString(f.Name)
			b.WriteString(": ")
			b.WriteString(TypeRef(f.Type))
			b.WriteString("\n")
		}
		b.WriteString("}\n")
	}

	b.WriteString("\ntype Query {\n")
	if len(c.Query) == 0 {
		b.WriteString("  " + EmptyQueryField + ": Boolean\n")
	}
	for _, f := range c.Query {
		b.WriteString("  ")
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(TypeRef(f.Type))
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// validateSDL parses and validates the rendered schema so invalid names are
// reported at compile time rather than at query time.
func validateSDL(sdl string) error {
	_, err := gqlparser.LoadSchema(&ast.Source{Name: "mockql.graphql", Input: sdl})
	if err != nil {
		return err
	}
	return nil
}
