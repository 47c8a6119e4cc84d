package schema

import (
	"encoding/json"
	"fmt"
)

// JSON serialization for descriptors. Every descriptor carries a "kind"
// field for discrimination; named objects referenced from a field are
// written as {"kind":"ref","name":...} so shared types are not repeated.

// MarshalJSON implements json.Marshaler for ScalarDescriptor.
func (d *ScalarDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind   string `json:"kind"`
		Scalar string `json:"scalar"`
	}{
		Kind:   "scalar",
		Scalar: d.Scalar.String(),
	})
}

// MarshalJSON implements json.Marshaler for ListDescriptor.
func (d *ListDescriptor) MarshalJSON() ([]byte, error) {
	elem, err := marshalRef(d.Element)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&struct {
		Kind    string          `json:"kind"`
		Element json.RawMessage `json:"element"`
	}{
		Kind:    "list",
		Element: elem,
	})
}

// MarshalJSON implements json.Marshaler for ObjectDescriptor.
func (d *ObjectDescriptor) MarshalJSON() ([]byte, error) {
	type field struct {
		Name string          `json:"name"`
		Type json.RawMessage `json:"type"`
	}
	fields := make([]field, len(d.Fields))
	for i, f := range d.Fields {
		typ, err := marshalRef(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		fields[i] = field{Name: f.Name, Type: typ}
	}
	return json.Marshal(&struct {
		Kind   string  `json:"kind"`
		Name   string  `json:"name,omitempty"`
		Fields []field `json:"fields"`
	}{
		Kind:   "object",
		Name:   d.Name,
		Fields: fields,
	})
}

// MarshalJSON implements json.Marshaler for QueryField.
func (f QueryField) MarshalJSON() ([]byte, error) {
	typ, err := marshalRef(f.Type)
	if err != nil {
		return nil, fmt.Errorf("query field %s: %w", f.Name, err)
	}
	return json.Marshal(&struct {
		Name  string          `json:"name"`
		Route string          `json:"route"`
		Type  json.RawMessage `json:"type"`
	}{
		Name:  f.Name,
		Route: f.Route,
		Type:  typ,
	})
}

// MarshalJSON implements json.Marshaler for Compiled.
func (c *Compiled) MarshalJSON() ([]byte, error) {
	types := c.Types
	if types == nil {
		types = []*ObjectDescriptor{}
	}
	query := c.Query
	if query == nil {
		query = []QueryField{}
	}
	return json.Marshal(&struct {
		Types []*ObjectDescriptor `json:"types"`
		Query []QueryField        `json:"query"`
	}{
		Types: types,
		Query: query,
	})
}

// marshalRef writes named types as references and everything else inline.
func marshalRef(t TypeDescriptor) (json.RawMessage, error) {
	if t != nil && t.TypeName() != "" {
		return json.Marshal(&struct {
			Kind string `json:"kind"`
			Name string `json:"name"`
		}{Kind: "ref", Name: t.TypeName()})
	}
	return json.Marshal(t)
}
