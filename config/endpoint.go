// Package config reads, validates and writes the endpoint configuration
// file: a JSON array of {"name": "/route", "response": <any JSON>}.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var (
	// ErrNotArray is returned when a configuration document is not a JSON array.
	ErrNotArray = errors.New("configuration must be a JSON array")

	// ErrInvalidEndpoint is returned when an array element is not a valid endpoint.
	ErrInvalidEndpoint = errors.New("invalid endpoint")
)

// Endpoint is a named route plus the example payload served for it.
//
// Response holds the raw JSON bytes (compacted) so object key order is
// preserved for schema inference and REST responses return exactly the
// stored value.
type Endpoint struct {
	Name     string          `json:"name" validate:"required,startswith=/"`
	Response json.RawMessage `json:"response"`
}

var null = json.RawMessage("null")

// Decode parses a configuration document. The document must be a JSON array
// whose elements are objects with a string "name" starting with "/".
// Keys are case-sensitive and unknown keys are ignored. Missing responses
// are normalized to null.
func Decode(data []byte) ([]Endpoint, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArray, err)
	}

	endpoints := make([]Endpoint, 0, len(raw))
	var errs []error
	for i, item := range raw {
		ep, err := decodeEndpoint(item)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w at index %d: %w", ErrInvalidEndpoint, i, err))
			continue
		}
		endpoints = append(endpoints, ep)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return endpoints, nil
}

func decodeEndpoint(item json.RawMessage) (Endpoint, error) {
	item = bytes.TrimSpace(item)
	if len(item) == 0 || item[0] != '{' {
		return Endpoint{}, errors.New("expected an object")
	}
	// Keys match exactly; encoding/json alone would also accept "NAME".
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return Endpoint{}, err
	}
	var ep Endpoint
	if name, ok := fields["name"]; ok {
		if err := json.Unmarshal(name, &ep.Name); err != nil {
			return Endpoint{}, fmt.Errorf("name: %w", err)
		}
	}
	ep.Response = fields["response"]
	if err := ep.Validate(); err != nil {
		return Endpoint{}, err
	}
	ep.Response = compact(ep.Response)
	return ep, nil
}

// Validate checks the endpoint's struct tags.
func (e Endpoint) Validate() error {
	return validate.Struct(e)
}

// Encode renders endpoints the way they are stored on disk: indented with
// two spaces and terminated by a newline.
func Encode(endpoints []Endpoint) ([]byte, error) {
	if endpoints == nil {
		endpoints = []Endpoint{}
	}
	normalized := make([]Endpoint, len(endpoints))
	for i, ep := range endpoints {
		normalized[i] = Endpoint{Name: ep.Name, Response: compact(ep.Response)}
	}
	data, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling endpoints: %w", err)
	}
	return append(data, '\n'), nil
}

func compact(raw json.RawMessage) json.RawMessage {
	if len(bytes.TrimSpace(raw)) == 0 {
		return null
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}
