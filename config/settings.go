package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadSettings reads a YAML settings document holding default values for
// command-line flags, keyed by flag name ("port", "control_path", ...).
// An empty document yields an empty map.
func LoadSettings(r io.Reader) (map[string]any, error) {
	var values map[string]any
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if err == io.EOF {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}
