package main

import (
	"io"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/broady/mockql/config"
)

// yamlResolver resolves flag defaults from a YAML settings file. Keys may
// use the flag name as written ("control-path") or in snake case
// ("control_path").
func yamlResolver(r io.Reader) (kong.Resolver, error) {
	values, err := config.LoadSettings(r)
	if err != nil {
		return nil, err
	}
	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if v, ok := values[flag.Name]; ok {
			return v, nil
		}
		if v, ok := values[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
			return v, nil
		}
		return nil, nil
	}
	return f, nil
}
