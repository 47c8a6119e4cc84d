package main

import (
	"encoding/json"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/broady/mockql"
	"github.com/broady/mockql/mock"
)

type SchemaCmd struct {
	Config string `arg:"" help:"Endpoint configuration file."`
	JSON   bool   `help:"Print type descriptors as JSON instead of SDL."`
}

func (c *SchemaCmd) Run(k *kong.Context) error {
	snap, err := mockql.LoadSnapshot(c.Config, mock.New())
	if err != nil {
		return err
	}
	if c.JSON {
		enc := json.NewEncoder(k.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap.Compiled())
	}
	_, err = fmt.Fprint(k.Stdout, snap.SDL())
	return err
}
