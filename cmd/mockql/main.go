package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/broady/mockql"
)

type CLI struct {
	Settings  kong.ConfigFlag `help:"YAML file with default values for any flag."`
	LogLevel  string          `help:"Minimum log level." enum:"debug,info,warn,error" default:"info"`
	LogFormat string          `help:"Log output format." enum:"text,json" default:"text"`

	Serve   ServeCmd   `cmd:"" default:"withargs" help:"Serve REST and GraphQL mocks for a configuration file."`
	Schema  SchemaCmd  `cmd:"" help:"Print the GraphQL schema generated for a configuration file."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

// newLogger builds the process logger from the global flags.
func (c *CLI) newLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

type VersionCmd struct{}

func (c *VersionCmd) Run(k *kong.Context) error {
	fmt.Fprintln(k.Stdout, Version())
	return nil
}

func parser(cli *CLI, opts ...kong.Option) (*kong.Kong, error) {
	opts = append([]kong.Option{
		kong.Name("mockql"),
		kong.Description("Mock REST and GraphQL server driven by a JSON endpoint configuration."),
		kong.UsageOnError(),
		kong.Configuration(yamlResolver),
		kong.Vars{
			"control_path": mockql.DefaultControlPath,
			"query_path":   mockql.DefaultQueryPath,
			"admin_prefix": mockql.DefaultAdminPrefix,
		},
	}, opts...)
	return kong.New(cli, opts...)
}

func main() {
	cli := &CLI{}
	p, err := parser(cli)
	if err != nil {
		panic(err)
	}
	ctx, err := p.Parse(os.Args[1:])
	p.FatalIfErrorf(err)

	logger := cli.newLogger(os.Stderr)
	slog.SetDefault(logger)
	err = ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
