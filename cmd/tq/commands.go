package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "tq").
		WithSynopsis("tq [opts] command [opts]").
		WithDescription("tq queries versioned object traces with path patterns.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tqMain(cfg, cc, args)
		}).
		WithSubs(
			PathsCommand(cfg),
			ObjectsCommand(cfg),
			ValuesCommand(cfg),
			SchemaCommand(cfg),
			AttrsCommand(cfg),
			IncludesCommand(cfg),
			InvolvesCommand(cfg),
			DiffCommand(cfg),
			ServeCommand(cfg))
}

func PathsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EvalConfig{MainConfig: mainCfg, mode: evalPaths}
	return cli.NewCommandAt(&cfg.Eval, "paths").
		WithAliases("p", "pa").
		WithSynopsis("paths <span> <query>").
		WithDescription("print the key paths matching a query over a span").
		WithRun(func(cc *cli.Context, args []string) error {
			return eval(cfg, cc, args)
		})
}

func ObjectsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EvalConfig{MainConfig: mainCfg, mode: evalObjects}
	return cli.NewCommandAt(&cfg.Eval, "objects").
		WithAliases("o", "ob").
		WithSynopsis("objects <span> <query>").
		WithDescription("print the canonical paths of objects matching a query over a span").
		WithRun(func(cc *cli.Context, args []string) error {
			return eval(cfg, cc, args)
		})
}

func ValuesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EvalConfig{MainConfig: mainCfg, mode: evalValues}
	return cli.NewCommandAt(&cfg.Eval, "values").
		WithAliases("v", "va").
		WithSynopsis("values <span> <query>").
		WithDescription("print the terminal edges of paths matching a query over a span").
		WithRun(func(cc *cli.Context, args []string) error {
			return eval(cfg, cc, args)
		})
}

func SchemaCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SchemaConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Schema, "schema").
		WithAliases("s", "sc").
		WithSynopsis("schema <query>").
		WithDescription("print the schemas a query's results would have").
		WithRun(func(cc *cli.Context, args []string) error {
			return schemaOf(cfg, cc, args)
		})
}

func AttrsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AttrsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Attrs, "attrs").
		WithAliases("a", "at").
		WithSynopsis("attrs [opts] <query>").
		WithDescription("print the named attribute declarations of a query's schema").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return attrs(cfg, cc, args)
		})
}

func IncludesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &IncConfig{MainConfig: mainCfg, mode: incIncludes}
	return cli.NewCommandAt(&cfg.Inc, "includes").
		WithAliases("inc").
		WithSynopsis("includes <span> <query> <edge-path> <snap>").
		WithDescription("test whether an edge is a terminal result of a query over a span").
		WithRun(func(cc *cli.Context, args []string) error {
			return inc(cfg, cc, args)
		})
}

func InvolvesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &IncConfig{MainConfig: mainCfg, mode: incInvolves}
	return cli.NewCommandAt(&cfg.Inc, "involves").
		WithAliases("inv").
		WithSynopsis("involves <span> <query> <edge-path> <snap>").
		WithDescription("test whether an edge could affect a query's results over a span").
		WithRun(func(cc *cli.Context, args []string) error {
			return inc(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff <span-a> <span-b> <query>").
		WithDescription("diff a query's matching paths across two spans").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithSynopsis("serve -f <trace-file>").
		WithDescription("answer query requests over JSON-RPC on stdin/stdout").
		WithRun(func(cc *cli.Context, args []string) error {
			return serve(cfg, cc, args)
		})
}
