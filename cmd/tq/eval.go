package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	model "github.com/tracelens/trace-model/go-model"
)

type evalMode int

const (
	evalPaths evalMode = iota
	evalObjects
	evalValues
)

type EvalConfig struct {
	*MainConfig
	mode evalMode

	Eval *cli.Command
}

func eval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		cfg.Eval.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: expected <span> <query>", cli.ErrUsage)
	}
	sp, err := parseSpan(args[0])
	if err != nil {
		return err
	}
	q, err := model.Parse(args[1])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	tr, err := cfg.loadTrace(cc)
	if err != nil {
		return err
	}
	p := cfg.paint(cc.Out)
	switch cfg.mode {
	case evalPaths:
		for vp := range q.Paths(tr, sp) {
			fmt.Fprintf(cc.Out, "%s\n", vp.KeyPath())
		}
	case evalObjects:
		for obj := range q.Objects(tr, sp) {
			fmt.Fprintf(cc.Out, "%s\n", obj.CanonicalPath())
		}
	case evalValues:
		for v := range q.Values(tr, sp) {
			fmt.Fprintf(cc.Out, "%s\n", renderValue(v, p))
		}
	}
	return nil
}

func renderValue(v model.Value, p *paint) string {
	at := "<root>"
	if parent := v.Parent(); parent != nil {
		at = parent.CanonicalPath().Extend(v.EntryKey()).String()
	}
	dest := ""
	if prim, ok := v.Child().Primitive(); ok {
		dest = " = " + p.prim("%v", prim)
	}
	return at + p.span("%s", v.Span()) + dest
}
