package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	model "github.com/tracelens/trace-model/go-model"
	"github.com/tracelens/trace-model/go-model/memtrace"
	"github.com/tracelens/trace-model/go-model/span"
)

type DiffConfig struct {
	*MainConfig
	Diff *cli.Command
}

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: expected <span-a> <span-b> <query>", cli.ErrUsage)
	}
	spA, err := parseSpan(args[0])
	if err != nil {
		return err
	}
	spB, err := parseSpan(args[1])
	if err != nil {
		return err
	}
	q, err := model.Parse(args[2])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	tr, err := cfg.loadTrace(cc)
	if err != nil {
		return err
	}
	a := pathLines(tr, q, spA)
	b := pathLines(tr, q, spB)

	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	p := cfg.paint(cc.Out)
	changed := false
	for i := range diffs {
		d := &diffs[i]
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffpatch.DiffDelete:
				changed = true
				fmt.Fprintf(cc.Out, "%s\n", p.del("- %s", line))
			case diffpatch.DiffInsert:
				changed = true
				fmt.Fprintf(cc.Out, "%s\n", p.ins("+ %s", line))
			case diffpatch.DiffEqual:
				fmt.Fprintf(cc.Out, "  %s\n", line)
			}
		}
	}
	if changed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func pathLines(tr *memtrace.Trace, q model.Query, sp span.Span) string {
	var b strings.Builder
	for vp := range q.Paths(tr, sp) {
		b.WriteString(vp.KeyPath().String())
		b.WriteByte('\n')
	}
	return b.String()
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
