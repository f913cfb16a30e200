package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	model "github.com/tracelens/trace-model/go-model"
	"github.com/tracelens/trace-model/go-model/memtrace"
	"github.com/tracelens/trace-model/go-model/path"
	"github.com/tracelens/trace-model/go-model/span"
)

type incMode int

const (
	incIncludes incMode = iota
	incInvolves
)

type IncConfig struct {
	*MainConfig
	mode incMode

	Inc *cli.Command
}

func inc(cfg *IncConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Inc.Parse(cc, args)
	if err != nil {
		cfg.Inc.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 4 {
		return fmt.Errorf("%w: expected <span> <query> <edge-path> <snap>", cli.ErrUsage)
	}
	sp, err := parseSpan(args[0])
	if err != nil {
		return err
	}
	q, err := model.Parse(args[1])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	kp, err := path.ParseKeyPath(args[2])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	snap, err := parseSnap(args[3])
	if err != nil {
		return err
	}
	tr, err := cfg.loadTrace(cc)
	if err != nil {
		return err
	}
	v, err := findEdge(tr, kp, snap)
	if err != nil {
		return err
	}
	got := false
	switch cfg.mode {
	case incIncludes:
		got = q.Includes(sp, v)
	case incInvolves:
		got = q.Involves(sp, v)
	}
	p := cfg.paint(cc.Out)
	if got {
		fmt.Fprintf(cc.Out, "%s\n", p.ins("true"))
		return nil
	}
	fmt.Fprintf(cc.Out, "%s\n", p.del("false"))
	return cli.ExitCodeErr(1)
}

// findEdge resolves a concrete edge by the path it spells out and a
// snapshot at which it is alive. The root path names the root's
// synthetic entry.
func findEdge(tr *memtrace.Trace, kp path.KeyPath, snap int64) (model.Value, error) {
	for i := 0; i < kp.Len(); i++ {
		if kp.Segment(i).IsWildcard() {
			return nil, fmt.Errorf("%w: edge path %q has a wildcard segment", cli.ErrUsage, kp)
		}
	}
	if kp.IsRoot() {
		return tr.RootObject().CanonicalParent(snap), nil
	}
	parent := tr.Lookup(kp.Parent())
	if parent == nil {
		return nil, fmt.Errorf("no object at %q", kp.Parent())
	}
	for _, e := range parent.Entries(span.At(snap)) {
		if e.EntryKey() == kp.Last() {
			return e, nil
		}
	}
	return nil, fmt.Errorf("no edge at %q alive at snapshot %d", kp, snap)
}
