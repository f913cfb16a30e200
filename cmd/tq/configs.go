package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/tracelens/trace-model/go-model/memtrace"
	"github.com/tracelens/trace-model/go-model/span"
)

type MainConfig struct {
	File  string `cli:"name=f aliases=file desc='trace file (default stdin)'"`
	Color bool   `cli:"name=color desc='force colored output'"`

	Main *cli.Command
}

func (cfg *MainConfig) loadTrace(cc *cli.Context) (*memtrace.Trace, error) {
	if cfg.File == "" || cfg.File == "-" {
		return memtrace.Load(cc.In)
	}
	f, err := os.Open(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", cfg.File, err)
	}
	defer f.Close()
	tr, err := memtrace.Load(f)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", cfg.File, err)
	}
	return tr, nil
}

// paint bundles the per-role colorizers, all identity functions when the
// output is not a terminal and color is not forced.
type paint struct {
	span func(string, ...any) string
	prim func(string, ...any) string
	ins  func(string, ...any) string
	del  func(string, ...any) string
}

func (cfg *MainConfig) paint(w io.Writer) *paint {
	p := &paint{
		span: fmt.Sprintf,
		prim: fmt.Sprintf,
		ins:  fmt.Sprintf,
		del:  fmt.Sprintf,
	}
	if !cfg.Color {
		f, ok := w.(*os.File)
		if !ok || !isatty.IsTerminal(f.Fd()) {
			return p
		}
	}
	p.span = color.CyanString
	p.prim = color.GreenString
	p.ins = color.GreenString
	p.del = color.RedString
	return p
}

// parseSpan parses command line span syntax: "all", a single snapshot,
// or "lo..hi" where either bound may be omitted or given as min/max.
func parseSpan(text string) (span.Span, error) {
	if text == "all" {
		return span.All, nil
	}
	if i := strings.Index(text, ".."); i >= 0 {
		lo, err := parseBound(text[:i], "min", span.Min)
		if err != nil {
			return span.Empty, err
		}
		hi, err := parseBound(text[i+2:], "max", span.Max)
		if err != nil {
			return span.Empty, err
		}
		if lo > hi {
			return span.Empty, fmt.Errorf("%w: inverted span %q", cli.ErrUsage, text)
		}
		return span.Make(lo, hi), nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return span.Empty, fmt.Errorf("%w: invalid span %q", cli.ErrUsage, text)
	}
	return span.At(n), nil
}

func parseBound(text, open string, def int64) (int64, error) {
	if text == "" || text == open {
		return def, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid span bound %q", cli.ErrUsage, text)
	}
	return n, nil
}

func parseSnap(text string) (int64, error) {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid snapshot %q", cli.ErrUsage, text)
	}
	return n, nil
}
