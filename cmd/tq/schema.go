package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"

	model "github.com/tracelens/trace-model/go-model"
)

type SchemaConfig struct {
	*MainConfig
	Schema *cli.Command
}

type AttrsConfig struct {
	*MainConfig
	Hidden bool `cli:"name=hidden desc='include hidden attributes'"`

	Attrs *cli.Command
}

func schemaOf(cfg *SchemaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Schema.Parse(cc, args)
	if err != nil {
		cfg.Schema.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: expected <query>", cli.ErrUsage)
	}
	q, err := model.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	tr, err := cfg.loadTrace(cc)
	if err != nil {
		return err
	}
	schemas := q.Schemas(tr)
	if schemas == nil {
		return fmt.Errorf("trace %s carries no schema information", cfg.File)
	}
	for _, s := range schemas {
		fmt.Fprintf(cc.Out, "%s\n", s.Name)
	}
	return nil
}

func attrs(cfg *AttrsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Attrs.Parse(cc, args)
	if err != nil {
		cfg.Attrs.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: expected <query>", cli.ErrUsage)
	}
	q, err := model.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	tr, err := cfg.loadTrace(cc)
	if err != nil {
		return err
	}
	for _, as := range q.Attributes(tr) {
		if as.Hidden && !cfg.Hidden {
			continue
		}
		var marks []string
		if as.Required {
			marks = append(marks, "required")
		}
		if as.Fixed {
			marks = append(marks, "fixed")
		}
		if as.Hidden {
			marks = append(marks, "hidden")
		}
		line := fmt.Sprintf("%s: %s", as.Name, as.Schema)
		if len(marks) > 0 {
			line += " (" + strings.Join(marks, ", ") + ")"
		}
		fmt.Fprintf(cc.Out, "%s\n", line)
	}
	return nil
}
