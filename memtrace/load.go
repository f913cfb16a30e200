package memtrace

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/tracelens/trace-model/go-model/path"
	"github.com/tracelens/trace-model/go-model/schema"
	"github.com/tracelens/trace-model/go-model/span"
)

// traceDoc is the YAML shape of a trace file: an optional inline schema
// context, the root schema name, and the values in placement order.
type traceDoc struct {
	Schemas    []*schema.Doc `yaml:"schemas"`
	RootSchema string        `yaml:"root-schema"`
	Values     []*valueDoc   `yaml:"values"`
}

// valueDoc places one value. Exactly one form applies:
//   - object placement: path + span
//   - primitive: path + span + value
//   - link: path + span + link (a non-canonical edge to an existing
//     object, e.g. re-parenting)
type valueDoc struct {
	Path  string    `yaml:"path"`
	Span  span.Span `yaml:"span"`
	Value any       `yaml:"value"`
	Link  string    `yaml:"link"`
}

// Load reads a YAML trace file:
//
//	root-schema: Session
//	schemas:
//	  - name: Session
//	    attributes: [{name: Processes, schema: ProcessContainer}]
//	values:
//	  - path: Processes[0]
//	    span: [0, 10]
//	  - path: Processes[0]._display
//	    span: [0, 10]
//	    value: "bash (pid 100)"
//	  - path: Processes[1].Threads[3]
//	    span: [5, 20]
//	    link: Processes[0]
func Load(r io.Reader) (*Trace, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc traceDoc
	if err := yaml.Unmarshal(d, &doc); err != nil {
		return nil, fmt.Errorf("memtrace: decoding trace: %w", err)
	}
	var rootSchema *schema.Schema
	if doc.RootSchema != "" {
		ctx, err := schema.BuildContext(doc.Schemas)
		if err != nil {
			return nil, err
		}
		rootSchema = ctx.Lookup(doc.RootSchema)
		if rootSchema == nil {
			return nil, fmt.Errorf("memtrace: root schema %q not defined", doc.RootSchema)
		}
	}
	t := New(rootSchema)
	for i, vd := range doc.Values {
		if err := t.load(vd); err != nil {
			return nil, fmt.Errorf("memtrace: values[%d]: %w", i, err)
		}
	}
	return t, nil
}

func (t *Trace) load(vd *valueDoc) error {
	p, err := path.ParseKeyPath(vd.Path)
	if err != nil {
		return err
	}
	if vd.Span.IsEmpty() {
		return fmt.Errorf("value %q has no span", vd.Path)
	}
	switch {
	case vd.Link != "":
		if p.IsRoot() {
			return fmt.Errorf("link at the root path")
		}
		target, err := path.ParseKeyPath(vd.Link)
		if err != nil {
			return err
		}
		child := t.Lookup(target)
		if child == nil {
			return fmt.Errorf("link target %q not placed yet", vd.Link)
		}
		parent := t.Lookup(p.Parent())
		if parent == nil {
			return fmt.Errorf("link parent %q not placed yet", p.Parent())
		}
		_, err = t.PutEdge(parent, p.Last(), child, vd.Span)
		return err
	case vd.Value != nil:
		if p.IsRoot() {
			return fmt.Errorf("primitive at the root path")
		}
		parent := t.Lookup(p.Parent())
		if parent == nil {
			return fmt.Errorf("parent %q not placed yet", p.Parent())
		}
		_, err = t.PutPrimitive(parent, p.Last(), vd.Value, vd.Span)
		return err
	default:
		_, err := t.Insert(p, vd.Span)
		return err
	}
}
