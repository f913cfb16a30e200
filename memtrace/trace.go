// Package memtrace is the reference in-memory implementation of the
// model store contracts: a versioned object tree whose edges carry
// lifespans. It backs the tests and the tq tool; a production debugger
// would put a persistent store behind the same interfaces.
package memtrace

import (
	"fmt"
	"maps"
	"slices"

	model "github.com/tracelens/trace-model/go-model"
	"github.com/tracelens/trace-model/go-model/path"
	"github.com/tracelens/trace-model/go-model/schema"
	"github.com/tracelens/trace-model/go-model/span"
)

// Trace is an in-memory versioned object tree. The zero value is not
// usable; construct with New.
//
// Trace is not safe for concurrent mutation; concurrent readers are fine
// once mutation has stopped.
type Trace struct {
	rootSchema *schema.Schema
	root       *Object
	rootValue  *Value
	objects    map[string]*Object // by canonical path text
}

// New returns a trace with a fresh root object and the given root
// schema (nil for a schema-less trace).
func New(rootSchema *schema.Schema) *Trace {
	t := &Trace{
		rootSchema: rootSchema,
		objects:    map[string]*Object{},
	}
	t.root = &Object{trace: t, canonical: path.Root}
	t.objects[""] = t.root
	// The root's synthetic entry: parentless, spanning everything, so
	// the root can appear as a query result without a real edge.
	t.rootValue = &Value{trace: t, child: model.ResolveObject(t.root), lifespan: span.All}
	return t
}

// RootObject returns the root object.
func (t *Trace) RootObject() model.Object {
	return t.root
}

// RootSchema returns the trace's root schema, nil if none.
func (t *Trace) RootSchema() *schema.Schema {
	return t.rootSchema
}

// Root returns the root object concretely, for mutation.
func (t *Trace) Root() *Object {
	return t.root
}

// Object returns the object with the given canonical path, creating it
// (without any edges) if needed. Wildcard segments are rejected.
func (t *Trace) Object(canonical path.KeyPath) (*Object, error) {
	for i := 0; i < canonical.Len(); i++ {
		if canonical.Segment(i).IsWildcard() {
			return nil, fmt.Errorf("memtrace: canonical path %q has a wildcard segment", canonical)
		}
	}
	key := canonical.String()
	if o := t.objects[key]; o != nil {
		return o, nil
	}
	o := &Object{trace: t, canonical: canonical}
	t.objects[key] = o
	return o, nil
}

// Lookup returns the object with the given canonical path, nil if it was
// never created.
func (t *Trace) Lookup(canonical path.KeyPath) *Object {
	return t.objects[canonical.String()]
}

// PutEdge records that child hangs off parent under seg for the given
// lifespan. A placement that intersects or abuts an identical existing
// edge extends that edge's lifespan instead of adding a parallel edge,
// so repeated overlapping placements stay a single fact.
func (t *Trace) PutEdge(parent *Object, seg path.Segment, child *Object, sp span.Span) (*Value, error) {
	if sp.IsEmpty() {
		return nil, fmt.Errorf("memtrace: edge with empty lifespan")
	}
	if seg.IsWildcard() {
		return nil, fmt.Errorf("memtrace: edge with wildcard key")
	}
	for _, e := range parent.entries {
		if e.key != seg {
			continue
		}
		o, ok := e.child.Object()
		if !ok || o != model.Object(child) {
			continue
		}
		if e.lifespan.Encloses(sp) {
			return e, nil
		}
		if e.lifespan.Connects(sp) {
			e.lifespan = e.lifespan.Hull(sp)
			return e, nil
		}
	}
	e := &Value{
		trace:    t,
		parent:   parent,
		key:      seg,
		lifespan: sp,
		child:    model.ResolveObject(child),
	}
	parent.entries = append(parent.entries, e)
	child.parents = append(child.parents, e)
	return e, nil
}

// PutPrimitive records a primitive-valued edge under parent.
func (t *Trace) PutPrimitive(parent *Object, seg path.Segment, v any, sp span.Span) (*Value, error) {
	if sp.IsEmpty() {
		return nil, fmt.Errorf("memtrace: edge with empty lifespan")
	}
	if seg.IsWildcard() {
		return nil, fmt.Errorf("memtrace: edge with wildcard key")
	}
	e := &Value{
		trace:    t,
		parent:   parent,
		key:      seg,
		lifespan: sp,
		child:    model.ResolvePrimitive(v),
	}
	parent.entries = append(parent.entries, e)
	return e, nil
}

// AllValues returns every value in the trace: the root's synthetic
// entry first, then outgoing edges grouped by parent in canonical-path
// order, each group in insertion order.
func (t *Trace) AllValues() []*Value {
	out := []*Value{t.rootValue}
	for _, k := range slices.Sorted(maps.Keys(t.objects)) {
		out = append(out, t.objects[k].entries...)
	}
	return out
}

// Insert places the object at the given canonical path over sp, creating
// the object and every ancestor as needed and adding the canonical edges
// along the chain. It returns the object.
func (t *Trace) Insert(canonical path.KeyPath, sp span.Span) (*Object, error) {
	obj, err := t.Object(canonical)
	if err != nil {
		return nil, err
	}
	cur := obj
	for !cur.canonical.IsRoot() {
		parent, err := t.Object(cur.canonical.Parent())
		if err != nil {
			return nil, err
		}
		if _, err := t.PutEdge(parent, cur.canonical.Last(), cur, sp); err != nil {
			return nil, err
		}
		cur = parent
	}
	return obj, nil
}
