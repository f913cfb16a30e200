// Package model implements declarative path-pattern queries over a
// versioned, hierarchical object model.
//
// The model is a tree of objects rooted at a single root object. Each
// parent→child association is a value: an edge carrying a key segment, a
// destination (an object or a primitive), and a lifespan — the closed
// interval of snapshots over which the edge holds. Objects may gain and
// lose parents over time; identity is stable across re-parenting.
//
// A Query names a set of alternative path patterns. Evaluating it over a
// span enumerates the value paths currently matching; the incremental
// Includes and Involves tests decide, for one changed value, whether it
// is a result of the query or could affect its results, without a full
// traversal.
//
// The store behind the model is abstract: anything implementing Trace,
// Object and Value can be queried. The memtrace package provides the
// reference in-memory implementation.
package model

import (
	"iter"

	"github.com/tracelens/trace-model/go-model/path"
	"github.com/tracelens/trace-model/go-model/schema"
	"github.com/tracelens/trace-model/go-model/span"
)

// Trace is the store handle a query evaluates against.
type Trace interface {
	// RootObject returns the unique root of the hierarchy, nil when the
	// store has none yet.
	RootObject() Object

	// RootSchema returns the schema of the root object, nil when the
	// store carries no schema information.
	RootSchema() *schema.Schema

	// ValuePaths enumerates, lazily, every value path from the root
	// matching the filter whose edges all intersect sp. Ordering is
	// deterministic: pre-order by path, edges in insertion order.
	ValuePaths(sp span.Span, f path.Filter) iter.Seq[ValPath]
}

// Object is one node of the hierarchy.
type Object interface {
	// IsRoot reports whether this is the trace's root object.
	IsRoot() bool

	// CanonicalPath returns the object's defining path from the root.
	CanonicalPath() path.KeyPath

	// CanonicalParent returns the canonical edge placing this object at
	// the given snapshot, nil if the object is not placed then. The root
	// object's canonical parent is its synthetic parentless entry.
	CanonicalParent(snap int64) Value

	// Ancestors enumerates, lazily, the value paths ending at this
	// object that match the pattern suffix read backward from here, with
	// every edge intersecting sp. Each yielded path exposes its origin
	// so callers can test whether it reaches the root.
	Ancestors(sp span.Span, suffix path.Pattern) iter.Seq[ValPath]
}

// Value is one edge of the hierarchy: the atomic, lifespanned fact the
// store records and the incremental tests reason about.
type Value interface {
	// Parent returns the edge's source object, nil only for the root
	// object's synthetic entry.
	Parent() Object

	// EntryKey returns the segment under which the destination hangs off
	// the parent.
	EntryKey() path.Segment

	// Span returns the lifespan over which the edge holds.
	Span() span.Span

	// Child returns the edge's destination.
	Child() Resolved
}

// Resolved is a destination value: exactly one of an object or a
// primitive. The zero value is the nil primitive.
type Resolved struct {
	obj  Object
	prim any
}

// ResolveObject wraps an object destination.
func ResolveObject(o Object) Resolved {
	return Resolved{obj: o}
}

// ResolvePrimitive wraps a primitive destination.
func ResolvePrimitive(v any) Resolved {
	return Resolved{prim: v}
}

// Object returns the destination object, if the destination is one.
func (r Resolved) Object() (Object, bool) {
	return r.obj, r.obj != nil
}

// Primitive returns the destination primitive, if the destination is
// one.
func (r Resolved) Primitive() (any, bool) {
	if r.obj != nil {
		return nil, false
	}
	return r.prim, true
}

// ValPath is a concrete realized sequence of edges from the root, the
// instantiation of one pattern. The empty path is the root itself.
type ValPath []Value

// Last returns the path's terminal edge, nil for the empty path.
func (p ValPath) Last() Value {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// Origin returns the object the path starts from: the first edge's
// parent, or at for the empty path.
func (p ValPath) Origin(at Object) Object {
	if len(p) == 0 {
		return at
	}
	return p[0].Parent()
}

// Destination returns the value at the path's end: the last edge's
// child, or the root object itself for the empty path.
func (p ValPath) Destination(root Object) Resolved {
	if len(p) == 0 {
		return ResolveObject(root)
	}
	return p[len(p)-1].Child()
}

// KeyPath returns the concrete key path the edges spell out.
func (p ValPath) KeyPath() path.KeyPath {
	kp := path.Root
	for _, v := range p {
		kp = kp.Extend(v.EntryKey())
	}
	return kp
}
