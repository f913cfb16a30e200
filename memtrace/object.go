package memtrace

import (
	"iter"

	model "github.com/tracelens/trace-model/go-model"
	"github.com/tracelens/trace-model/go-model/debug"
	"github.com/tracelens/trace-model/go-model/path"
	"github.com/tracelens/trace-model/go-model/span"
)

// Object is one node of the tree. Identity is the node itself: an
// object keeps its identity when it gains or loses parent edges over
// time.
type Object struct {
	trace     *Trace
	canonical path.KeyPath
	parents   []*Value // incoming edges, insertion order
	entries   []*Value // outgoing edges, insertion order
}

// IsRoot reports whether o is its trace's root.
func (o *Object) IsRoot() bool {
	return o == o.trace.root
}

// CanonicalPath returns the object's defining path.
func (o *Object) CanonicalPath() path.KeyPath {
	return o.canonical
}

// CanonicalParent returns the canonical edge placing o at snap, nil if o
// is not placed then. The root's canonical parent is its synthetic
// parentless entry.
func (o *Object) CanonicalParent(snap int64) model.Value {
	if o.IsRoot() {
		return o.trace.rootValue
	}
	for _, e := range o.parents {
		if !e.lifespan.Contains(snap) {
			continue
		}
		if e.isCanonical() {
			return e
		}
	}
	return nil
}

// Parents returns the incoming edges intersecting sp.
func (o *Object) Parents(sp span.Span) []*Value {
	var out []*Value
	for _, e := range o.parents {
		if sp.Intersects(e.lifespan) {
			out = append(out, e)
		}
	}
	return out
}

// Entries returns the outgoing edges intersecting sp.
func (o *Object) Entries(sp span.Span) []*Value {
	var out []*Value
	for _, e := range o.entries {
		if sp.Intersects(e.lifespan) {
			out = append(out, e)
		}
	}
	return out
}

// Ancestors enumerates the value paths ending at o that match suffix
// read backward from o, every edge intersecting sp. The pattern's length
// bounds the climb, so re-parenting cycles cannot run away.
func (o *Object) Ancestors(sp span.Span, suffix path.Pattern) iter.Seq[model.ValPath] {
	return func(yield func(model.ValPath) bool) {
		if sp.IsEmpty() {
			return
		}
		o.ancestors(sp, suffix.AsPath(), nil, yield)
	}
}

// ancestors climbs from o matching suffix from its last segment inward;
// below holds the edges already matched, in root-to-leaf order.
func (o *Object) ancestors(sp span.Span, suffix path.KeyPath, below []model.Value, yield func(model.ValPath) bool) bool {
	if suffix.IsRoot() {
		vp := make(model.ValPath, len(below))
		copy(vp, below)
		return yield(vp)
	}
	last := suffix.Last()
	rest := suffix.Parent()
	for _, e := range o.parents {
		if !sp.Intersects(e.lifespan) {
			continue
		}
		if !path.KeyMatches(last, e.key) {
			continue
		}
		if debug.Match() {
			debug.Logf("match: %s ~ %s under %s\n", last, e.key, e.parent.canonical)
		}
		next := make([]model.Value, 0, len(below)+1)
		next = append(next, e)
		next = append(next, below...)
		if !e.parent.ancestors(sp, rest, next, yield) {
			return false
		}
	}
	return true
}
