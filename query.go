package model

import (
	"iter"

	"github.com/tracelens/trace-model/go-model/debug"
	"github.com/tracelens/trace-model/go-model/path"
	"github.com/tracelens/trace-model/go-model/schema"
	"github.com/tracelens/trace-model/go-model/span"
)

// Query is a set of alternative path patterns evaluated against a trace.
// It is an immutable value: built once, shared freely, never mutated.
// The zero value is Empty.
type Query struct {
	filter path.Filter
}

// Empty is the query over no patterns. It matches nothing and is the
// safe default for "no query yet".
var Empty = Query{}

// Parse builds a query from query text. It fails with a
// *path.SyntaxError on malformed text.
func Parse(text string) (Query, error) {
	f, err := path.Parse(text)
	if err != nil {
		return Empty, err
	}
	return Query{filter: f}, nil
}

// New builds a query over a filter directly.
func New(f path.Filter) Query {
	return Query{filter: f}
}

// ElementsOf returns the query matching exactly the immediate index
// children of the object at p.
func ElementsOf(p path.KeyPath) Query {
	return New(path.MakeFilter(path.MakePattern(p.Index(""))))
}

// AttributesOf returns the query matching exactly the immediate key
// children of the object at p.
func AttributesOf(p path.KeyPath) Query {
	return New(path.MakeFilter(path.MakePattern(p.Key(""))))
}

// Filter returns the query's filter.
func (q Query) Filter() path.Filter {
	return q.filter
}

// IsEmpty reports whether the query matches nothing, structurally.
func (q Query) IsEmpty() bool {
	return q.filter.IsNone()
}

// Equal reports whether two queries have equal filters.
func (q Query) Equal(o Query) bool {
	return q.filter.Equal(o.filter)
}

func (q Query) String() string {
	return "<Query: " + q.filter.String() + ">"
}

// QueryString renders the query as parseable text. Defined for
// single-alternative queries; for others it degenerates to the first
// alternative.
func (q Query) QueryString() string {
	if pat, ok := q.filter.Singleton(); ok {
		return pat.String()
	}
	pats := q.filter.Patterns()
	if len(pats) == 0 {
		return ""
	}
	return pats[0].String()
}

// Objects enumerates the objects matching the query in sp: the
// destinations of matching paths whose terminal value is an object.
func (q Query) Objects(tr Trace, sp span.Span) iter.Seq[Object] {
	return func(yield func(Object) bool) {
		root := tr.RootObject()
		for p := range tr.ValuePaths(sp, q.filter) {
			if obj, ok := p.Destination(root).Object(); ok {
				if !yield(obj) {
					return
				}
			}
		}
	}
}

// Values enumerates the terminal edges of the matching paths. A
// degenerate match at the root itself yields the root object's synthetic
// parentless entry at snapshot 0, so the root can be a result without a
// real incoming edge.
func (q Query) Values(tr Trace, sp span.Span) iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for p := range tr.ValuePaths(sp, q.filter) {
			last := p.Last()
			if last == nil {
				last = tr.RootObject().CanonicalParent(0)
			}
			if !yield(last) {
				return
			}
		}
	}
}

// Paths enumerates the raw matching value paths, unmodified.
func (q Query) Paths(tr Trace, sp span.Span) iter.Seq[ValPath] {
	return tr.ValuePaths(sp, q.filter)
}

// Schemas resolves each alternative's successor schema from the trace's
// root schema, deduplicated, in pattern order. Without a root schema it
// returns nil: no schema information, not an error.
func (q Query) Schemas(tr Trace) []*schema.Schema {
	rootSchema := tr.RootSchema()
	if rootSchema == nil {
		return nil
	}
	var out []*schema.Schema
	for _, pat := range q.filter.Patterns() {
		s := rootSchema.Successor(pat.AsPath())
		dup := false
		for _, have := range out {
			if have.Equal(s) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, s)
		}
	}
	return out
}

// SingleSchema returns the query's one distinct successor schema, or the
// generic OBJECT schema when resolution is ambiguous or absent.
// Ambiguity is a degradation, not an error: the query only loses
// attribute-name information.
func (q Query) SingleSchema(tr Trace) *schema.Schema {
	schemas := q.Schemas(tr)
	if len(schemas) != 1 {
		return schema.Object
	}
	return schemas[0]
}

// Attributes returns the named attribute declarations of the query's
// single schema, excluding the default attribute schema.
func (q Query) Attributes(tr Trace) []*schema.AttributeSchema {
	return q.SingleSchema(tr).NamedAttributes()
}

// includes tests one alternative against one value.
func includes(sp span.Span, pat path.Pattern, v Value) bool {
	asPath := pat.AsPath()
	if asPath.IsRoot() {
		// The root pattern matches only the root's own entry.
		return v.Parent() == nil
	}
	if !path.KeyMatches(asPath.Last(), v.EntryKey()) {
		return false
	}
	parent := v.Parent()
	if parent == nil {
		// The value is the root entry; only the root pattern matches it.
		return false
	}
	for ap := range parent.Ancestors(sp, pat.RemoveRight(1)) {
		if ap.Origin(parent).IsRoot() {
			return true
		}
	}
	return false
}

// Includes determines whether the query would include v's destination in
// its result for sp: whether v is the terminal edge of some matching
// path. It never runs a full traversal; per alternative it asks the
// value's parent for ancestor paths matching the pattern with its last
// segment removed.
func (q Query) Includes(sp span.Span, v Value) bool {
	if !sp.Intersects(v.Span()) {
		return false
	}
	for _, pat := range q.filter.Patterns() {
		if includes(sp, pat, v) {
			if debug.Includes() {
				debug.Logf("includes: %s accepts %s%s\n", pat, v.EntryKey(), v.Span())
			}
			return true
		}
	}
	return false
}

// involves tests one alternative against one value.
func involves(sp span.Span, pat path.Pattern, v Value) bool {
	parent := v.Parent()
	// Every query involves the root's entry.
	if parent == nil {
		return true
	}
	// Slide a suffix window up the pattern: the value could instantiate
	// any one of its segments.
	asPath := pat.AsPath()
	for !asPath.IsRoot() {
		if !path.KeyMatches(asPath.Last(), v.EntryKey()) {
			asPath = asPath.Parent()
			continue
		}
		asPath = asPath.Parent()
		for ap := range parent.Ancestors(sp, path.MakePattern(asPath)) {
			if ap.Origin(parent).IsRoot() {
				return true
			}
		}
	}
	return false
}

// Involves determines whether the query's results for sp could depend on
// v: whether v could lie anywhere on a matching path, terminal or
// intermediate. Involvement is a superset of inclusion.
func (q Query) Involves(sp span.Span, v Value) bool {
	if !sp.Intersects(v.Span()) {
		return false
	}
	for _, pat := range q.filter.Patterns() {
		if involves(sp, pat, v) {
			if debug.Involves() {
				debug.Logf("involves: %s reaches %s%s\n", pat, v.EntryKey(), v.Span())
			}
			return true
		}
	}
	return false
}
