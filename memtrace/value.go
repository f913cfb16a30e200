package memtrace

import (
	model "github.com/tracelens/trace-model/go-model"
	"github.com/tracelens/trace-model/go-model/path"
	"github.com/tracelens/trace-model/go-model/span"
)

// Value is one edge: parent --key--> child over a lifespan. The root's
// synthetic entry is the only parentless value.
type Value struct {
	trace    *Trace
	parent   *Object
	key      path.Segment
	lifespan span.Span
	child    model.Resolved
}

// Parent returns the source object, nil for the root's entry.
func (v *Value) Parent() model.Object {
	if v.parent == nil {
		return nil
	}
	return v.parent
}

// EntryKey returns the segment under which the child hangs.
func (v *Value) EntryKey() path.Segment {
	return v.key
}

// Span returns the edge's lifespan.
func (v *Value) Span() span.Span {
	return v.lifespan
}

// Child returns the edge's destination.
func (v *Value) Child() model.Resolved {
	return v.child
}

// isCanonical reports whether the edge places its child at the child's
// canonical path.
func (v *Value) isCanonical() bool {
	obj, ok := v.child.Object()
	if !ok {
		return false
	}
	child, ok := obj.(*Object)
	if !ok {
		return false
	}
	if v.parent == nil {
		return child.canonical.IsRoot()
	}
	return v.parent.canonical.Extend(v.key).Equal(child.canonical)
}

func (v *Value) String() string {
	if v.parent == nil {
		return "<root>" + v.lifespan.String()
	}
	return v.parent.canonical.Extend(v.key).String() + v.lifespan.String()
}
