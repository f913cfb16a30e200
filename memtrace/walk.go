package memtrace

import (
	"iter"

	model "github.com/tracelens/trace-model/go-model"
	"github.com/tracelens/trace-model/go-model/debug"
	"github.com/tracelens/trace-model/go-model/path"
	"github.com/tracelens/trace-model/go-model/span"
)

// ValuePaths enumerates every value path from the root matching the
// filter, each edge intersecting sp. The walk is pre-order by path with
// edges in insertion order; the set of still-viable alternatives narrows
// as it descends, so each concrete path is yielded once even when
// several alternatives match it.
func (t *Trace) ValuePaths(sp span.Span, f path.Filter) iter.Seq[model.ValPath] {
	return func(yield func(model.ValPath) bool) {
		pats := f.Patterns()
		if len(pats) == 0 || sp.IsEmpty() {
			return
		}
		t.walk(t.root, nil, 0, pats, sp, yield)
	}
}

func (t *Trace) walk(obj *Object, prefix []model.Value, depth int, pats []path.Pattern, sp span.Span, yield func(model.ValPath) bool) bool {
	for _, pat := range pats {
		if pat.Len() == depth {
			if debug.Walk() {
				debug.Logf("walk: match %q at %s\n", pat, obj.canonical)
			}
			vp := make(model.ValPath, len(prefix))
			copy(vp, prefix)
			if !yield(vp) {
				return false
			}
			break
		}
	}
	for _, e := range obj.entries {
		if !sp.Intersects(e.lifespan) {
			continue
		}
		var viable []path.Pattern
		for _, pat := range pats {
			if pat.Len() > depth && path.KeyMatches(pat.AsPath().Segment(depth), e.key) {
				viable = append(viable, pat)
			}
		}
		if len(viable) == 0 {
			continue
		}
		next := make([]model.Value, 0, len(prefix)+1)
		next = append(next, prefix...)
		next = append(next, e)
		if child, ok := e.child.Object(); ok {
			if !t.walk(child.(*Object), next, depth+1, viable, sp, yield) {
				return false
			}
			continue
		}
		// Primitive destination: terminal only.
		for _, pat := range viable {
			if pat.Len() == depth+1 {
				if !yield(model.ValPath(next)) {
					return false
				}
				break
			}
		}
	}
	return true
}
