// Package span provides closed intervals of snapshot indices.
//
// A Span names the discrete time points over which a fact in a trace
// holds: an edge placed at snapshot 3 and removed at snapshot 10 has span
// [3,10]. Spans are immutable values.
package span

import (
	"fmt"
	"math"
)

// Min and Max bound every span.
const (
	Min int64 = math.MinInt64
	Max int64 = math.MaxInt64
)

// Span is a closed interval [Lo, Hi] of snapshot indices. The zero value
// is the empty span.
type Span struct {
	lo, hi int64
	valid  bool
}

// All spans every snapshot.
var All = Span{lo: Min, hi: Max, valid: true}

// Empty spans nothing. It intersects no span, including itself.
var Empty = Span{}

// Make returns the span [lo, hi]. It panics if lo > hi; an empty span is
// requested explicitly with Empty, never by inverted bounds.
func Make(lo, hi int64) Span {
	if lo > hi {
		panic(fmt.Sprintf("span: inverted bounds [%d, %d]", lo, hi))
	}
	return Span{lo: lo, hi: hi, valid: true}
}

// At returns the singleton span [snap, snap].
func At(snap int64) Span {
	return Span{lo: snap, hi: snap, valid: true}
}

// Since returns the span [snap, Max].
func Since(snap int64) Span {
	return Span{lo: snap, hi: Max, valid: true}
}

// IsEmpty reports whether s contains no snapshots.
func (s Span) IsEmpty() bool {
	return !s.valid
}

// Lo returns the lower bound. It panics on the empty span.
func (s Span) Lo() int64 {
	if !s.valid {
		panic("span: Lo of empty span")
	}
	return s.lo
}

// Hi returns the upper bound. It panics on the empty span.
func (s Span) Hi() int64 {
	if !s.valid {
		panic("span: Hi of empty span")
	}
	return s.hi
}

// Contains reports whether snap is in s.
func (s Span) Contains(snap int64) bool {
	return s.valid && s.lo <= snap && snap <= s.hi
}

// Intersects reports whether s and t share at least one snapshot.
func (s Span) Intersects(t Span) bool {
	if !s.valid || !t.valid {
		return false
	}
	return s.lo <= t.hi && t.lo <= s.hi
}

// Encloses reports whether s contains all of t. The empty span encloses
// nothing and is enclosed by nothing.
func (s Span) Encloses(t Span) bool {
	if !s.valid || !t.valid {
		return false
	}
	return s.lo <= t.lo && t.hi <= s.hi
}

// Connects reports whether s and t intersect or abut, i.e. whether their
// union is a single unbroken interval.
func (s Span) Connects(t Span) bool {
	if !s.valid || !t.valid {
		return false
	}
	if s.Intersects(t) {
		return true
	}
	if s.hi != Max && s.hi+1 == t.lo {
		return true
	}
	if t.hi != Max && t.hi+1 == s.lo {
		return true
	}
	return false
}

// Hull returns the smallest span containing both s and t. It panics if
// either is empty.
func (s Span) Hull(t Span) Span {
	if !s.valid || !t.valid {
		panic("span: Hull of empty span")
	}
	return Span{lo: min(s.lo, t.lo), hi: max(s.hi, t.hi), valid: true}
}

// Intersect returns the common part of s and t, Empty if they are
// disjoint.
func (s Span) Intersect(t Span) Span {
	if !s.Intersects(t) {
		return Empty
	}
	return Span{lo: max(s.lo, t.lo), hi: min(s.hi, t.hi), valid: true}
}

func (s Span) String() string {
	if !s.valid {
		return "(empty)"
	}
	lo := "min"
	if s.lo != Min {
		lo = fmt.Sprintf("%d", s.lo)
	}
	hi := "max"
	if s.hi != Max {
		hi = fmt.Sprintf("%d", s.hi)
	}
	return "[" + lo + "," + hi + "]"
}
