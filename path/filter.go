package path

import "strings"

// Filter is an ordered set of alternative patterns, combined by logical
// OR. The zero value is None, the filter with no alternatives, which
// matches nothing.
type Filter struct {
	pats []Pattern
}

// None matches nothing.
var None = Filter{}

// MakeFilter builds a filter over the given alternatives, preserving
// their order.
func MakeFilter(pats ...Pattern) Filter {
	if len(pats) == 0 {
		return None
	}
	cp := make([]Pattern, len(pats))
	copy(cp, pats)
	return Filter{pats: cp}
}

// IsNone reports whether the filter has no alternatives.
func (f Filter) IsNone() bool {
	return len(f.pats) == 0
}

// Patterns returns the alternatives in insertion order. The returned
// slice is shared; callers must not modify it.
func (f Filter) Patterns() []Pattern {
	return f.pats
}

// Singleton returns the filter's only pattern, when it has exactly one
// alternative. Used for round-tripping a filter back to query text.
func (f Filter) Singleton() (Pattern, bool) {
	if len(f.pats) != 1 {
		return Pattern{}, false
	}
	return f.pats[0], true
}

// Matches reports whether any alternative matches the concrete path.
func (f Filter) Matches(p KeyPath) bool {
	for _, pat := range f.pats {
		if pat.Matches(p) {
			return true
		}
	}
	return false
}

// Equal reports order-sensitive equality of the alternative sequences.
func (f Filter) Equal(g Filter) bool {
	if len(f.pats) != len(g.pats) {
		return false
	}
	for i := range f.pats {
		if !f.pats[i].Equal(g.pats[i]) {
			return false
		}
	}
	return true
}

// String renders the alternatives joined by "|". None renders as
// "(none)".
func (f Filter) String() string {
	if len(f.pats) == 0 {
		return "(none)"
	}
	strs := make([]string, len(f.pats))
	for i, pat := range f.pats {
		strs[i] = pat.String()
	}
	return strings.Join(strs, "|")
}
