package path

// Pattern is a KeyPath whose segments may be wildcarded. It describes a
// class of concrete paths of the same length. Patterns are immutable.
type Pattern struct {
	path KeyPath
}

// RootPattern matches only the root path.
var RootPattern = Pattern{}

// MakePattern wraps a key path, wildcards and all, as a pattern.
func MakePattern(p KeyPath) Pattern {
	return Pattern{path: p}
}

// AsPath returns the underlying key path view of the pattern.
func (pt Pattern) AsPath() KeyPath {
	return pt.path
}

// IsRoot reports whether the pattern is the empty (root) pattern.
func (pt Pattern) IsRoot() bool {
	return pt.path.IsRoot()
}

// Len returns the number of pattern segments.
func (pt Pattern) Len() int {
	return pt.path.Len()
}

// Parent returns the pattern without its final segment. It panics on the
// root pattern.
func (pt Pattern) Parent() Pattern {
	return pt.RemoveRight(1)
}

// RemoveRight returns the pattern without its final n segments, panicking
// if n exceeds its length.
func (pt Pattern) RemoveRight(n int) Pattern {
	return Pattern{path: pt.path.RemoveRight(n)}
}

// Matches reports whether the concrete path p instantiates this pattern:
// same length, every segment accepted by KeyMatches.
func (pt Pattern) Matches(p KeyPath) bool {
	if p.Len() != pt.path.Len() {
		return false
	}
	for i := 0; i < p.Len(); i++ {
		if !KeyMatches(pt.path.Segment(i), p.Segment(i)) {
			return false
		}
	}
	return true
}

// Equal reports structural equality.
func (pt Pattern) Equal(o Pattern) bool {
	return pt.path.Equal(o.path)
}

// String renders the pattern in query syntax.
func (pt Pattern) String() string {
	return pt.path.String()
}
