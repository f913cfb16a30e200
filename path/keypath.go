package path

import (
	"fmt"
	"slices"
	"strings"
)

// KeyPath is an immutable ordered sequence of segments from the
// conceptual root. The zero value is the root (empty) path. Appending
// constructors copy; a KeyPath is never mutated in place.
type KeyPath struct {
	segs []Segment
}

// Root is the empty path.
var Root = KeyPath{}

// MakeKeyPath builds a path from segments, copying them.
func MakeKeyPath(segs ...Segment) KeyPath {
	if len(segs) == 0 {
		return Root
	}
	return KeyPath{segs: slices.Clone(segs)}
}

// IsRoot reports whether the path is empty.
func (p KeyPath) IsRoot() bool {
	return len(p.segs) == 0
}

// Len returns the number of segments.
func (p KeyPath) Len() int {
	return len(p.segs)
}

// Segment returns the i-th segment from the root.
func (p KeyPath) Segment(i int) Segment {
	return p.segs[i]
}

// Last returns the final segment. It panics on the root path.
func (p KeyPath) Last() Segment {
	if len(p.segs) == 0 {
		panic("path: Last of root path")
	}
	return p.segs[len(p.segs)-1]
}

// Key returns p extended by a key segment. An empty name appends the
// any-key wildcard sentinel.
func (p KeyPath) Key(name string) KeyPath {
	return p.extend(KeySeg(name))
}

// Index returns p extended by an index segment. An empty key appends the
// any-index wildcard sentinel.
func (p KeyPath) Index(key string) KeyPath {
	return p.extend(IndexSeg(key))
}

// IndexN returns p extended by a decimal ordinal index segment.
func (p KeyPath) IndexN(n int64) KeyPath {
	return p.extend(IndexSegN(n))
}

// Extend returns p with seg appended.
func (p KeyPath) Extend(seg Segment) KeyPath {
	return p.extend(seg)
}

func (p KeyPath) extend(seg Segment) KeyPath {
	segs := make([]Segment, len(p.segs)+1)
	copy(segs, p.segs)
	segs[len(p.segs)] = seg
	return KeyPath{segs: segs}
}

// Parent returns p without its final segment. It panics on the root
// path.
func (p KeyPath) Parent() KeyPath {
	return p.RemoveRight(1)
}

// RemoveRight returns p without its final n segments. It panics if n
// exceeds the path's length; trimming past the root is a programmer
// error, not a runtime condition.
func (p KeyPath) RemoveRight(n int) KeyPath {
	if n < 0 || n > len(p.segs) {
		panic(fmt.Sprintf("path: RemoveRight(%d) on path of length %d", n, len(p.segs)))
	}
	return KeyPath{segs: p.segs[:len(p.segs)-n]}
}

// Equal reports structural equality.
func (p KeyPath) Equal(q KeyPath) bool {
	return slices.Equal(p.segs, q.segs)
}

// String renders the path in query syntax. The root path renders as "".
func (p KeyPath) String() string {
	var b strings.Builder
	for i, seg := range p.segs {
		if seg.kind == KeyKind && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.String())
	}
	return b.String()
}
