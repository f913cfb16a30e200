// Package path provides the kinded path algebra for model queries:
// concrete key paths, wildcard path patterns, and filters (alternations
// of patterns).
//
// A path addresses a node in the object model from the root. Each
// segment is either a key (named attribute, "Threads" or ".state") or an
// index (bracketed key, "[0]"). The two namespaces never overlap: an
// index segment cannot match a key segment and vice versa.
//
// Pattern segments may be wildcarded:
//   - "*" matches any one key segment
//   - "[*]" matches any one index segment
//   - "[lo..hi]" matches index segments whose keys are integers in the
//     closed range
package path

import (
	"strconv"
	"strings"
)

// Kind discriminates the two segment namespaces.
type Kind uint8

const (
	// KeyKind segments are named attributes, rendered dot-separated.
	KeyKind Kind = iota
	// IndexKind segments are bracketed keys, rendered "[key]".
	IndexKind
)

func (k Kind) String() string {
	switch k {
	case KeyKind:
		return "key"
	case IndexKind:
		return "index"
	}
	return "unknown"
}

// Segment is one element of a path. The zero value is the wildcard key
// segment. An empty text is the wildcard sentinel: it matches any one
// concrete segment of the same kind.
type Segment struct {
	kind Kind
	text string
}

// KeySeg returns the key segment with the given name. An empty name is
// the any-key wildcard.
func KeySeg(name string) Segment {
	return Segment{kind: KeyKind, text: name}
}

// IndexSeg returns the index segment with the given bracketed key. An
// empty key is the any-index wildcard.
func IndexSeg(key string) Segment {
	return Segment{kind: IndexKind, text: key}
}

// IndexSegN returns the index segment for a decimal ordinal.
func IndexSegN(n int64) Segment {
	return Segment{kind: IndexKind, text: strconv.FormatInt(n, 10)}
}

// RangeSeg returns the index pattern segment matching ordinals in
// [lo, hi].
func RangeSeg(lo, hi int64) Segment {
	return Segment{
		kind: IndexKind,
		text: strconv.FormatInt(lo, 10) + ".." + strconv.FormatInt(hi, 10),
	}
}

// Kind returns the segment's namespace.
func (s Segment) Kind() Kind {
	return s.kind
}

// Text returns the segment's raw key text, "" for wildcards.
func (s Segment) Text() string {
	return s.text
}

// IsWildcard reports whether the segment is an any-key or any-index
// wildcard.
func (s Segment) IsWildcard() bool {
	return s.text == ""
}

// String renders the segment in query syntax: keys bare or quoted,
// indices bracketed, wildcards as "*" or "[*]".
func (s Segment) String() string {
	switch s.kind {
	case IndexKind:
		if s.text == "" {
			return "[*]"
		}
		return "[" + s.text + "]"
	default:
		if s.text == "" {
			return "*"
		}
		if needsQuote(s.text) {
			return quote(s.text)
		}
		return s.text
	}
}

// KeyMatches decides whether one pattern segment accepts one concrete
// segment. It is a pure predicate, total over all pairs. Kinds must
// agree; a wildcard pattern segment accepts anything of its kind; an
// index range accepts integer keys within it; otherwise the keys must be
// equal.
func KeyMatches(pat, key Segment) bool {
	if pat.kind != key.kind {
		return false
	}
	if pat.text == "" {
		return true
	}
	if pat.text == key.text {
		return true
	}
	if pat.kind == IndexKind {
		if lo, hi, ok := splitRange(pat.text); ok {
			n, err := strconv.ParseInt(key.text, 10, 64)
			return err == nil && lo <= n && n <= hi
		}
	}
	return false
}

// splitRange parses "lo..hi" with integer bounds. Anything else is a
// literal bracketed key.
func splitRange(text string) (lo, hi int64, ok bool) {
	i := strings.Index(text, "..")
	if i < 0 {
		return 0, 0, false
	}
	lo, err := strconv.ParseInt(text[:i], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	hi, err = strconv.ParseInt(text[i+2:], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

const quoteTriggers = ".[]{}|*'\" \t\n"

func needsQuote(name string) bool {
	return strings.ContainsAny(name, quoteTriggers)
}

func quote(name string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range name {
		switch r {
		case '\'', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
	return b.String()
}
