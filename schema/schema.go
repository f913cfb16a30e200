// Package schema provides the static type information for objects in a
// trace model. Schemas are named, live in a Context, and are resolved by
// walking key paths from the root schema: index segments step to element
// schemas, key segments to attribute schemas.
package schema

import (
	"sort"

	"github.com/tracelens/trace-model/go-model/path"
)

// AttributeSchema declares one named attribute of a schema. An empty
// Name marks the default attribute schema, which applies to attribute
// keys with no declaration of their own.
type AttributeSchema struct {
	Name     string `yaml:"name"`
	Schema   string `yaml:"schema"`
	Required bool   `yaml:"required"`
	Fixed    bool   `yaml:"fixed"`
	Hidden   bool   `yaml:"hidden"`
}

// Schema describes the children of one class of objects. Schemas are
// interned per Context: two schemas with the same name in the same
// context are the same schema.
type Schema struct {
	ctx *Context

	Name string

	// Elements maps literal index keys to schema names. Index keys
	// without an entry resolve to DefaultElement.
	Elements map[string]string
	// DefaultElement is the schema name for undeclared and wildcard
	// index keys. Empty means OBJECT.
	DefaultElement string

	// Attributes maps attribute keys to their declarations. The map may
	// carry alias entries (key differing from the declared name) and a
	// default entry (declared name empty); neither counts as a real,
	// named attribute.
	Attributes map[string]*AttributeSchema
	// DefaultAttribute applies to undeclared and wildcard attribute
	// keys. Nil means ANY.
	DefaultAttribute *AttributeSchema

	// Primitive marks leaf schemas: values of this schema are not
	// objects and have no children of their own.
	Primitive bool
}

// Context returns the context the schema was defined in, nil for
// builtins.
func (s *Schema) Context() *Context {
	return s.ctx
}

// resolve maps a schema name to a schema, in s's context first, then the
// builtins. Unknown names degrade to ANY.
func (s *Schema) resolve(name string) *Schema {
	if name == "" {
		return Any
	}
	if s.ctx != nil {
		if r := s.ctx.Lookup(name); r != nil {
			return r
		}
	}
	if b := builtins[name]; b != nil {
		return b
	}
	return Any
}

// Child returns the schema of the child reached from s by one segment.
// Wildcard segments resolve to the default element or attribute schema.
func (s *Schema) Child(seg path.Segment) *Schema {
	switch seg.Kind() {
	case path.IndexKind:
		if !seg.IsWildcard() {
			if name, ok := s.Elements[seg.Text()]; ok {
				return s.resolve(name)
			}
		}
		if s.DefaultElement != "" {
			return s.resolve(s.DefaultElement)
		}
		return Object
	default:
		if !seg.IsWildcard() {
			if as, ok := s.Attributes[seg.Text()]; ok {
				return s.resolve(as.Schema)
			}
		}
		if s.DefaultAttribute != nil {
			return s.resolve(s.DefaultAttribute.Schema)
		}
		return Any
	}
}

// Successor walks p from s and returns the schema at its end.
func (s *Schema) Successor(p path.KeyPath) *Schema {
	cur := s
	for i := 0; i < p.Len(); i++ {
		cur = cur.Child(p.Segment(i))
	}
	return cur
}

// NamedAttributes returns the real, named attribute declarations in name
// order: entries whose map key equals their own declared, non-empty
// name. Aliases and the default entry are excluded.
func (s *Schema) NamedAttributes() []*AttributeSchema {
	var out []*AttributeSchema
	for key, as := range s.Attributes {
		if as.Name == "" || key != as.Name {
			continue
		}
		out = append(out, as)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Equal reports whether two schemas denote the same type. Schemas are
// interned per context, so identity plus name suffices.
func (s *Schema) Equal(o *Schema) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	return s.ctx == o.ctx && s.Name == o.Name
}

func (s *Schema) String() string {
	return s.Name
}
